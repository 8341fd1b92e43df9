// Copyright 2025 The leadscout authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
)

type providersConfig struct {
	// LM selects the language model provider ("openai" or
	// "gemini"). Empty means openai.
	LM string `yaml:"lm"`

	// Searcher selects the web search provider ("exa" or
	// "tavily"). Empty means exa.
	Searcher string `yaml:"searcher"`

	// Model overrides the provider's default model name.
	Model string `yaml:"model"`

	// Briefing enables the reranked company-context search that
	// runs before the agent starts. Requires a cohere key.
	Briefing bool `yaml:"briefing"`
}

type redisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type workerConfig struct {
	Workers int `yaml:"workers"`
}

type config struct {
	Providers providersConfig `yaml:"providers"`
	Transport redisConfig     `yaml:"transport"`
	Worker    workerConfig    `yaml:"worker"`
}

func defaultConfig() *config {
	return &config{
		Transport: redisConfig{Addr: "localhost:6379"},
		Worker:    workerConfig{Workers: 10},
	}
}

// ReadConfig loads the yaml config at path. A missing file is not
// an error; defaults apply.
func ReadConfig(path string) (*config, error) {
	conf := defaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return conf, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(file, conf); err != nil {
		return nil, err
	}

	if conf.Transport.Addr == "" {
		conf.Transport.Addr = "localhost:6379"
	}
	if conf.Worker.Workers == 0 {
		conf.Worker.Workers = 10
	}

	return conf, nil
}
