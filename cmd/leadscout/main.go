package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/alednik/leadscout/internal/agent"
	"github.com/alednik/leadscout/internal/provider"
	"github.com/alednik/leadscout/internal/report"
	"github.com/alednik/leadscout/internal/search"
	"github.com/alednik/leadscout/internal/tasks"
	"github.com/alednik/leadscout/internal/transport"
	"github.com/alednik/leadscout/internal/tui"
	"github.com/alednik/leadscout/worker"
	"github.com/alexflint/go-arg"
)

const (
	ProgramName   = "LeadScout"
	Version       = "v0.1.0"
	RepositoryUrl = "github.com/alednik/leadscout"
)

type tuiCmd struct{}

type findCmd struct {
	Company string `arg:"positional,required" help:"company to find prospects at"`
	Output  string `arg:"--output,-o" default:"." help:"directory the prospect file is written to"`
}

type submitCmd struct {
	Company   string `arg:"positional,required" help:"company to find prospects at"`
	Requester string `arg:"--requester,-r" default:"cli" help:"requester recorded on the trace"`
	Wait      bool   `arg:"--wait,-w" help:"block until the worker finishes and print the result"`
}

type workCmd struct{}

type args struct {
	Tui    *tuiCmd    `arg:"subcommand:tui" help:"start the interactive prospect finder"`
	Find   *findCmd   `arg:"subcommand:find" help:"find prospects and print the result"`
	Submit *submitCmd `arg:"subcommand:submit" help:"queue a prospect search on the worker"`
	Work   *workCmd   `arg:"subcommand:work" help:"start the task worker"`

	Config string `arg:"--config,-c" default:"leadscout.yaml" help:"path to the config file"`
}

func (args) Version() string {
	return fmt.Sprintf("%s %s", ProgramName, Version)
}

func (args) Epilogue() string {
	return fmt.Sprintf("For more information visit %s", RepositoryUrl)
}

func main() {
	var args args

	p, err := arg.NewParser(arg.Config{Program: strings.ToLower(ProgramName)}, &args)
	if err != nil {
		log.Fatalf("there was an error in the definition of the Go struct: %v", err)
	}
	p.MustParse(os.Args[1:])

	if p.Subcommand() == nil {
		p.WriteUsage(os.Stdout)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Local development keys live in .env; absence is fine.
	_ = godotenv.Load()

	conf, err := ReadConfig(args.Config)
	if err != nil {
		log.Fatalf("failed to read config '%s': %v", args.Config, err)
	}

	if err := checkCredentials(conf); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch cmd := p.Subcommand().(type) {
	case *tuiCmd:
		err = startTui(conf)
	case *findCmd:
		err = runFind(conf, cmd)
	case *submitCmd:
		err = runSubmit(conf, cmd)
	case *workCmd:
		err = startWorker(conf)
	default:
		p.FailSubcommand("unrecognized command", p.SubcommandNames()...)
	}

	if err != nil {
		log.Fatal(err)
	}
}

// checkCredentials fails fast with setup instructions when the
// configured providers have no API keys.
func checkCredentials(conf *config) error {
	var missing []string

	switch conf.Providers.Searcher {
	case "tavily":
		if os.Getenv("TAVILY_API_KEY") == "" {
			missing = append(missing, "TAVILY_API_KEY")
		}
	default:
		if os.Getenv("EXA_API_KEY") == "" {
			missing = append(missing, "EXA_API_KEY")
		}
	}

	switch conf.Providers.LM {
	case "gemini":
		if os.Getenv("GEMINI_API_KEY") == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	default:
		if os.Getenv("OPENAI_API_KEY") == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	}

	if conf.Providers.Briefing && os.Getenv("COHERE_API_KEY") == "" {
		missing = append(missing, "COHERE_API_KEY")
	}

	if len(missing) == 0 {
		return nil
	}

	return fmt.Errorf(`missing API keys: %s

Set them in your environment or in a .env file next to the binary:

  %s=your-key-here

Keys are issued by the respective provider dashboards.`,
		strings.Join(missing, ", "), strings.Join(missing, "=...\n  "))
}

func buildPipeline(conf *config, opts ...agent.PipelineOption) (*agent.Pipeline, error) {
	lmType, err := provider.ParseLMProviderType(conf.Providers.LM)
	if err != nil {
		return nil, err
	}
	searcherType, err := provider.ParseWebSearcherType(conf.Providers.Searcher)
	if err != nil {
		return nil, err
	}

	lm, err := provider.NewLMProvider(lmType)
	if err != nil {
		return nil, err
	}
	searcher, err := provider.NewWebSearcher(searcherType)
	if err != nil {
		return nil, err
	}

	if conf.Providers.Model != "" {
		opts = append(opts, agent.WithModelName(conf.Providers.Model))
	}
	if conf.Providers.Briefing {
		reranker, err := provider.NewReranker(provider.RerankerTypeCohere)
		if err != nil {
			return nil, err
		}
		opts = append(opts, agent.WithBriefing(agent.NewBriefing(searcher, reranker)))
	}

	return agent.NewPipeline(lm, search.NewAdapter(searcher), opts...), nil
}

func startTui(conf *config) error {
	events := make(chan agent.ProgressEvent, 16)

	pipeline, err := buildPipeline(conf, agent.WithProgressFunc(func(evt agent.ProgressEvent) {
		select {
		case events <- evt:
		default:
		}
	}))
	if err != nil {
		return err
	}

	// The UI owns the terminal; keep log noise out of it.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))

	program := tea.NewProgram(tui.NewModel(pipeline, events), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func runFind(conf *config, cmd *findCmd) error {
	pipeline, err := buildPipeline(conf, agent.WithProgressFunc(func(evt agent.ProgressEvent) {
		if evt.Type == agent.ProgressEventSearching {
			slog.Info("searching", "question", evt.Detail)
		}
	}))
	if err != nil {
		return err
	}

	result, err := pipeline.Run(context.Background(), cmd.Company)
	if err != nil {
		return err
	}

	fmt.Println(result)

	path, err := report.Save(cmd.Output, cmd.Company, result)
	if err != nil {
		return fmt.Errorf("failed to save prospect list: %w", err)
	}
	slog.Info("saved prospect list", "path", path)
	return nil
}

func runSubmit(conf *config, cmd *submitCmd) error {
	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Transport.Addr,
		Username: conf.Transport.Username,
		Password: conf.Transport.Password,
		DB:       conf.Transport.DB,
	})
	defer rdb.Close()

	task, err := tasks.NewFindTask(cmd.Company, cmd.Requester)
	if err != nil {
		return err
	}

	client := asynq.NewClientFromRedisClient(rdb)

	// A caller-chosen task ID doubles as the message stream key,
	// so the result can be followed without querying the queue.
	taskId := uuid.NewString()
	info, err := client.Enqueue(task, asynq.TaskID(taskId))
	if err != nil {
		return fmt.Errorf("failed to enqueue find task: %w", err)
	}

	fmt.Printf("queued search for '%s' (task %s)\n", cmd.Company, info.ID)

	if !cmd.Wait {
		return nil
	}

	tr := transport.NewRedisTransport(rdb)
	ms, err := tr.GetMessageStream(info.ID)
	if err != nil {
		return err
	}

	for {
		payload, err := ms.Recv(ctx)
		if err != nil {
			return err
		}
		switch payload.Status {
		case transport.StatusDone:
			fmt.Println(payload.Content)
			return nil
		case transport.StatusErr:
			return fmt.Errorf("search failed: %s", payload.Content)
		default:
			slog.Info("searching", "question", payload.Content)
		}
	}
}

func startWorker(conf *config) error {
	lmType, err := provider.ParseLMProviderType(conf.Providers.LM)
	if err != nil {
		return err
	}
	searcherType, err := provider.ParseWebSearcherType(conf.Providers.Searcher)
	if err != nil {
		return err
	}

	w := worker.New(
		worker.WithRedisAddr(conf.Transport.Addr),
		worker.WithConcurrency(conf.Worker.Workers),
		worker.WithLMProviderType(lmType),
		worker.WithWebSearcherType(searcherType),
		worker.WithModelName(conf.Providers.Model),
		worker.WithBriefing(conf.Providers.Briefing),
	)
	return w.Start()
}
