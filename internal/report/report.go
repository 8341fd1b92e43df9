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

// Package report handles the prospect list the agent produces:
// the download filename convention and a best-effort parse of the
// markdown prospect table. The raw markdown is always kept as the
// source of truth; parsing is for display only and a list that
// does not parse is not an error.
package report

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// Prospect is one row of the agent's prospect table.
type Prospect struct {
	Name       string
	JobTitle   string
	Department string
	ProfileURL string
}

// Filename returns the download filename for a company's prospect
// list: lowercased, spaces replaced with underscores.
func Filename(company string) string {
	slug := strings.ReplaceAll(strings.ToLower(company), " ", "_")
	return "linkedin_prospects_" + slug + ".md"
}

// Save writes the raw markdown under dir using the company's
// download filename and returns the full path.
func Save(dir, company, content string) (string, error) {
	path := filepath.Join(dir, Filename(company))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ParseProspects extracts prospect rows from the first markdown
// table in content. The header row is skipped. Output that holds
// no table yields an empty slice, never an error.
func ParseProspects(content string) []Prospect {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := markdown.Parse([]byte(content), p)

	var prospects []Prospect

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		row, ok := node.(*ast.TableRow)
		if !ok {
			return ast.GoToNext
		}
		if _, header := row.Parent.(*ast.TableHeader); header {
			return ast.SkipChildren
		}

		cells := rowCells(row)
		if len(cells) < 4 {
			return ast.SkipChildren
		}
		prospects = append(prospects, Prospect{
			Name:       cells[0],
			JobTitle:   cells[1],
			Department: cells[2],
			ProfileURL: cells[3],
		})
		return ast.SkipChildren
	})

	return prospects
}

func rowCells(row *ast.TableRow) []string {
	var cells []string
	for _, child := range row.GetChildren() {
		cell, ok := child.(*ast.TableCell)
		if !ok {
			continue
		}
		cells = append(cells, strings.TrimSpace(cellText(cell)))
	}
	return cells
}

// cellText flattens a cell to its literal text. Links keep their
// destination since the profile URL column may render as a link.
func cellText(cell ast.Node) string {
	var sb strings.Builder
	ast.WalkFunc(cell, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.Link:
			sb.Write(n.Destination)
			return ast.SkipChildren
		case *ast.Text, *ast.Code:
			sb.Write(n.AsLeaf().Literal)
		}
		return ast.GoToNext
	})
	return sb.String()
}
