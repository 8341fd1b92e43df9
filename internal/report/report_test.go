package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alednik/leadscout/internal/report"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		company  string
		expected string
	}{
		{"Acme Corp", "linkedin_prospects_acme_corp.md"},
		{"OpenAI", "linkedin_prospects_openai.md"},
		{"Big Blue Machines Inc", "linkedin_prospects_big_blue_machines_inc.md"},
	}
	for _, tt := range tests {
		if got := report.Filename(tt.company); got != tt.expected {
			t.Errorf("Filename(%q) = %q, expected %q", tt.company, got, tt.expected)
		}
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path, err := report.Save(dir, "Acme Corp", "# prospects\n")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if path != filepath.Join(dir, "linkedin_prospects_acme_corp.md") {
		t.Errorf("unexpected path %q", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected saved file, got %v", err)
	}
	if string(raw) != "# prospects\n" {
		t.Errorf("unexpected file content %q", raw)
	}
}

const sampleOutput = `Based on my research, here are the key prospects at Tesla:

| Name | Job Title | Department | LinkedIn Profile URL |
|------|-----------|------------|----------------------|
| John Smith | VP of Engineering | Engineering | https://linkedin.com/in/johnsmith |
| Jane Doe | Director of Procurement | Procurement | https://linkedin.com/in/janedoe |
| Bob Brown | Head of Manufacturing | Operations | https://linkedin.com/in/bobbrown |
| Alice Green | CTO | Technology | https://linkedin.com/in/alicegreen |
| Tom White | Operations Manager | Operations | https://linkedin.com/in/tomwhite |

**Total Prospects Found: 5**
`

func TestParseProspects(t *testing.T) {
	prospects := report.ParseProspects(sampleOutput)
	if len(prospects) != 5 {
		t.Fatalf("expected 5 prospects, got %d", len(prospects))
	}

	first := prospects[0]
	if first.Name != "John Smith" {
		t.Errorf("unexpected name %q", first.Name)
	}
	if first.JobTitle != "VP of Engineering" {
		t.Errorf("unexpected job title %q", first.JobTitle)
	}
	if first.Department != "Engineering" {
		t.Errorf("unexpected department %q", first.Department)
	}
	if first.ProfileURL != "https://linkedin.com/in/johnsmith" {
		t.Errorf("unexpected profile url %q", first.ProfileURL)
	}
}

func TestParseProspectsLinkedURL(t *testing.T) {
	md := `| Name | Job Title | Department | LinkedIn Profile URL |
|---|---|---|---|
| Jane Doe | CTO | Technology | [profile](https://linkedin.com/in/janedoe) |
`
	prospects := report.ParseProspects(md)
	if len(prospects) != 1 {
		t.Fatalf("expected 1 prospect, got %d", len(prospects))
	}
	if prospects[0].ProfileURL != "https://linkedin.com/in/janedoe" {
		t.Errorf("unexpected profile url %q", prospects[0].ProfileURL)
	}
}

func TestParseProspectsNoTable(t *testing.T) {
	prospects := report.ParseProspects("I could not find any public employee data.")
	if len(prospects) != 0 {
		t.Errorf("expected no prospects, got %d", len(prospects))
	}
}
