package report

// casefile.go: Markdown case report with YAML frontmatter.
//
// The frontmatter carries the machine-readable outcome; the body is a
// table of every clue and the suspect it points to.
//
//	---
//	title: Detective Quest
//	accused: Cozinheira
//	...
//	---
//	# Case: Detective Quest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"sleuth/internal/verdict"
)

// CaseMeta is the frontmatter of a case file.
type CaseMeta struct {
	Title     string   `yaml:"title"`
	ClosedAt  string   `yaml:"closed_at"`
	Accused   string   `yaml:"accused"`
	Evidence  int      `yaml:"evidence"`
	Threshold int      `yaml:"threshold"`
	Outcome   string   `yaml:"outcome"`
	Clues     []string `yaml:"clues,omitempty"`
}

// RenderCaseFile builds the markdown document for one verdict.
func RenderCaseFile(title string, v verdict.Verdict, closed time.Time) ([]byte, error) {
	meta := CaseMeta{
		Title:     title,
		ClosedAt:  closed.UTC().Format(time.RFC3339),
		Accused:   v.Accused,
		Evidence:  v.Evidence,
		Threshold: v.Threshold,
		Outcome:   v.Outcome().String(),
	}
	for _, f := range v.Findings {
		meta.Clues = append(meta.Clues, f.Clue)
	}
	fm, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("report: marshal case file: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n")
	fmt.Fprintf(&buf, "# Case: %s\n\n", title)
	if len(v.Findings) == 0 {
		buf.WriteString("No clues were collected.\n\n")
	} else {
		buf.WriteString("| Clue | Points to | Against accused |\n|---|---|---|\n")
		for _, f := range v.Findings {
			hit := ""
			if f.Matches {
				hit = "yes"
			}
			fmt.Fprintf(&buf, "| %s | %s | %s |\n", cell(f.Clue), cell(f.Suspect), hit)
		}
		buf.WriteString("\n")
	}
	fmt.Fprintf(&buf, "**%s** against %s: %d of %d required.\n", capitalize(v.Outcome().String()), v.Accused, v.Evidence, v.Threshold)
	return buf.Bytes(), nil
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// WriteCaseFile renders the case and writes it into dir as
// case-<timestamp>.md, creating dir if needed. It returns the file path.
func WriteCaseFile(dir, title string, v verdict.Verdict, closed time.Time) (string, error) {
	data, err := RenderCaseFile(title, v, closed)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("report: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, "case-"+closed.UTC().Format("20060102-150405")+".md")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("report: write case file: %w", err)
	}
	return path, nil
}

// ParseCaseFile splits a case file into its frontmatter and markdown body.
// The document must begin with "---\n"; the closing "---" line ends the
// frontmatter block.
func ParseCaseFile(data []byte) (*CaseMeta, []byte, error) {
	const delim = "---\n"
	if !bytes.HasPrefix(data, []byte(delim)) {
		return nil, nil, fmt.Errorf("report: case file missing opening --- delimiter")
	}
	rest := data[len(delim):]
	idx := bytes.Index(rest, []byte("\n---"))
	if idx < 0 {
		return nil, nil, fmt.Errorf("report: case file missing closing --- delimiter")
	}
	var meta CaseMeta
	if err := yaml.Unmarshal(rest[:idx], &meta); err != nil {
		return nil, nil, fmt.Errorf("report: parse case file: %w", err)
	}
	// Skip past closing delimiter and optional newline.
	body := rest[idx+4:]
	if len(body) > 0 && body[0] == '\n' {
		body = body[1:]
	}
	return &meta, body, nil
}
