// Package report renders a game for people: console notifications during
// play and a markdown case file afterwards.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sleuth/internal/expedition"
	"sleuth/internal/verdict"
)

// Printer writes game notifications to a terminal or any io.Writer. Styles
// come from a renderer bound to the writer, so output to a file or buffer
// carries no escape codes.
type Printer struct {
	w      io.Writer
	room   lipgloss.Style
	clue   lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
	header lipgloss.Style
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		room:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		clue:   r.NewStyle().Italic(true).Foreground(lipgloss.Color("11")),
		muted:  r.NewStyle().Faint(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("9")),
		good:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		bad:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		header: r.NewStyle().Bold(true).Underline(true),
	}
}

func (p *Printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Notify implements expedition.Notifier.
func (p *Printer) Notify(e expedition.Event) {
	switch e.Kind {
	case expedition.EventEntered:
		p.line("\n%s", p.room.Render("You are in: "+e.Room))
	case expedition.EventClue:
		if e.New {
			p.line("You found a clue: %s", p.clue.Render(fmt.Sprintf("%q", e.Clue)))
		} else {
			p.line("You found %s again; it is already in your notes.", p.clue.Render(fmt.Sprintf("%q", e.Clue)))
		}
	case expedition.EventNoClue:
		p.line("%s", p.muted.Render("Nothing of interest here."))
	case expedition.EventExits:
		p.line("  (l) left:  %s", door(e.Left))
		p.line("  (r) right: %s", door(e.Right))
		p.line("  (s) stop and review the case")
	case expedition.EventBlocked:
		p.line("%s", p.warn.Render("Dead end: there is no door to the "+e.Direction.String()+"."))
	case expedition.EventInvalid:
		p.line("%s", p.warn.Render(fmt.Sprintf("Unknown command %q. Use left, right or stop.", strings.TrimSpace(e.Input))))
	case expedition.EventStopped:
		switch e.Reason {
		case expedition.ReachedLeaf:
			p.line("%s", p.muted.Render("No doors lead on from here. The exploration ends."))
		case expedition.InputClosed:
			p.line("%s", p.muted.Render("No more input. The exploration ends."))
		default:
			p.line("%s", p.muted.Render("You stop exploring."))
		}
	}
}

func door(name string) string {
	if name == "" {
		return "no way through"
	}
	return name
}

// Clues lists the collected clues, which the caller passes in ascending
// order.
func (p *Printer) Clues(clues []string) {
	p.line("\n%s", p.header.Render("Detective's report"))
	if len(clues) == 0 {
		p.line("No clues were collected.")
		return
	}
	p.line("Collected clues (alphabetical):")
	for _, c := range clues {
		p.line("  - %s", c)
	}
}

// Suspects lists the names that may be accused.
func (p *Printer) Suspects(names []string) {
	if len(names) == 0 {
		return
	}
	p.line("Suspects: %s", strings.Join(names, ", "))
}

// Verdict shows how each clue resolved and the final judgment.
func (p *Printer) Verdict(v verdict.Verdict) {
	for _, f := range v.Findings {
		mark := " "
		if f.Matches {
			mark = "*"
		}
		p.line(" %s %s -> %s", mark, f.Clue, f.Suspect)
	}
	p.line("Evidence against %s: %d (needed %d)", v.Accused, v.Evidence, v.Threshold)
	if v.Sufficient() {
		p.line("%s", p.good.Render("Verdict: "+v.Outcome().String()+". "+v.Accused+" is arrested."))
		return
	}
	p.line("%s", p.bad.Render("Verdict: "+v.Outcome().String()+". "+v.Accused+" walks free."))
}
