// Package game plays one mystery from start to verdict.
//
// Data flow: the scenario builds a fresh mansion and the suspect index; an
// expedition walks the mansion and fills its ledger; the ledger is shown in
// ascending order; the player names a suspect; the verdict engine resolves
// every clue and judges the accusation.
package game

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"sleuth/internal/expedition"
	"sleuth/internal/fixture"
	"sleuth/internal/verdict"
)

// Input is the player side: one command per turn, then an accusation.
type Input interface {
	expedition.Source
	// Accuse asks for the accused name. suspects lists the known names.
	Accuse(ctx context.Context, suspects []string) (string, error)
}

// Output receives everything the player should see.
type Output interface {
	expedition.Notifier
	Clues(clues []string)
	Suspects(names []string)
	Verdict(v verdict.Verdict)
}

// Result summarises a finished game.
type Result struct {
	Verdict verdict.Verdict
	Clues   []string
	Turns   int
	Reason  expedition.StopReason
}

type config struct {
	threshold int
	leafStop  *bool
	log       logrus.FieldLogger
}

// Option configures Play.
type Option func(*config)

// WithThreshold overrides the scenario's evidence threshold when n > 0.
func WithThreshold(n int) Option {
	return func(c *config) { c.threshold = n }
}

// WithLeafStop overrides the scenario's leaf-stop choice.
func WithLeafStop(on bool) Option {
	return func(c *config) { c.leafStop = &on }
}

// WithLogger sets the logger passed down to the expedition.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) { c.log = l }
}

// Threshold picks the evidence threshold: explicit override, then the
// scenario's own, then verdict.DefaultThreshold.
func Threshold(override int, sc *fixture.Scenario) int {
	switch {
	case override > 0:
		return override
	case sc.Threshold > 0:
		return sc.Threshold
	default:
		return verdict.DefaultThreshold
	}
}

// Play runs the scenario to a verdict. The map and index are built before
// the first turn; a malformed scenario fails here and nothing is played.
func Play(ctx context.Context, sc *fixture.Scenario, in Input, out Output, opts ...Option) (*Result, error) {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	cfg := config{log: quiet}
	for _, opt := range opts {
		opt(&cfg)
	}
	leafStop := sc.LeafStop
	if cfg.leafStop != nil {
		leafStop = *cfg.leafStop
	}
	threshold := Threshold(cfg.threshold, sc)

	m, err := sc.Mansion()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	index := sc.Index()
	cfg.log.WithFields(logrus.Fields{
		"title":     sc.Title,
		"rooms":     m.Len(),
		"records":   index.Len(),
		"threshold": threshold,
		"leaf_stop": leafStop,
	}).Info("game started")

	exp := expedition.New(m,
		expedition.WithNotifier(out),
		expedition.WithLogger(cfg.log),
		expedition.WithLeafStop(leafStop),
	)
	if err := exp.Run(ctx, in); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	clues := exp.Ledger().Clues()
	out.Clues(clues)
	names := index.Suspects()
	out.Suspects(names)

	accused, err := in.Accuse(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("game: read accusation: %w", err)
	}
	v := verdict.Judge(exp.Ledger(), index, accused, threshold)
	cfg.log.WithFields(logrus.Fields{
		"accused":  accused,
		"evidence": v.Evidence,
		"outcome":  v.Outcome().String(),
	}).Info("verdict rendered")
	out.Verdict(v)

	return &Result{
		Verdict: v,
		Clues:   clues,
		Turns:   exp.Turns(),
		Reason:  exp.Reason(),
	}, nil
}
