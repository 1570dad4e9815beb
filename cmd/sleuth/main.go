package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"sleuth/internal/casebook"
	"sleuth/internal/fixture"
	"sleuth/internal/game"
	"sleuth/internal/report"
	"sleuth/internal/settings"
)

// command describes a CLI subcommand.
type command struct {
	name  string
	short string
	usage string
	long  string
	run   func(args []string) error
}

// commands is filled in init to break the initialization cycle through
// runPlay → usageErr → findCommand.
var commands []command

func init() {
	commands = []command{
		{
			name:  "play",
			short: "Explore a mansion, collect clues and accuse a suspect",
			usage: "sleuth play [flags] [case]",
			long: `Play a mystery. Without a case the built-in mansion is used; a case is
either a scenario file path or a name installed with 'sleuth add'.

Each turn you may go left, right, or stop. After stopping, the collected
clues are listed alphabetically and you name the guilty suspect.

Flags:
  -threshold N     clues needed for a conviction (default from scenario, else 2)
  -leaf-stop       end the walk in rooms with no doors onward
  -encoding NAME   scenario file encoding, e.g. latin1
  -log-level LVL   logrus level for diagnostics on stderr (default warn)
  -plain           read commands line by line instead of the interactive prompt
  -case-file DIR   write a markdown case report into DIR
`,
			run: runPlay,
		},
		{
			name:  "validate",
			short: "Check that a scenario is playable",
			usage: "sleuth validate [-encoding NAME] <case>",
			long: `Load a scenario, build its mansion and suspect table, and report problems.

Clues with no suspect are listed as notes; they are legal red herrings.
`,
			run: runValidate,
		},
		{
			name:  "index",
			short: "Show how a scenario's clues spread over the suspect table",
			usage: "sleuth index [-encoding NAME] <case>",
			long: `Print the chain length of every bucket of the clue → suspect table.
`,
			run: runIndex,
		},
		{
			name:  "cases",
			short: "List installed cases",
			usage: "sleuth cases",
			long: `List the scenarios installed under ~/.sleuth/cases/.
`,
			run: runCases,
		},
		{
			name:  "add",
			short: "Install a scenario file as a named case",
			usage: "sleuth add [-encoding NAME] <name> <file>",
			long: `Validate a scenario file and copy it to ~/.sleuth/cases/<name>.yaml.

Errors if the case already exists or the scenario is unplayable.
`,
			run: runAdd,
		},
		{
			name:  "remove",
			short: "Uninstall a named case",
			usage: "sleuth remove <name>",
			long: `Delete ~/.sleuth/cases/<name>.yaml. Scenario files elsewhere are untouched.
`,
			run: runRemove,
		},
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "sleuth — a detective game in a mansion of clues\n\n")
	fmt.Fprintf(w, "Usage:\n  sleuth <command> [arguments]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.short)
	}
	fmt.Fprintf(w, "\nRun 'sleuth help <command>' for details on a specific command.\n")
}

func findCommand(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

func printCommandHelp(w io.Writer, name string) {
	cmd, ok := findCommand(name)
	if !ok {
		fmt.Fprintf(w, "sleuth: unknown command %q\n\nRun 'sleuth help' for usage.\n", name)
		return
	}
	fmt.Fprintf(w, "Usage: %s\n\n%s", cmd.usage, cmd.long)
}

// dispatch runs the named command. A command's own -h prints its long help.
func dispatch(args []string) error {
	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		printUsage(os.Stdout)
		return nil
	}
	if args[0] == "help" {
		if len(args) < 2 {
			printUsage(os.Stdout)
		} else {
			printCommandHelp(os.Stdout, args[1])
		}
		return nil
	}
	cmd, ok := findCommand(args[0])
	if !ok {
		return fmt.Errorf("unknown command %q\n\nRun 'sleuth help' for usage.", args[0])
	}
	err := cmd.run(args[1:])
	if errors.Is(err, flag.ErrHelp) {
		printCommandHelp(os.Stdout, cmd.name)
		return nil
	}
	return err
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// usageErr attaches the command's usage line to a flag error, or reports a
// bad argument count when err is nil.
func usageErr(name string, err error) error {
	cmd, _ := findCommand(name)
	if err == nil {
		return fmt.Errorf("usage: %s", cmd.usage)
	}
	return fmt.Errorf("%w\nusage: %s", err, cmd.usage)
}

func loadSettings() (*settings.Settings, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return settings.Load(wd)
}

func newLogger(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// orSetting returns the flag value when given, else the configured one.
func orSetting(flagValue, configured string) string {
	if flagValue != "" {
		return flagValue
	}
	return configured
}

// loadCase resolves arg (a file path or installed case name) and parses it.
// The casebook is only opened when arg is not a file.
func loadCase(arg, encoding string) (*fixture.Scenario, error) {
	path := arg
	if info, err := os.Stat(arg); err != nil || info.IsDir() {
		book, err := casebook.Open()
		if err != nil {
			return nil, err
		}
		if path, err = book.Resolve(arg); err != nil {
			return nil, err
		}
	}
	return fixture.Load(path, fixture.Options{Encoding: encoding})
}

// ---------------------------------------------------------------------------
// play
// ---------------------------------------------------------------------------

// playFlags holds the play flags that compete with settings. leafStopSet
// is true when -leaf-stop appeared at all, so -leaf-stop=false still wins
// over a configured true.
type playFlags struct {
	threshold   int
	leafStop    bool
	leafStopSet bool
}

// playConfig is what one game actually runs with.
type playConfig struct {
	threshold int
	leafStop  bool
}

// resolvePlay merges flag, then settings, then scenario, then the built-in
// default. A zero -threshold means unset.
func resolvePlay(st *settings.Settings, sc *fixture.Scenario, pf playFlags) playConfig {
	override := pf.threshold
	if override == 0 {
		override = st.ThresholdOr(0)
	}
	cfg := playConfig{
		threshold: game.Threshold(override, sc),
		leafStop:  st.LeafStopOr(sc.LeafStop),
	}
	if pf.leafStopSet {
		cfg.leafStop = pf.leafStop
	}
	return cfg
}

func (c playConfig) options(log logrus.FieldLogger) []game.Option {
	return []game.Option{
		game.WithLogger(log),
		game.WithThreshold(c.threshold),
		game.WithLeafStop(c.leafStop),
	}
}

func runPlay(args []string) error {
	fs := newFlagSet("play")
	threshold := fs.Int("threshold", 0, "")
	leafStop := fs.Bool("leaf-stop", false, "")
	encoding := fs.String("encoding", "", "")
	logLevel := fs.String("log-level", "", "")
	plain := fs.Bool("plain", false, "")
	caseDir := fs.String("case-file", "", "")
	if err := fs.Parse(args); err != nil {
		return usageErr("play", err)
	}
	if fs.NArg() > 1 {
		return usageErr("play", nil)
	}
	if *threshold < 0 {
		return fmt.Errorf("play: -threshold must not be negative")
	}

	st, err := loadSettings()
	if err != nil {
		return err
	}
	level := st.LogLevelOr(logrus.WarnLevel)
	if *logLevel != "" {
		if level, err = logrus.ParseLevel(*logLevel); err != nil {
			return fmt.Errorf("play: %w", err)
		}
	}
	log := newLogger(level)

	sc := fixture.Default()
	if fs.NArg() == 1 {
		if sc, err = loadCase(fs.Arg(0), orSetting(*encoding, st.EncodingOr(""))); err != nil {
			return err
		}
	}

	pf := playFlags{threshold: *threshold, leafStop: *leafStop}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "leaf-stop" {
			pf.leafStopSet = true
		}
	})
	cfg := resolvePlay(st, sc, pf)

	var in game.Input
	if *plain || !isatty.IsTerminal(os.Stdin.Fd()) {
		in = newLineInput(os.Stdin, os.Stdout)
	} else {
		in = promptInput{}
	}
	out := report.NewPrinter(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	title := sc.Title
	if title == "" {
		title = "Untitled mystery"
	}
	fmt.Printf("=== %s ===\n", title)
	res, err := game.Play(ctx, sc, in, out, cfg.options(log)...)
	if err != nil {
		return err
	}

	if dir := orSetting(*caseDir, st.CaseFileDirOr("")); dir != "" {
		path, err := report.WriteCaseFile(dir, title, res.Verdict, time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("case file written to %s\n", path)
	}
	return nil
}

// ---------------------------------------------------------------------------
// validate / index
// ---------------------------------------------------------------------------

func parseCaseArgs(name string, args []string) (string, string, error) {
	fs := newFlagSet(name)
	encoding := fs.String("encoding", "", "")
	if err := fs.Parse(args); err != nil {
		return "", "", usageErr(name, err)
	}
	if fs.NArg() != 1 {
		return "", "", usageErr(name, nil)
	}
	st, err := loadSettings()
	if err != nil {
		return "", "", err
	}
	return fs.Arg(0), orSetting(*encoding, st.EncodingOr("")), nil
}

func runValidate(args []string) error {
	arg, encoding, err := parseCaseArgs("validate", args)
	if err != nil {
		return err
	}
	sc, err := loadCase(arg, encoding)
	if err != nil {
		return err
	}
	if err := sc.Validate(); err != nil {
		return err
	}
	m, _ := sc.Mansion()
	clues := 0
	for _, r := range sc.Rooms {
		if r.Clue != "" {
			clues++
		}
	}
	fmt.Printf("%s: ok, %d rooms, %d clues, %d suspect records\n", arg, m.Len(), clues, len(sc.Suspects))
	for _, c := range sc.Unresolved() {
		fmt.Printf("  note: clue %q has no suspect\n", c)
	}
	return nil
}

func runIndex(args []string) error {
	arg, encoding, err := parseCaseArgs("index", args)
	if err != nil {
		return err
	}
	sc, err := loadCase(arg, encoding)
	if err != nil {
		return err
	}
	ix := sc.Index()
	fmt.Printf("%d records in %d buckets\n", ix.Len(), ix.Buckets())
	for i, n := range ix.ChainLengths() {
		fmt.Printf("  bucket %2d: %s%d\n", i, strings.Repeat("#", n), n)
	}
	return nil
}

// ---------------------------------------------------------------------------
// cases / add / remove
// ---------------------------------------------------------------------------

func runCases(args []string) error {
	fs := newFlagSet("cases")
	if err := fs.Parse(args); err != nil {
		return usageErr("cases", err)
	}
	if fs.NArg() != 0 {
		return usageErr("cases", nil)
	}
	book, err := casebook.Open()
	if err != nil {
		return err
	}
	names, err := book.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("no cases installed (run 'sleuth add <name> <file>')")
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func runAdd(args []string) error {
	fs := newFlagSet("add")
	encoding := fs.String("encoding", "", "")
	if err := fs.Parse(args); err != nil {
		return usageErr("add", err)
	}
	if fs.NArg() != 2 {
		return usageErr("add", nil)
	}
	name, file := fs.Arg(0), fs.Arg(1)
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}
	st, err := loadSettings()
	if err != nil {
		return err
	}
	book, err := casebook.Open()
	if err != nil {
		return err
	}
	if err := book.Add(name, data, fixture.Options{Encoding: orSetting(*encoding, st.EncodingOr(""))}); err != nil {
		return err
	}
	fmt.Printf("added case %q\n", name)
	return nil
}

func runRemove(args []string) error {
	fs := newFlagSet("remove")
	if err := fs.Parse(args); err != nil {
		return usageErr("remove", err)
	}
	if fs.NArg() != 1 {
		return usageErr("remove", nil)
	}
	book, err := casebook.Open()
	if err != nil {
		return err
	}
	if err := book.Remove(fs.Arg(0)); err != nil {
		return err
	}
	fmt.Printf("removed case %q\n", fs.Arg(0))
	return nil
}

func main() {
	if err := dispatch(os.Args[1:]); err != nil {
		logrus.Fatal(err)
	}
}
