// Package casebook manages the library of installed mystery scenarios.
//
// Directory layout:
//
//	~/.sleuth/cases/
//	    <name>.yaml      # one scenario per file
package casebook

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sleuth/internal/fixture"
)

// Casebook is the scenario directory (~/.sleuth/cases/).
type Casebook struct {
	Dir string
}

// baseDir returns the ~/.sleuth/cases directory.
func baseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, ".sleuth", "cases"), nil
}

// Open returns the casebook, creating its directory if needed.
func Open() (*Casebook, error) {
	dir, err := baseDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create casebook: %w", err)
	}
	return &Casebook{Dir: dir}, nil
}

// Path returns the file path for a case name.
func (c *Casebook) Path(name string) string {
	return filepath.Join(c.Dir, name+".yaml")
}

// Add validates data as a scenario and installs it under name. Errors if
// the name is taken or the scenario is unplayable.
func (c *Casebook) Add(name string, data []byte, opts fixture.Options) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid case name %q", name)
	}
	path := c.Path(name)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("case %q already exists in casebook", name)
	}
	sc, err := fixture.Parse(data, opts)
	if err != nil {
		return err
	}
	if err := sc.Validate(); err != nil {
		return fmt.Errorf("case %q: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write case: %w", err)
	}
	return nil
}

// List returns the installed case names, sorted.
func (c *Casebook) List() ([]string, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("read casebook dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Remove deletes an installed case.
func (c *Casebook) Remove(name string) error {
	path := c.Path(name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("case %q not found in casebook", name)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove case: %w", err)
	}
	return nil
}

// Resolve turns a command-line argument into a scenario file path. An
// existing file wins; otherwise arg is looked up as a case name.
func (c *Casebook) Resolve(arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return arg, nil
	}
	path := c.Path(arg)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no scenario file or case named %q (run 'sleuth cases' to list)", arg)
	}
	return path, nil
}
