package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mehmetkoksal-w/newer/internal/fsutil"
)

func normalizeGlob(g string) string {
	return fsutil.NormalizeGlob(g)
}

// Check enforces the rules the schema cannot express. All problems are
// reported together.
func (c *Config) Check() error {
	var errs []error
	seen := make(map[string]struct{}, len(c.Steps))

	for i, s := range c.Steps {
		label := s.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			errs = append(errs, fmt.Errorf("step %s: name is required", label))
		}
		if _, dup := seen[s.Name]; dup && s.Name != "" {
			errs = append(errs, fmt.Errorf("step %s: duplicate name", label))
		}
		seen[s.Name] = struct{}{}

		if len(s.Files) > 0 && (!s.Src.IsZero() || !s.Dest.IsZero()) {
			errs = append(errs, fmt.Errorf("step %s: use either src/dest or files, not both", label))
		}
		pairs := s.Pairs()
		if len(pairs) == 0 {
			errs = append(errs, fmt.Errorf("step %s: no files declared", label))
		}
		for j, p := range pairs {
			errs = append(errs, checkPair(label, j, p)...)
		}
		for _, task := range s.Tasks {
			if err := c.checkTask(label, task); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, name := range sortedKeys(c.Actions) {
		a := c.Actions[name]
		if strings.HasPrefix(name, StepPrefix) {
			errs = append(errs, fmt.Errorf("action %s: names starting with %q are reserved for steps", name, StepPrefix))
		}
		if (len(a.Run) == 0) == (a.Shell == "") {
			errs = append(errs, fmt.Errorf("action %s: exactly one of run or shell is required", name))
		}
	}

	for _, g := range c.Ignore {
		if !fsutil.ValidatePattern(g) {
			errs = append(errs, fmt.Errorf("ignore: malformed pattern %q", g))
		}
	}

	if err := c.checkCycles(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func checkPair(step string, idx int, p FilePair) []error {
	var errs []error
	where := fmt.Sprintf("step %s: files[%d]", step, idx)
	if p.Src.IsZero() {
		errs = append(errs, fmt.Errorf("%s: at least one source is required", where))
	}
	if p.Dest.IsZero() {
		errs = append(errs, fmt.Errorf("%s: a destination is required", where))
	}
	for _, src := range p.Src.Values {
		if !fsutil.ValidatePattern(strings.TrimPrefix(src, "!")) {
			errs = append(errs, fmt.Errorf("%s: malformed source pattern %q", where, src))
		}
	}
	for _, dest := range p.Dest.Values {
		if !fsutil.ValidatePattern(strings.TrimSuffix(dest, "/")) {
			errs = append(errs, fmt.Errorf("%s: malformed destination pattern %q", where, dest))
		}
	}
	return errs
}

func (c *Config) checkTask(step, task string) error {
	if name, ok := strings.CutPrefix(task, StepPrefix); ok {
		if _, found := c.Step(name); !found {
			return fmt.Errorf("step %s: task %q refers to unknown step %q", step, task, name)
		}
		return nil
	}
	if _, ok := c.Actions[task]; !ok {
		return fmt.Errorf("step %s: task %q is not a defined action", step, task)
	}
	return nil
}

// checkCycles rejects steps that trigger themselves through newer: tasks.
func (c *Config) checkCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(c.Steps))

	var visit func(name string, trail []string) error
	visit = func(name string, trail []string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("step cycle: %s", strings.Join(append(trail, name), " -> "))
		case done:
			return nil
		}
		state[name] = visiting
		s, _ := c.Step(name)
		for _, task := range s.Tasks {
			next, ok := strings.CutPrefix(task, StepPrefix)
			if !ok {
				continue
			}
			if _, found := c.Step(next); !found {
				continue
			}
			if err := visit(next, append(trail, name)); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}

	for _, s := range c.Steps {
		if err := visit(s.Name, nil); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]Action) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
