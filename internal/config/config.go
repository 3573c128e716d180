package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/mehmetkoksal-w/newer/internal/jsonc"
	"github.com/mehmetkoksal-w/newer/internal/stale"
	"github.com/mehmetkoksal-w/newer/schemas"
	"github.com/mehmetkoksal-w/newer/starter"
)

// StepPrefix marks a task that runs another step instead of an action.
const StepPrefix = "newer:"

// StateDir holds files the tool writes into a workspace.
const StateDir = ".newer"

// ErrNoConfig is returned when no configuration file can be found.
var ErrNoConfig = errors.New("no newer configuration found")

// FileNames are the configuration files looked up in the workspace root,
// in order.
var FileNames = []string{"newer.jsonc", "newer.json", "newer.toml"}

// Patterns is a list of paths or globs that may be written as a single
// string or as an array.
type Patterns struct {
	Values []string
	List   bool
}

func (p *Patterns) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		p.Values, p.List = []string{s}, false
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("expected string or array of strings: %w", err)
	}
	p.Values, p.List = list, true
	return nil
}

func (p Patterns) MarshalJSON() ([]byte, error) {
	if !p.List && len(p.Values) == 1 {
		return json.Marshal(p.Values[0])
	}
	if p.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.Values)
}

// IsZero reports whether nothing was declared.
func (p Patterns) IsZero() bool {
	return len(p.Values) == 0
}

// Destination converts the patterns to the core's tagged variant.
func (p Patterns) Destination() stale.Destination {
	if p.List {
		return stale.PatternList(p.Values...)
	}
	if len(p.Values) == 0 {
		return stale.Destination{}
	}
	return stale.SinglePattern(p.Values[0])
}

// FilePair is one src/dest declaration.
type FilePair struct {
	Src  Patterns `json:"src"`
	Dest Patterns `json:"dest"`
}

// Step is one named build step. Either Src/Dest or Files is used.
type Step struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Src         Patterns   `json:"src,omitzero"`
	Dest        Patterns   `json:"dest,omitzero"`
	Files       []FilePair `json:"files,omitempty"`
	Tasks       []string   `json:"tasks,omitempty"`
}

// Pairs returns the file pairs of the step in declaration order.
func (s Step) Pairs() []FilePair {
	if len(s.Files) > 0 {
		return s.Files
	}
	if s.Src.IsZero() && s.Dest.IsZero() {
		return nil
	}
	return []FilePair{{Src: s.Src, Dest: s.Dest}}
}

// Action is a command run when a step is stale.
type Action struct {
	Description string            `json:"description,omitempty"`
	Run         []string          `json:"run,omitempty"`
	Shell       string            `json:"shell,omitempty"`
	Dir         string            `json:"dir,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
}

// CommandLine renders the action for display.
func (a Action) CommandLine() string {
	if a.Shell != "" {
		return a.Shell
	}
	return strings.Join(a.Run, " ")
}

// Config mirrors newer.jsonc.
type Config struct {
	SchemaVersion string            `json:"schemaVersion,omitempty"`
	Ignore        []string          `json:"ignore,omitempty"`
	Journal       bool              `json:"journal,omitempty"`
	Steps         []Step            `json:"steps"`
	Actions       map[string]Action `json:"actions,omitempty"`

	// Root is the workspace root that relative paths resolve against.
	Root string `json:"-"`
	// Path is the file the configuration was loaded from.
	Path string `json:"-"`
}

// Step looks up a step by name.
func (c *Config) Step(name string) (Step, bool) {
	for _, s := range c.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}

// StepNames returns step names in declaration order.
func (c *Config) StepNames() []string {
	names := make([]string, 0, len(c.Steps))
	for _, s := range c.Steps {
		names = append(names, s.Name)
	}
	return names
}

// Find returns the configuration file to load. An explicit path wins;
// otherwise FileNames are tried in root.
func Find(root, explicit string) (string, error) {
	if explicit != "" {
		p := explicit
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return p, nil
	}
	for _, name := range FileNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", ErrNoConfig, root, strings.Join(FileNames, ", "))
}

// Load finds, decodes, validates and checks the configuration of root.
func Load(root, explicit string) (*Config, error) {
	rootPath, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	path, err := Find(rootPath, explicit)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Root = rootPath
	return cfg, nil
}

// LoadFile decodes and validates a single configuration file. The workspace
// root defaults to the file's directory.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := normalize(path, data)
	if err != nil {
		return nil, err
	}
	if err := schemas.Validate(schemas.Config, doc); err != nil {
		return nil, fmt.Errorf("%s invalid: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(doc, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	cfg.Ignore = MergeGlobs(DefaultIgnore(), cfg.Ignore)
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// normalize turns any supported format into plain JSON.
func normalize(path string, data []byte) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", path, err)
		}
		return b, nil
	}
	return jsonc.Clean(data), nil
}

// DefaultIgnore returns the globs never picked up by source expansion.
func DefaultIgnore() []string {
	return []string{
		".git/**",
		StateDir + "/**",
		"node_modules/**",
	}
}

// MergeGlobs appends user globs to defaults, normalized and de-duplicated.
func MergeGlobs(defaults, user []string) []string {
	seen := make(map[string]struct{})
	var merged []string
	appendIfMissing := func(globs []string) {
		for _, g := range globs {
			norm := normalizeGlob(g)
			if norm == "" {
				continue
			}
			if _, ok := seen[norm]; ok {
				continue
			}
			seen[norm] = struct{}{}
			merged = append(merged, norm)
		}
	}
	appendIfMissing(defaults)
	appendIfMissing(user)
	return merged
}

// EnsureLayout creates the state directory under root.
func EnsureLayout(root string) (string, error) {
	dir := filepath.Join(root, StateDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}

// WriteTemplate renders a starter template into destPath. An existing file
// is left alone unless allowOverwrite is set.
func WriteTemplate(destPath, templateName string, replacements map[string]string, allowOverwrite bool) error {
	if _, err := os.Stat(destPath); err == nil && !allowOverwrite {
		return nil
	}
	tpl, err := starter.Get(templateName)
	if err != nil {
		return fmt.Errorf("load template %s: %w", templateName, err)
	}
	if replacements == nil {
		replacements = map[string]string{}
	}
	replacements["createdAt"] = replaceZero(replacements["createdAt"], time.Now().UTC().Format(time.RFC3339))
	contents := starter.Apply(tpl, replacements)
	if err := os.WriteFile(destPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	return nil
}

func replaceZero(current, fallback string) string {
	if strings.TrimSpace(current) == "" {
		return fallback
	}
	return current
}
