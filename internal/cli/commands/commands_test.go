package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const workspaceConfig = `{
	"schemaVersion": "1.0.0",
	"steps": [
		{"name": "foo", "description": "Copy a", "src": ["src/a.txt"], "dest": "out/a.txt", "tasks": ["mark"]},
		{"name": "all", "src": "src/a.txt", "dest": "missing/*.txt", "tasks": ["newer:foo"]},
		{"name": "broken", "src": "src/a.txt", "dest": "out/a.txt", "tasks": ["fail"]}
	],
	"actions": {
		// appends one line per run
		"mark": {"shell": "echo ran >> ran.log"},
		"fail": {"shell": "exit 3"}
	}
}`

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// touch writes rel under root and sets its modification time.
func touch(t *testing.T, root, rel string, mtime time.Time) {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(rel), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	if err := os.Chtimes(p, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", rel, err)
	}
}

// newWorkspace creates a workspace whose source is newer than its
// destination when stale is set, and older otherwise.
func newWorkspace(t *testing.T, stale bool) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "newer.jsonc"), []byte(workspaceConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	touch(t, root, "out/a.txt", baseTime)
	if stale {
		touch(t, root, "src/a.txt", baseTime.Add(time.Hour))
	} else {
		touch(t, root, "src/a.txt", baseTime.Add(-time.Hour))
	}
	return root
}

func runCount(t *testing.T, root string) int {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(root, "ran.log"))
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatalf("read ran.log: %v", err)
	}
	return bytes.Count(b, []byte("ran\n"))
}

func evalOptions(root string, out, errOut *bytes.Buffer, steps ...string) EvalOptions {
	return EvalOptions{
		Root:    root,
		Steps:   steps,
		NoColor: true,
		Stdout:  out,
		Stderr:  errOut,
	}
}
