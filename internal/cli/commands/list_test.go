package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunListInvalidFlag(t *testing.T) {
	if err := RunList([]string{"--invalid-flag"}); err == nil {
		t.Error("expected error for invalid flag")
	}
}

func TestExecuteList(t *testing.T) {
	root := newWorkspace(t, true)
	var out bytes.Buffer

	if err := ExecuteList(ListOptions{Root: root, Sources: true, Stdout: &out}); err != nil {
		t.Fatalf("ExecuteList() error: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"foo - Copy a\n",
		"  [1] [src/a.txt] -> out/a.txt\n",
		"        src/a.txt\n",
		"  tasks: mark\n",
		"all\n",
		"  [1] src/a.txt -> missing/*.txt\n",
		"  tasks: newer:foo\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}
}
