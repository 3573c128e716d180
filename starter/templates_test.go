package starter

import (
	"strings"
	"testing"
)

func TestGetConfigTemplate(t *testing.T) {
	tpl, err := Get(Config)
	if err != nil {
		t.Fatalf("Get(%q) error: %v", Config, err)
	}
	if !strings.Contains(tpl, "{{step}}") {
		t.Fatal("template is missing the step placeholder")
	}
	if _, err := Get("/" + Config); err != nil {
		t.Fatalf("leading slash should be tolerated: %v", err)
	}
	if _, err := Get("missing.jsonc"); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestApply(t *testing.T) {
	got := Apply("{{a}}-{{b}}-{{a}}", map[string]string{"a": "x", "b": "y"})
	if got != "x-y-x" {
		t.Fatalf("Apply() = %q", got)
	}
	if got := Apply("{{keep}}", nil); got != "{{keep}}" {
		t.Fatalf("Apply(nil) = %q", got)
	}
}
