package commands

import (
	"errors"
	"testing"
)

func TestRegisterAndGet(t *testing.T) {
	saved := registry
	t.Cleanup(func() { registry = saved })
	// Clear registry for test isolation
	registry = make(map[string]*Command)

	cmd := &Command{
		Name:        "test",
		Aliases:     []string{"t", "tst"},
		Description: "Test command",
		Run:         func(args []string) error { return nil },
	}

	Register(cmd)

	// Test getting by name
	got, ok := Get("test")
	if !ok {
		t.Fatal("expected to find command by name")
	}
	if got.Name != "test" {
		t.Errorf("Name = %q, want %q", got.Name, "test")
	}

	// Test getting by alias
	got, ok = Get("t")
	if !ok {
		t.Fatal("expected to find command by alias 't'")
	}
	if got.Name != "test" {
		t.Errorf("Name = %q, want %q", got.Name, "test")
	}

	if _, ok = Get("tst"); !ok {
		t.Error("expected to find command by alias 'tst'")
	}

	// Test getting non-existent command
	if _, ok = Get("nonexistent"); ok {
		t.Error("expected not to find non-existent command")
	}
}

func TestList(t *testing.T) {
	saved := registry
	t.Cleanup(func() { registry = saved })
	registry = make(map[string]*Command)

	Register(&Command{Name: "cmd2", Run: func(args []string) error { return nil }})
	Register(&Command{Name: "cmd1", Aliases: []string{"c1"}, Run: func(args []string) error { return nil }})

	commands := List()
	if len(commands) != 2 {
		t.Fatalf("List() returned %d commands, want 2", len(commands))
	}
	if commands[0].Name != "cmd1" || commands[1].Name != "cmd2" {
		t.Errorf("List() order = %s, %s", commands[0].Name, commands[1].Name)
	}
}

func TestBuiltinCommandsRegistered(t *testing.T) {
	for _, name := range []string{"run", "check", "list", "validate", "init", "history", "help", "ls", "-h", "--help"} {
		if _, ok := Get(name); !ok {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestExitError(t *testing.T) {
	err := error(&ExitError{Code: 2, Err: ErrStale})
	if !errors.Is(err, ErrStale) {
		t.Error("ExitError should unwrap to its cause")
	}
	var exit *ExitError
	if !errors.As(err, &exit) || exit.Code != 2 {
		t.Fatalf("errors.As failed: %v", err)
	}
	if (&ExitError{Code: 3}).Error() != "exit status 3" {
		t.Error("bare ExitError message")
	}
}
