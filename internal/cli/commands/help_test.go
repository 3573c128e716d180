package commands

import "testing"

func TestShowHelpTopics(t *testing.T) {
	for _, topic := range []string{"run", "check", "list", "ls", "validate", "init", "history", "version", "help"} {
		if err := ShowHelpTopic(topic); err != nil {
			t.Errorf("ShowHelpTopic(%q) error: %v", topic, err)
		}
	}
}

func TestShowHelpUnknownTopic(t *testing.T) {
	if err := ShowHelpTopic("nope"); err == nil {
		t.Error("expected error for unknown topic")
	}
}

func TestRunHelp(t *testing.T) {
	if err := RunHelp(nil); err != nil {
		t.Errorf("RunHelp() error: %v", err)
	}
	if err := RunHelp([]string{" RUN "}); err != nil {
		t.Errorf("RunHelp(RUN) error: %v", err)
	}
}
