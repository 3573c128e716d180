package logger

import (
	"bytes"
	"strings"
	"testing"
)

func capture(t *testing.T, level Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		SetOutput(nil)
		SetLevel(LevelOff)
	})
	return &buf
}

func TestLevelOffOnlyWarns(t *testing.T) {
	buf := capture(t, LevelOff)

	Info("info %d", 1)
	Debug("debug %d", 2)
	Error("error %d", 3)
	Warn("warn %d", 4)

	out := buf.String()
	if strings.Contains(out, "info 1") || strings.Contains(out, "debug 2") || strings.Contains(out, "error 3") {
		t.Fatalf("unexpected output at LevelOff: %q", out)
	}
	if !strings.Contains(out, "[WARN] warn 4") {
		t.Fatalf("expected warning, got %q", out)
	}
}

func TestLevelInfo(t *testing.T) {
	buf := capture(t, LevelInfo)

	Info("checking %s", "foo")
	Debug("hidden")
	Error("boom")

	out := buf.String()
	if !strings.Contains(out, "checking foo") {
		t.Errorf("missing info line: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line leaked at LevelInfo: %q", out)
	}
	if !strings.Contains(out, "[ERROR] boom") {
		t.Errorf("missing error line: %q", out)
	}
	if !IsVerbose() || IsDebug() {
		t.Errorf("IsVerbose/IsDebug mismatch at LevelInfo")
	}
}

func TestLevelDebug(t *testing.T) {
	buf := capture(t, LevelDebug)

	Debug("stat %s", "a.txt")
	if !strings.Contains(buf.String(), "[DEBUG] stat a.txt") {
		t.Fatalf("missing debug line: %q", buf.String())
	}
	if !IsDebug() {
		t.Fatal("expected IsDebug at LevelDebug")
	}
}
