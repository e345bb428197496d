package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{"", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"WARNING", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf, Prefix: "test"})

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn %d", 1)
	l.Error("error")

	out := buf.String()
	if strings.Contains(out, "debug") || strings.Contains(out, "] test: info") {
		t.Errorf("output contains messages below the level:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] test: warn 1") {
		t.Errorf("output missing warning:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR] test: error") {
		t.Errorf("output missing error:\n%s", out)
	}
}

func TestLoggerFieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf}).
		WithComponent("dispatcher").
		WithFields(map[string]any{"origin": "config", "line": 3})

	l.Info("applied")

	want := "applied {component=dispatcher, line=3, origin=config}\n"
	if got := buf.String(); !strings.HasSuffix(got, want) {
		t.Errorf("line = %q, want suffix %q", got, want)
	}
}

func TestDerivedLoggerSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(Config{Level: LevelInfo, Output: &buf})
	child := root.WithComponent("app")

	root.SetLevel(LevelError)
	child.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("child logged below the root level: %q", buf.String())
	}
	if child.Level() != LevelError {
		t.Errorf("child.Level() = %v, want %v", child.Level(), LevelError)
	}
}

func TestWithFieldDoesNotModifyParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Config{Output: &buf})
	_ = parent.WithField("k", "v")

	parent.Info("plain")
	if strings.Contains(buf.String(), "k=v") {
		t.Errorf("parent logged child field: %q", buf.String())
	}
}

func TestDisableEnable(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf})

	l.Disable()
	l.Error("hidden")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}

	l.Enable()
	l.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("enabled logger output = %q", buf.String())
	}
}

func TestNull(t *testing.T) {
	l := Null()
	l.Error("nothing")
	l.WithField("a", 1).Error("nothing")
}

func TestSetDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	defer SetDefault(prev)

	SetDefault(New(Config{Output: &buf}))
	Default().Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("default logger output = %q", buf.String())
	}
}
