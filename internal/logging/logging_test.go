package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewSessionLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	session, err := NewSessionLogger(dir, Options{Level: "debug", Format: "logfmt"})
	if err != nil {
		t.Fatalf("NewSessionLogger failed: %v", err)
	}
	defer session.Close()

	if session.Dir != dir {
		t.Errorf("Dir: got %q, want %q", session.Dir, dir)
	}
	if !strings.HasSuffix(session.LogPath, ".log") {
		t.Errorf("LogPath: got %q", session.LogPath)
	}

	session.Logger().Info("task saved", "id", 3)
	if err := session.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(session.LogPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "task saved") {
		t.Errorf("log entry missing from file: %q", data)
	}
}

func TestNewSessionLoggerEmptyDir(t *testing.T) {
	if _, err := NewSessionLogger("", Options{}); err == nil {
		t.Error("expected error for empty log dir")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"bogus", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	if ParseFormatter("json") != log.JSONFormatter {
		t.Error("json should map to JSONFormatter")
	}
	if ParseFormatter("logfmt") != log.LogfmtFormatter {
		t.Error("logfmt should map to LogfmtFormatter")
	}
	if ParseFormatter("") != log.TextFormatter {
		t.Error("default should be TextFormatter")
	}
}
