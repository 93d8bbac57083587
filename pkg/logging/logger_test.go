package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{"ERROR", ErrorLevel},
		{"verbose", InfoLevel}, // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFieldConstructors(t *testing.T) {
	t.Run("Duration", func(t *testing.T) {
		f := Duration("timeout", 5*time.Second)
		if f.Key != "timeout" || f.Value != "5s" {
			t.Errorf("Duration() = %+v", f)
		}
	})

	t.Run("Error", func(t *testing.T) {
		f := Error(errors.New("boom"))
		if f.Key != "error" || f.Value != "boom" {
			t.Errorf("Error() = %+v", f)
		}
	})

	t.Run("Error_nil", func(t *testing.T) {
		if f := Error(nil); f.Value != nil {
			t.Errorf("Error(nil) = %+v", f)
		}
	})

	t.Run("Polarization", func(t *testing.T) {
		if f := Polarization(0.25, true); f.Key != "polarization" || f.Value != 0.25 {
			t.Errorf("Polarization(valid) = %+v", f)
		}
		if f := Polarization(0.25, false); f.Value != nil {
			t.Errorf("Polarization(missing) = %+v, want nil value", f)
		}
	})

	t.Run("Communities", func(t *testing.T) {
		if f := CommunityA(3); f.Key != "community_a" || f.Value != 3 {
			t.Errorf("CommunityA() = %+v", f)
		}
		if f := CommunityB(7); f.Key != "community_b" || f.Value != 7 {
			t.Errorf("CommunityB() = %+v", f)
		}
	})
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("pair analysed", CommunityA(1), CommunityB(2))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}

	if entry.Level != "INFO" {
		t.Errorf("Level = %v, want INFO", entry.Level)
	}
	if entry.Message != "pair analysed" {
		t.Errorf("Message = %v, want 'pair analysed'", entry.Message)
	}
	if entry.Fields["community_a"] != float64(1) { // JSON unmarshals numbers as float64
		t.Errorf("Fields[community_a] = %v, want 1", entry.Fields["community_a"])
	}
	if entry.Time == "" {
		t.Error("Time field is empty")
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(lines))
	}

	for i, want := range []string{"WARN", "ERROR"} {
		var entry LogEntry
		if err := json.Unmarshal([]byte(lines[i]), &entry); err != nil {
			t.Fatalf("Failed to unmarshal entry %d: %v", i, err)
		}
		if entry.Level != want {
			t.Errorf("Entry %d level = %v, want %v", i, entry.Level, want)
		}
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(RunID("run-1"), Component("runner"))
	child.Info("started", Count(3))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if entry.Fields["run_id"] != "run-1" {
		t.Errorf("run_id field = %v, want run-1", entry.Fields["run_id"])
	}
	if entry.Fields["component"] != "runner" {
		t.Errorf("component field = %v, want runner", entry.Fields["component"])
	}
	if entry.Fields["count"] != float64(3) {
		t.Errorf("count field = %v, want 3", entry.Fields["count"])
	}

	// Parent must not inherit child fields
	buf.Reset()
	logger.Info("parent")
	if strings.Contains(buf.String(), "run_id") {
		t.Error("Parent logger picked up child fields")
	}
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, InfoLevel).Info("bare")

	if strings.Contains(buf.String(), `"fields"`) {
		t.Errorf("Expected fields to be omitted, got %s", buf.String())
	}
}

func TestOpen_WritesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, closer, err := Open(Options{Dir: dir, Level: InfoLevel})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	logger.Info("Filter of relevant clusters")
	logger.Debug("dropped")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Filter of relevant clusters") {
		t.Errorf("Log file missing message: %s", data)
	}
	if strings.Contains(string(data), "dropped") {
		t.Error("Debug line written at info level")
	}
}

func TestOpen_Stdout(t *testing.T) {
	logger, closer, err := Open(Options{Level: ErrorLevel})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer closer.Close()

	if logger.writer != os.Stdout {
		t.Error("Expected stdout writer when no directory is set")
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "load", Path("nodes.csv"))
	if elapsed := timer.End(Count(10)); elapsed < 0 {
		t.Errorf("Negative elapsed time %v", elapsed)
	}

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Fields["latency"] == nil {
		t.Error("Expected latency field")
	}
	if entry.Fields["path"] != "nodes.csv" || entry.Fields["count"] != float64(10) {
		t.Errorf("Unexpected fields: %v", entry.Fields)
	}

	buf.Reset()
	StartTimer(logger, "write").EndError(errors.New("disk full"))
	if !strings.Contains(buf.String(), "disk full") || !strings.Contains(buf.String(), `"ERROR"`) {
		t.Errorf("EndError output = %s", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("ignored")
	if _, ok := l.With(Count(1)).(NopLogger); !ok {
		t.Error("NopLogger.With should return a NopLogger")
	}
}
