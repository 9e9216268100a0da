package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwlog "github.com/msto63/fnc/foundation/core/log"
	"github.com/msto63/fnc/pkg/core/config"
)

func TestLevel_Constants(t *testing.T) {
	if LevelDebug != 0 {
		t.Errorf("LevelDebug = %d, want 0", LevelDebug)
	}
	if LevelInfo != 1 {
		t.Errorf("LevelInfo = %d, want 1", LevelInfo)
	}
	if LevelWarn != 2 {
		t.Errorf("LevelWarn = %d, want 2", LevelWarn)
	}
	if LevelError != 3 {
		t.Errorf("LevelError = %d, want 3", LevelError)
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       LoggerConfig
		logDebug  bool
		wantJSON  bool
		wantEmpty bool
	}{
		{
			name:      "json at info drops debug",
			cfg:       LoggerConfig{ServiceName: "fnc", Level: "info", Format: "json"},
			logDebug:  true,
			wantJSON:  true,
			wantEmpty: true,
		},
		{
			name:     "json at debug",
			cfg:      LoggerConfig{ServiceName: "fnc", Level: "debug", Format: "json"},
			logDebug: true,
			wantJSON: true,
		},
		{
			name: "text format",
			cfg:  LoggerConfig{ServiceName: "fnc", Level: "info", Format: "text"},
		},
		{
			name:     "unknown level and format fall back",
			cfg:      LoggerConfig{ServiceName: "fnc", Level: "loud", Format: "xml"},
			wantJSON: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.cfg.Output = &buf
			logger := NewLogger(tt.cfg)

			if tt.logDebug {
				logger.Debug("hello")
			} else {
				logger.Info("hello")
			}

			out := buf.String()
			if tt.wantEmpty {
				if out != "" {
					t.Errorf("Expected no output, got %q", out)
				}
				return
			}
			if !strings.Contains(out, "hello") {
				t.Fatalf("Expected message in output, got %q", out)
			}
			var decoded map[string]interface{}
			isJSON := json.Unmarshal([]byte(out), &decoded) == nil
			if isJSON != tt.wantJSON {
				t.Errorf("Expected JSON=%v, got output %q", tt.wantJSON, out)
			}
		})
	}
}

func TestNewLogger_AdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		ServiceName:       "fnc",
		Level:             "info",
		Format:            "text",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})
	logger.Info("twice")

	if !strings.Contains(primary.String(), "twice") || !strings.Contains(extra.String(), "twice") {
		t.Errorf("Expected both outputs to receive the entry, got %q and %q", primary.String(), extra.String())
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.General.LogLevel = "warn"

	logger := FromConfig("fnc", cfg, false)
	if logger.GetLevel() != mdwlog.LevelWarn {
		t.Errorf("Expected warn level, got %v", logger.GetLevel())
	}

	logger = FromConfig("fnc", cfg, true)
	if logger.GetLevel() != mdwlog.LevelDebug {
		t.Errorf("Expected verbose to force debug, got %v", logger.GetLevel())
	}

	logger = FromConfig("fnc", nil, false)
	if logger.GetLevel() != mdwlog.LevelInfo {
		t.Errorf("Expected info level without config, got %v", logger.GetLevel())
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "repl.log")
	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile failed: %v", err)
	}
	logger := NewLogger(LoggerConfig{ServiceName: "fnc", Level: "info", Format: "text", Output: f})
	logger.Info("to file")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("Expected entry in log file, got %q", string(data))
	}
}

func TestNew(t *testing.T) {
	logger := New("test-service")

	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.name != "test-service" {
		t.Errorf("name = %v, want test-service", logger.name)
	}
}

func TestWrap(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerConfig{Level: "debug", Format: "json", Output: &buf})
	logger := Wrap("grpc", base)

	logger.Info("request", "method", "/fnc.v1.ParseService/Parse", "code", "OK", "dangling")

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if decoded["logger"] != "grpc" {
		t.Errorf("Expected logger name grpc, got %v", decoded["logger"])
	}
	if decoded["method"] != "/fnc.v1.ParseService/Parse" || decoded["code"] != "OK" {
		t.Errorf("Expected key-value fields, got %v", decoded)
	}
	if _, ok := decoded["dangling"]; ok {
		t.Error("Expected a key without value to be dropped")
	}

	if Wrap("fallback", nil) == nil {
		t.Error("Wrap(nil) should return a default logger")
	}
}

func TestLogger_WithLevel(t *testing.T) {
	logger := New("test")
	result := logger.WithLevel(LevelDebug)

	if result == nil {
		t.Error("WithLevel should return a logger")
	}
	if result.name != "test" {
		t.Errorf("name should be preserved: got %v", result.name)
	}
	if result.GetLevel() != mdwlog.LevelDebug {
		t.Errorf("Expected debug level, got %v", result.GetLevel())
	}
}

func TestToFields(t *testing.T) {
	if toFields() != nil {
		t.Error("Expected nil fields for no arguments")
	}
	fields := toFields("key1", "value1", 2, "skipped", "key3", true)
	if len(fields) != 2 || fields["key1"] != "value1" || fields["key3"] != true {
		t.Errorf("Expected two string-keyed fields, got %v", fields)
	}
}
