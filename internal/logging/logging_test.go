package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.WarnLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"trace", zerolog.NoLevel, true},
		{"loud", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("warn", &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debug().Msg("hidden line")
	log.Warn().Msg("visible line")

	out := buf.String()
	if strings.Contains(out, "hidden line") {
		t.Errorf("debug message written at warn level: %q", out)
	}
	if !strings.Contains(out, "visible line") {
		t.Errorf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "component=slotmap") {
		t.Errorf("component field missing: %q", out)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("verbose", &bytes.Buffer{}); err == nil {
		t.Error("New() expected error for invalid level")
	}
}
