package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInitStampsServiceAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Init(Options{Level: "info", Output: &buf})

	log.Debug().Msg("dropped")
	log.Info().Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["service"] != "ems-api" {
		t.Fatalf("expected service field ems-api, got %v", entry["service"])
	}
	if entry["message"] != "kept" {
		t.Fatalf("unexpected message %v", entry["message"])
	}

	// Init is a singleton; a second call must return the same logger.
	again := Init(Options{Level: "error", Output: &bytes.Buffer{}})
	before := buf.Len()
	again.Info().Msg("still the first writer")
	if buf.Len() == before {
		t.Fatalf("second Init should not reconfigure the logger")
	}
}
