package env

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDefaults(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Setenv("NOTES_TEST_PORT", "")
	if got := OrDefault(log, "NOTES_TEST_PORT", "8080"); got != "8080" {
		t.Fatalf("OrDefault: should fall back to default, got %q", got)
	}

	t.Setenv("NOTES_TEST_TIMEOUT", "3s")
	if got := DurationDefault(log, "NOTES_TEST_TIMEOUT", "5s"); got != 3*time.Second {
		t.Fatalf("DurationDefault: should parse env value, got %v", got)
	}

	t.Setenv("NOTES_TEST_TIMEOUT", "soon")
	if got := DurationDefault(log, "NOTES_TEST_TIMEOUT", "5s"); got != 5*time.Second {
		t.Fatalf("DurationDefault: should use default on bad value, got %v", got)
	}

	t.Setenv("NOTES_TEST_WORKERS", "many")
	if got := IntDefault(log, "NOTES_TEST_WORKERS", "2"); got != 2 {
		t.Fatalf("IntDefault: should use default on bad value, got %d", got)
	}

	t.Setenv("NOTES_TEST_ENABLED", "t")
	if !BoolDefault(log, "NOTES_TEST_ENABLED", "f") {
		t.Fatalf("BoolDefault: should parse \"t\" as true")
	}

	t.Setenv("NOTES_TEST_ENABLED", "maybe")
	if !BoolDefault(log, "NOTES_TEST_ENABLED", "true") {
		t.Fatalf("BoolDefault: should use default on bad value")
	}
}

func TestMustPanicsWhenUnset(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Must: should panic when env var is empty")
		}
	}()
	t.Setenv("NOTES_TEST_REQUIRED", "")
	Must(zap.NewNop().Sugar(), "NOTES_TEST_REQUIRED")
}
