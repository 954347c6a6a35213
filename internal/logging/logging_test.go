package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func restore(t *testing.T) {
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	})
}

func TestInitLevel(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	if err := Init("warn", false, &buf); err != nil {
		t.Fatalf("init: %v", err)
	}

	log.Debug().Msg("hidden")
	log.Warn().Str("key", "live_cache:x").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered: %s", out)
	}
	if !strings.Contains(out, `"message":"shown"`) || !strings.Contains(out, `"key":"live_cache:x"`) {
		t.Errorf("expected structured warn line, got %s", out)
	}
}

func TestInitEmptyLevelDefaultsToWarn(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	if err := Init("", false, &buf); err != nil {
		t.Fatalf("init: %v", err)
	}
	log.Info().Msg("quiet")
	if buf.Len() != 0 {
		t.Errorf("expected no output at info, got %s", buf.String())
	}
}

func TestInitPretty(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	if err := Init("debug", true, &buf); err != nil {
		t.Fatalf("init: %v", err)
	}
	log.Debug().Msg("hello")
	if !strings.Contains(buf.String(), "hello") || strings.Contains(buf.String(), `"message"`) {
		t.Errorf("expected console output, got %s", buf.String())
	}
}

func TestInitBadLevel(t *testing.T) {
	restore(t)
	if err := Init("loud", false, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown level")
	}
}
