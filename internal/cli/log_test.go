package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("row") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("row without BIN") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("row without BIN") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestStage(t *testing.T) {
	var buf bytes.Buffer
	st := startStage(newLogger(&buf, log.InfoLevel), "datasets loaded")
	st.done("contacts", 7, "portfolios", 2)

	out := buf.String()
	for _, want := range []string{"datasets loaded", "contacts=7", "portfolios=2", "duration="} {
		if !strings.Contains(out, want) {
			t.Errorf("stage output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "starting") {
		t.Error("start message must be debug only")
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context must yield log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), custom))
	if got != custom {
		t.Fatal("loggerFromContext did not return the stored logger")
	}
	got.Info("served")
	if buf.Len() == 0 {
		t.Error("stored logger should write to its buffer")
	}
}
