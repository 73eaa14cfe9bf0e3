package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	if err := Init(path, "debug"); err != nil {
		t.Fatalf("init: %v", err)
	}

	Info("asset service starting")
	Debug("routing configured")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "INFO [FLEETSENSE] asset service starting") {
		t.Errorf("missing info line:\n%s", out)
	}
	if !strings.Contains(out, "DEBUG [FLEETSENSE] routing configured") {
		t.Errorf("missing debug line:\n%s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	if err := Init("", "warn"); err != nil {
		t.Fatalf("init: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("quiet")
	Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info leaked past warn level:\n%s", out)
	}
	if !strings.Contains(out, "WARN [FLEETSENSE] loud") {
		t.Errorf("missing warn line:\n%s", out)
	}
}

func TestSetOutputRedirects(t *testing.T) {
	if err := Init("", "info"); err != nil {
		t.Fatalf("init: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Warn("summary total 3 does not match snapshot length 2")
	if !strings.Contains(buf.String(), "does not match snapshot length") {
		t.Errorf("redirected output missing message:\n%s", buf.String())
	}
}

func TestWithPrefix(t *testing.T) {
	if err := Init("", "debug"); err != nil {
		t.Fatalf("init: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	l := With("INGEST")
	l.Warn("summary mismatch")
	if !strings.Contains(buf.String(), "[FLEETSENSE] [INGEST] summary mismatch") {
		t.Errorf("prefixed output = %q", buf.String())
	}
}

func TestWithBeforeInitIsSafe(t *testing.T) {
	saved := std
	std = nil
	defer func() { std = saved }()

	l := With("HTTP")
	// Both must be harmless no-ops with no logger configured.
	l.Info("ignored")
	Warn("ignored")
}
