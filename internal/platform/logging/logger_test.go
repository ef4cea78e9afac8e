package logging

import (
	"io"
	"os"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestNewJSON_StampsServiceField(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("create pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	logger := NewJSON("reality-games-api", LevelInfo)
	os.Stdout = orig

	logger.Info("pick reminder sent", "league_id", "lg-1")
	_ = w.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read log output: %v", err)
	}
	first := strings.SplitN(strings.TrimSpace(string(raw)), "\n", 2)[0]

	var line map[string]any
	if err := sonic.Unmarshal([]byte(first), &line); err != nil {
		t.Fatalf("unmarshal log line %q: %v", first, err)
	}
	if got, _ := line["service"].(string); got != "reality-games-api" {
		t.Fatalf("expected service field on log line, got %q in %s", got, first)
	}
	if got, _ := line["msg"].(string); got != "pick reminder sent" {
		t.Fatalf("unexpected message: %s", first)
	}
	if got, _ := line["league_id"].(string); got != "lg-1" {
		t.Fatalf("expected structured field, got %s", first)
	}
}
