package configwatcher

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"growthpath_backend/internal/config"
	"growthpath_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

const configTemplate = `server:
  port: "%s"
  mode: "debug"
jwt:
  secret: "watcher-test-secret"
  expire_hours: 72
storage:
  type: "minio"
`

func writeConfig(t *testing.T, path, port string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(configTemplate, port)), 0o644))
}

// awaitReload reads reloader callbacks until one carries the expected port.
func awaitReload(t *testing.T, reloaded <-chan *config.Config, port string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.Server.Port == port {
				return
			}
		case <-deadline:
			t.Fatalf("reloader did not observe port %q after config write", port)
		}
	}
}

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "8080")

	reloaded := make(chan *config.Config, 4)
	go WatchConfig(path, nil, func(cfg interface{}) {
		if c, ok := cfg.(*config.Config); ok {
			reloaded <- c
		}
	})

	// let the watcher attach before touching the file
	time.Sleep(300 * time.Millisecond)

	writeConfig(t, path, "9090")
	awaitReload(t, reloaded, "9090")

	// a second write must debounce and fire again
	writeConfig(t, path, "7070")
	awaitReload(t, reloaded, "7070")
}
