package store

import (
	"os"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	body := "path: " + filepath.Join(dir, "db") + "\n" +
		"log:\n  level: debug\n" +
		"layout:\n  interval_policy: flag\n" +
		"delete:\n  cascade: children\n" +
		"zoom:\n  default: 50\n"
	if err := os.WriteFile(filepath.Join(dir, ".annals.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ANNALS_CONFIG_PATH", dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BasePath() != filepath.Join(dir, "db") {
		t.Fatalf("expected path under %s, got %s", dir, cfg.BasePath())
	}
	if cfg.LogLevel() != "debug" || cfg.IntervalPolicy() != "flag" || cfg.Cascade() != "children" || cfg.ZoomDefault() != 50 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadConfigDefaultsAndEnv(t *testing.T) {
	t.Setenv("ANNALS_CONFIG_PATH", t.TempDir())
	t.Setenv("ANNALS_DELETE_CASCADE", "children")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if cfg.BasePath() != filepath.Join(home, ".annals.db") {
		t.Fatalf("expected expanded default path, got %s", cfg.BasePath())
	}
	if cfg.Cascade() != "children" {
		t.Fatalf("expected env override, got %s", cfg.Cascade())
	}
	if cfg.IntervalPolicy() != DefaultIntervalPolicy || cfg.ZoomDefault() != DefaultZoom {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}
