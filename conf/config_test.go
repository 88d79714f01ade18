package conf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vegas.yaml")
	body := []byte("table: silver-3\nbuyin: 2500\nloglevel: debug\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ConfInit(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Table != "silver-3" || cfg.BuyIn != 2500 || cfg.LogLevel != "debug" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.BaseURL != DefaultConf.BaseURL || cfg.StatsDB != DefaultConf.StatsDB {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestConfInitMissingFile(t *testing.T) {
	if _, err := ConfInit(filepath.Join(t.TempDir(), "nope.yaml"), false); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestDefaultConf(t *testing.T) {
	if DefaultConf.Table == "" || DefaultConf.BuyIn <= 0 {
		t.Fatal("defaults must describe a playable table")
	}
}
