package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/prism-tower/engine/tower"
	"github.com/spf13/pflag"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := Defaults()
	if cfg.Width != d.Width || cfg.Height != d.Height || cfg.Title != d.Title {
		t.Errorf("window = %dx%d %q", cfg.Width, cfg.Height, cfg.Title)
	}
	if cfg.Rate != tower.DefaultRotationRate || cfg.Zoom != 30 || cfg.MSAA != 4 || !cfg.VSync {
		t.Errorf("got %+v", cfg)
	}
	table, err := cfg.ColorTable()
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != len(tower.DefaultColorTable()) {
		t.Errorf("default table has %d levels", len(table))
	}
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	path := writeFile(t, "tower.yaml", `
width: 800
height: 600
rate: 1.5
zoom: 40
half_height: 0.25
levels:
  - a: "#ff0000"
    b: null
  - b: "#00f"
`)
	t.Setenv("TOWER_HEIGHT", "500")
	t.Setenv("TOWER_ZOOM", "45")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float32("zoom", 30, "")
	flags.Bool("profile", false, "")
	if err := flags.Parse([]string{"--zoom=50"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != 800 {
		t.Errorf("width = %d, want file value 800", cfg.Width)
	}
	if cfg.Height != 500 {
		t.Errorf("height = %d, want env value 500", cfg.Height)
	}
	if cfg.Zoom != 50 {
		t.Errorf("zoom = %v, want flag value 50", cfg.Zoom)
	}
	if cfg.Profile {
		t.Error("unset flag must not override the default")
	}
	if cfg.Rate != 1.5 || cfg.HalfHeight != 0.25 || cfg.HalfWidth != 0.5 {
		t.Errorf("rate/dims = %v %v %v", cfg.Rate, cfg.HalfWidth, cfg.HalfHeight)
	}

	table, err := cfg.ColorTable()
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 2 {
		t.Fatalf("levels = %d, want 2", len(table))
	}
	if table[0].A == nil || table[0].A.Hex() != "#ff0000" || table[0].B != nil {
		t.Errorf("level 0 = %+v", table[0])
	}
	if table[1].A != nil || table[1].B == nil || table[1].B.Hex() != "#0000ff" {
		t.Errorf("level 1 = %+v", table[1])
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad color":  "levels:\n  - a: \"#12345\"\n",
		"zero width": "width: 0\n",
		"bad dims":   "half_width: -1\n",
		"zero zoom":  "zoom: 0\n",
		"neg rate":   "rate: -0.5\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "c.yaml", body), nil)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestBadColorWrapsTowerError(t *testing.T) {
	bad := "nope"
	cfg := Defaults()
	cfg.Levels = []LevelConfig{{A: &bad}}
	if _, err := cfg.ColorTable(); !errors.Is(err, tower.ErrInvalidColor) {
		t.Fatalf("err = %v, want tower.ErrInvalidColor", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatal("expected a read error")
	}
}
