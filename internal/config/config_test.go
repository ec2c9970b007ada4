package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pledge.DonationRate != 0.5 {
		t.Errorf("DonationRate = %v, want 0.5", cfg.Pledge.DonationRate)
	}
	if !cfg.Pledge.RequireCampaign {
		t.Error("RequireCampaign should default to true")
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if Exists() {
		t.Error("Exists should be false before first save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Pledge.DonationRate = 0.75
	cfg.Pledge.RecordOnSubmit = true
	cfg.Appearance.Theme = "tokyo-night"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Error("Exists should be true after save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Pledge.DonationRate != 0.75 {
		t.Errorf("DonationRate = %v, want 0.75", loaded.Pledge.DonationRate)
	}
	if !loaded.Pledge.RecordOnSubmit {
		t.Error("RecordOnSubmit should survive the round trip")
	}
	if loaded.Appearance.Theme != "tokyo-night" {
		t.Errorf("Theme = %q, want tokyo-night", loaded.Appearance.Theme)
	}
}

func TestLoadClampsBadRate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "pledge", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte("[pledge]\ndonation_rate = 5.0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pledge.DonationRate != 0.5 {
		t.Errorf("DonationRate = %v, want clamped 0.5", cfg.Pledge.DonationRate)
	}
}

func TestDataDirPrecedence(t *testing.T) {
	t.Setenv("PLEDGE_DATA_DIR", "/tmp/override")
	cfg := DefaultConfig()
	cfg.General.DataDir = "/tmp/from-config"

	if got := DataDir(cfg); got != "/tmp/override" {
		t.Errorf("DataDir = %q, want env override", got)
	}

	t.Setenv("PLEDGE_DATA_DIR", "")
	if got := DataDir(cfg); got != "/tmp/from-config" {
		t.Errorf("DataDir = %q, want config value", got)
	}
}

func TestCatalogFallsBackToDefaults(t *testing.T) {
	cfg := DefaultConfig()
	catalog := Catalog(cfg)
	if len(catalog) != len(DefaultCampaigns) {
		t.Fatalf("catalog has %d campaigns, want %d", len(catalog), len(DefaultCampaigns))
	}

	cfg.Campaigns = append(cfg.Campaigns, DefaultCampaigns[0])
	catalog = Catalog(cfg)
	if len(catalog) != 1 {
		t.Errorf("configured catalog has %d campaigns, want 1", len(catalog))
	}

	// The returned slice is a copy
	catalog[0].Name = "mutated"
	if cfg.Campaigns[0].Name == "mutated" {
		t.Error("Catalog should return a copy")
	}
}
