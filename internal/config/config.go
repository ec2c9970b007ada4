// Package config loads and saves pledge configuration and the campaign
// catalog.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spendforprogress/pledge/internal/model"

	"github.com/BurntSushi/toml"
)

// Config holds all pledge configuration.
type Config struct {
	Pledge     PledgeConfig     `toml:"pledge"`
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Campaigns  []model.Campaign `toml:"campaigns,omitempty"`
}

// PledgeConfig holds the pledge policy.
type PledgeConfig struct {
	// DonationRate is the pledged fraction of each purchase.
	DonationRate float64 `toml:"donation_rate"`
	// RequireCampaign makes the guided flow insist on a campaign
	// selection before confirming a donation.
	RequireCampaign bool `toml:"require_campaign"`
	// RecordOnSubmit records the purchase as soon as its amount is
	// entered rather than together with the donation at confirmation.
	RecordOnSubmit bool `toml:"record_on_submit"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir string `toml:"data_dir,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultCampaigns is the built-in catalog, used when the config file
// names none.
var DefaultCampaigns = []model.Campaign{
	{Name: "Education"},
	{Name: "Healthcare"},
	{Name: "Environment"},
	{Name: "Social Justice"},
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Pledge: PledgeConfig{
			DonationRate:    0.5,
			RequireCampaign: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pledge")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pledge")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the directory holding the ledger database, honoring
// PLEDGE_DATA_DIR and the config override, in that order.
func DataDir(cfg Config) string {
	if dir := os.Getenv("PLEDGE_DATA_DIR"); dir != "" {
		return dir
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "pledge")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "pledge")
}

// DBPath returns the full path to the ledger database.
func DBPath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "pledge.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Pledge.DonationRate <= 0 || cfg.Pledge.DonationRate > 1 {
		cfg.Pledge.DonationRate = 0.5
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Catalog returns the configured campaigns, falling back to the built-in
// catalog. The result is read-only to the core.
func Catalog(cfg Config) []model.Campaign {
	if len(cfg.Campaigns) > 0 {
		out := make([]model.Campaign, len(cfg.Campaigns))
		copy(out, cfg.Campaigns)
		return out
	}
	out := make([]model.Campaign, len(DefaultCampaigns))
	copy(out, DefaultCampaigns)
	return out
}
