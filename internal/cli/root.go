package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/salah/internal/config"
	"github.com/smokyabdulrahman/salah/internal/logging"
)

// Global flags shared across all subcommands.
var (
	FlagJSON       bool
	FlagConfigPath string
)

// flagKeys maps persistent flags onto the config keys they override.
var flagKeys = []struct {
	flag, key, usage string
}{
	{"city", "city", "Named place, e.g. yangon or mecca (see 'salah places')"},
	{"latitude", "latitude", "Latitude in decimal degrees"},
	{"longitude", "longitude", "Longitude in decimal degrees"},
	{"timezone", "timezone", "IANA zone (Asia/Yangon) or UTC offset in hours (6.5)"},
	{"method", "method", "Calculation method: karachi, mwl, egypt, ummalqura or custom"},
	{"fajr-angle", "fajr_angle", "Fajr depression angle for --method custom, e.g. -18"},
	{"isha-angle", "isha_angle", "Isha depression angle for --method custom, e.g. -17"},
	{"asr", "asr", "Asr school: shafi or hanafi"},
	{"hijri-offset", "hijri_offset", "Hijri day correction for local moon sighting (-3..3)"},
	{"calibration", "calibration", "Calibration preset: standard or myanmar"},
	{"high-latitude", "high_latitude", "High-latitude policy: none, fixed-interval or angle-based"},
	{"time-format", "time_format", "Time format: 12h or 24h"},
	{"cache-dir", "cache_dir", "Cache directory (default: ~/.cache/salah/)"},
	{"log-level", "log_level", "Log level: debug, info, warn or error"},
}

// loadedConfig holds the merged config built during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// nowFunc is replaced in tests.
var nowFunc = time.Now

// NewRootCmd creates the root command for the salah CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "salah",
		Short:   "Islamic prayer times, computed locally",
		Long:    "Calculate the daily prayer times, Hijri date and Qibla for any location\nwithout a network service.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd)
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	for _, fk := range flagKeys {
		pf.String(fk.flag, "", fk.usage)
	}
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagConfigPath, "config", "", "Config file (default: ~/.config/salah/config.json)")

	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newHijriCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newQiblaCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newPlacesCmd())
	rootCmd.AddCommand(newScheduleCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// configFile returns --config or the default XDG path.
func configFile() (string, error) {
	if FlagConfigPath != "" {
		return FlagConfigPath, nil
	}
	return config.Path()
}

// loadConfig merges, in increasing priority: the config file, .env and
// SALAH_* environment variables, then explicitly set flags. The result is
// validated and installed as loadedConfig, and the logger is configured.
func loadConfig(cmd *cobra.Command) error {
	path, err := configFile()
	if err != nil {
		return err
	}

	cfg, err := config.LoadEffective(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()
	for _, fk := range flagKeys {
		f := lookupChanged(flags, root, fk.flag)
		if f == nil {
			continue
		}
		if err := cfg.Set(fk.key, f.Value.String()); err != nil {
			return fmt.Errorf("--%s: %w", fk.flag, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logging.Setup(cfg.WithDefaults().LogLevel, false); err != nil {
		return err
	}

	loadedConfig = cfg
	return nil
}

// effectiveConfig returns the merged configuration with defaults applied.
func effectiveConfig() config.Config {
	if loadedConfig == nil {
		return config.Defaults()
	}
	return loadedConfig.WithDefaults()
}

// lookupChanged returns the flag if it was explicitly set on either the local
// or persistent flag set.
func lookupChanged(local, persistent *pflag.FlagSet, name string) *pflag.Flag {
	if f := local.Lookup(name); f != nil && f.Changed {
		return f
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return f
	}
	return nil
}
