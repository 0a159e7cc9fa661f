package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paularlott/cli"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. ASSETCOMPASS_DATA_DIR.
const EnvPrefix = "ASSETCOMPASS"

// Config holds the application configuration
type Config struct {
	DataDir         string        `mapstructure:"data_dir"`
	ListenAddr      string        `mapstructure:"listen_addr"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	Seed            bool          `mapstructure:"seed"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// MaintenanceSchedule is a cron expression for database maintenance.
	// Empty disables it.
	MaintenanceSchedule string `mapstructure:"maintenance_schedule"`

	// ConfigFile is the file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "./data")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("cors_origins", []string{"http://localhost:3000", "http://localhost:8080"})
	v.SetDefault("seed", false)
	v.SetDefault("read_timeout", "15s")
	v.SetDefault("write_timeout", "15s")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("maintenance_schedule", "0 3 * * *")
}

// Load loads configuration with the following priority (highest to lowest):
//  1. Command-line flags set on cmd (nil skips this layer)
//  2. ASSETCOMPASS_* environment variables (a .env file is loaded into the
//     environment by the root command)
//  3. Config file (cfgFile, or assetcompass.yaml in . or ./configs)
//  4. Default values
func Load(cfgFile string, cmd *cli.Command) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("assetcompass")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	configFile := v.ConfigFileUsed()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.ConfigFile = configFile

	if cmd != nil {
		applyFlags(cfg, cmd)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyFlags overrides values with flags the user actually set.
func applyFlags(cfg *Config, cmd *cli.Command) {
	if s := cmd.GetString("data-dir"); s != "" {
		cfg.DataDir = s
	}
	if s := cmd.GetString("listen-addr"); s != "" {
		cfg.ListenAddr = s
	}
	if s := cmd.GetString("cors-origins"); s != "" {
		cfg.CORSOrigins = SplitList(s)
	}
	if s := cmd.GetString("maintenance-schedule"); s != "" {
		cfg.MaintenanceSchedule = s
	}
	if cmd.GetBool("seed") {
		cfg.Seed = true
	}
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir is required")
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("listen_addr is required")
	}
	if c.ShutdownTimeout < 0 || c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

// String returns a description of where configuration came from.
func (c *Config) String() string {
	if c.ConfigFile != "" {
		return fmt.Sprintf("config file (%s)", c.ConfigFile)
	}
	return "environment variables and defaults"
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetFlags returns the server flags. Empty values fall through to the
// lower configuration layers.
func GetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to a YAML config file",
		},
		&cli.StringFlag{
			Name:  "data-dir",
			Usage: "Directory holding the SQLite database",
		},
		&cli.StringFlag{
			Name:  "listen-addr",
			Usage: "HTTP listen address",
		},
		&cli.StringFlag{
			Name:  "cors-origins",
			Usage: "Comma separated list of allowed CORS origins",
		},
		&cli.StringFlag{
			Name:  "maintenance-schedule",
			Usage: "Cron schedule for database maintenance",
		},
		&cli.BoolFlag{
			Name:  "seed",
			Usage: "Load demo inventory into an empty database on startup",
		},
	}
}
