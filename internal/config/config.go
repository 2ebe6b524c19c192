package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the overlay daemon.
type Config struct {
	Port         string        `envconfig:"PORT" default:"4000"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"1s"`
	// Teams are polled in this order every cycle.
	Teams         []string          `envconfig:"TEAMS" default:"Red,Blue"`
	OutputDir     string            `envconfig:"OUTPUT_DIR" default:"obs"`
	AssetsDir     string            `envconfig:"ASSETS_DIR" default:"assets"`
	MirroredTeam  string            `envconfig:"MIRRORED_TEAM" default:"Blue"`
	HeartVariants map[string]string `envconfig:"HEART_VARIANTS" default:"Red:red,Blue:blue"`
	Channel       string            `envconfig:"CHANNEL" default:"rcon"`

	RCON    RCONConfig
	Metrics MetricsConfig
	Log     LogConfig
}

// RCONConfig locates and authenticates against the game server.
type RCONConfig struct {
	Address     string        `envconfig:"RCON_ADDRESS" default:"127.0.0.1:25575"`
	Password    string        `envconfig:"RCON_PASSWORD"`
	DialTimeout time.Duration `envconfig:"RCON_DIAL_TIMEOUT" default:"5s"`
	Deadline    time.Duration `envconfig:"RCON_DEADLINE" default:"5s"`
}

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Port         string `envconfig:"METRICS_PORT" default:"9090"`
	OtlpEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `envconfig:"OTEL_SERVICE_NAME" default:"ktowers-overlay"`
	OtlpInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.Port == "" {
		c.Port = defaultPort
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = defaultServiceName
	}
	teams := make([]string, 0, len(c.Teams))
	for _, t := range c.Teams {
		if t = strings.TrimSpace(t); t != "" {
			teams = append(teams, t)
		}
	}
	c.Teams = teams
	c.Channel = strings.ToLower(strings.TrimSpace(c.Channel))
	c.MirroredTeam = strings.TrimSpace(c.MirroredTeam)
}

// Validate rejects configurations the daemon cannot run with.
func (c Config) Validate() error {
	if len(c.Teams) == 0 {
		return fmt.Errorf("config: at least one team required")
	}
	seen := make(map[string]struct{}, len(c.Teams))
	for _, t := range c.Teams {
		if _, dup := seen[t]; dup {
			return fmt.Errorf("config: duplicate team %q", t)
		}
		seen[t] = struct{}{}
	}
	if c.OutputDir == "" {
		return fmt.Errorf("config: output dir required")
	}
	switch c.Channel {
	case ChannelFixture:
	case ChannelRCON:
		if c.RCON.Address == "" {
			return fmt.Errorf("config: RCON_ADDRESS required for the rcon channel")
		}
		if c.RCON.Password == "" {
			return fmt.Errorf("config: RCON_PASSWORD required for the rcon channel")
		}
	default:
		return fmt.Errorf("config: unknown channel %q", c.Channel)
	}
	return nil
}
