package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type RateLimit struct {
	CosmeticLimit  int           `mapstructure:"cosmetic_limit"`
	CosmeticWindow time.Duration `mapstructure:"cosmetic_window"`
	StrictLimit    int           `mapstructure:"strict_limit"`
	StrictWindow   time.Duration `mapstructure:"strict_window"`
	SweepInterval  time.Duration `mapstructure:"sweep_interval"`
}

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	Secret     string        `mapstructure:"secret"`
	LogLevel   string        `mapstructure:"log_level"`
	SendBuffer int           `mapstructure:"send_buffer"`
	LoopBuffer int           `mapstructure:"loop_buffer"`

	TickRate           int           `mapstructure:"tick_rate"`
	TossRevealDelay    time.Duration `mapstructure:"toss_reveal_delay"`
	StartDelay         time.Duration `mapstructure:"start_delay"`
	TurnTimer          time.Duration `mapstructure:"turn_timer"`
	MatchmakingTimeout time.Duration `mapstructure:"matchmaking_timeout"`
	ChatMaxLen         int           `mapstructure:"chat_max_len"`

	RateLimit RateLimit `mapstructure:"ratelimit"`
}

// TickInterval is the period of the per-room update.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("secret", "change-me")
	v.SetDefault("log_level", "info")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("loop_buffer", 1024)

	v.SetDefault("tick_rate", 60)
	v.SetDefault("toss_reveal_delay", "1500ms")
	v.SetDefault("start_delay", "1000ms")
	v.SetDefault("turn_timer", "0s")
	v.SetDefault("matchmaking_timeout", "30s")
	v.SetDefault("chat_max_len", 500)

	v.SetDefault("ratelimit.cosmetic_limit", 1000)
	v.SetDefault("ratelimit.cosmetic_window", "10s")
	v.SetDefault("ratelimit.strict_limit", 50)
	v.SetDefault("ratelimit.strict_window", "60s")
	v.SetDefault("ratelimit.sweep_interval", "5m")
}

// Load reads config/config.<CONFIG_ENV>.yaml, falling back to defaults.
// POOL_* environment variables override file values.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)
	v.SetEnvPrefix("pool")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Int("tick_rate", cfg.TickRate).Msg("config ready")
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.TickRate <= 0 {
		errs = append(errs, errors.New("tick_rate must be positive"))
	}
	if c.PingPeriod <= 0 {
		errs = append(errs, errors.New("ping_period must be positive"))
	}
	if c.SendBuffer <= 0 {
		errs = append(errs, errors.New("send_buffer must be positive"))
	}
	if c.MatchmakingTimeout <= 0 {
		errs = append(errs, errors.New("matchmaking_timeout must be positive"))
	}
	if c.ChatMaxLen <= 1 {
		errs = append(errs, errors.New("chat_max_len must be greater than 1"))
	}
	rl := c.RateLimit
	if rl.CosmeticLimit <= 0 || rl.StrictLimit <= 0 || rl.CosmeticWindow <= 0 || rl.StrictWindow <= 0 || rl.SweepInterval <= 0 {
		errs = append(errs, errors.New("ratelimit limits and windows must be positive"))
	}
	return errors.Join(errs...)
}
