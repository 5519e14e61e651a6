package config

import (
	"errors"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env  string `yaml:"env" env:"ENV" env-default:"development"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
	} `yaml:"database"`
	Circulation struct {
		LoanPeriodDays     int    `yaml:"loan_period_days" env:"LOANPERIODDAYS" env-default:"14"`
		FinePerDay         int64  `yaml:"fine_per_day" env:"FINEPERDAY" env-default:"5"`
		MembershipIDPrefix string `yaml:"membership_id_prefix" env:"MEMBERSHIPIDPREFIX" env-default:"MEM"`
	} `yaml:"circulation"`
	Sweep struct {
		Enabled  bool   `yaml:"enabled" env:"SWEEPENABLED" env-default:"true"`
		Schedule string `yaml:"schedule" env:"SWEEPSCHEDULE" env-default:"0 0 * * *"`
	} `yaml:"sweep"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"RPS" env-default:"4"`
		Burst   int     `yaml:"burst" env:"BURST" env-default:"8"`
		Enabled bool    `yaml:"enabled" env:"LENABLED" env-default:"true"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"MENABLED" env-default:"true"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"USERNAME"`
		Password string `yaml:"password" env:"PASSWORD"`
	} `yaml:"basic_auth"`
}

// Decode reads configuration from config.yaml if present, falling back to
// environment variables (including any loaded from a .env file).
func Decode() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
