package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	DBUser     string `yaml:"db_user" env-required:"true"`
	DBPassword string `yaml:"db_password" env-required:"false"`
	DBHost     string `yaml:"db_host" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env-default:"3306"`
	DBName     string `yaml:"db_name" env-required:"true"`
	ParseTime  bool   `yaml:"parse_time" env-default:"true"`

	Performance Performance `yaml:"performance"`

	AdminLogin string `yaml:"admin_login"`
	AdminPass  string `yaml:"admin_pass"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout"  env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout"  env-default:"60s"`
}

// Performance holds the named constants of the metrics engine.
// Default paid shift is 11.5 hours; rework is costed at half the rejection rate.
type Performance struct {
	DefaultShiftMinutes   int     `yaml:"default_shift_minutes" env-default:"690"`
	HourlyDowntimeCost    float64 `yaml:"hourly_downtime_cost" env-default:"1500"`
	RejectionCostPerPiece float64 `yaml:"rejection_cost_per_piece" env-default:"50"`
}

func MustConfig() *Config {
	var cfg Config

	path := "./config/local.yaml"

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
