package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the client needs from the environment. All keys
// are read under the BOOKING_ prefix, e.g. BOOKING_API_BASE_URL.
type Config struct {
	APIBaseURL     string        `envconfig:"API_BASE_URL" default:"http://localhost:5000/api"`
	StateDir       string        `envconfig:"STATE_DIR"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	RateRPS        float64       `envconfig:"RATE_RPS" default:"5"`
	RateBurst      int           `envconfig:"RATE_BURST" default:"10"`
	Verbose        bool          `envconfig:"VERBOSE" default:"false"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("booking", &c); err != nil {
		return nil, err
	}
	if c.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		c.StateDir = filepath.Join(base, "bookingcli")
	}
	return &c, nil
}
