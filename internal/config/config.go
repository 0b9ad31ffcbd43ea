// Package config loads the boot-time Settings object: the
// store path, rate-limit parameters, CORS allow-list, request deadline, and
// disclaimer text, following a Load/createDefault
// pattern (BurntSushi/toml, write-default-if-absent).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings is every piece of process-wide configuration. There is no
// process-global mutable state beyond this struct and the rate-limit bucket
// map the HTTP layer owns separately.
type Settings struct {
	StorePath          string `toml:"StorePath"`
	ParquetDir          string `toml:"ParquetDir"`
	ListenAddress       string `toml:"ListenAddress"`
	ActivityLookupPath  string `toml:"ActivityLookupPath"`
	RateLimitCap        int    `toml:"RateLimitCap"`
	RateLimitWindowSecs int    `toml:"RateLimitWindowSeconds"`
	CORSAllowOrigins    []string `toml:"CORSAllowOrigins"`
	RequestDeadlineSecs int    `toml:"RequestDeadlineSeconds"`
	DisclaimerText      string `toml:"DisclaimerText"`
	LogLevel            string `toml:"LogLevel"`
	LogFilePath         string `toml:"LogFilePath"`
	OTelEndpoint        string `toml:"OTelEndpoint"`
	PersonIDHashKeyEnv  string `toml:"PersonIDHashKeyEnv"`
}

// RateLimitWindow is RateLimitWindowSecs as a time.Duration.
func (s Settings) RateLimitWindow() time.Duration {
	return time.Duration(s.RateLimitWindowSecs) * time.Second
}

// RequestDeadline is RequestDeadlineSecs as a time.Duration.
func (s Settings) RequestDeadline() time.Duration {
	return time.Duration(s.RequestDeadlineSecs) * time.Second
}

// Load reads Settings from path, writing a documented default file first if
// none exists yet.
func Load(path string) (*Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}
	cfg := &Settings{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

func createDefault(path string) (*Settings, error) {
	cfg := &Settings{
		StorePath:           "./data/analytical-store.sqlite",
		ParquetDir:          "./data/sources",
		ListenAddress:       ":8080",
		RateLimitCap:        60,
		RateLimitWindowSecs: 60,
		CORSAllowOrigins:    []string{},
		RequestDeadlineSecs: 10,
		DisclaimerText:      "This dossier is a derived, automated analysis and is not a legal finding.",
		LogLevel:            "info",
		PersonIDHashKeyEnv:  "SUPPLIERWATCH_PERSON_ID_HASH_KEY",
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("config: create default %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: write default %s: %w", path, err)
	}
	return cfg, nil
}
