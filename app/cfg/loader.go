package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Search provider configuration
	TEDAPIURL      string `long:"ted-api-url" env:"TED_API_URL" default:"https://api.ted.europa.eu/v3/notices/search" description:"TED notice search endpoint"`
	HomeCountry    string `long:"home-country" env:"HOME_COUNTRY" default:"SWE" description:"ISO alpha-3 fallback for the place-of-performance clause"`
	LookbackDays   int    `long:"lookback-days" env:"LOOKBACK_DAYS" default:"365" description:"Default publication-date window in days when no from-date is set"`
	PageSize       int    `long:"page-size" env:"PAGE_SIZE" default:"20" description:"Number of notices requested per search page"`
	RequestTimeout int    `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"30" description:"Outbound search request timeout in seconds"`

	// Application configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	CatalogDir   string `long:"catalog-dir" env:"CATALOG_DIR" default:"./catalog" description:"Directory containing CPV catalogue files"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for admin endpoints (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Procurdo/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Stockholm)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		TEDAPIURL:      raw.TEDAPIURL,
		HomeCountry:    raw.HomeCountry,
		LookbackDays:   raw.LookbackDays,
		PageSize:       raw.PageSize,
		RequestTimeout: raw.RequestTimeout,
		Port:           raw.Port,
		CatalogDir:     raw.CatalogDir,
		APIAccessKey:   raw.APIAccessKey,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
