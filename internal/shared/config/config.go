package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Order sheet acquisition
	SourceURI      string
	SourceSheet    string
	SourceTimezone string
	SourceTimeout  time.Duration

	// Chart display
	CurrencyUnit   string
	PriorityGroups []string
	PublicBaseURL  string

	// AWS (S3 source and S3 publishing)
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3Bucket           string

	// Report publishing
	PublishProvider string
	PublishPath     string
	PublishBaseURL  string
	ReportSchedule  string
	ReportFormat    string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:               os.Getenv("PORT"),
		Env:                os.Getenv("ENV"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		SourceURI:          os.Getenv("SOURCE_URI"),
		SourceSheet:        os.Getenv("SOURCE_SHEET"),
		SourceTimezone:     os.Getenv("SOURCE_TIMEZONE"),
		CurrencyUnit:       os.Getenv("CURRENCY_UNIT"),
		PriorityGroups:     splitList(os.Getenv("PRIORITY_GROUPS")),
		PublicBaseURL:      strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		PublishProvider:    os.Getenv("PUBLISH_PROVIDER"),
		PublishPath:        os.Getenv("PUBLISH_PATH"),
		PublishBaseURL:     strings.TrimRight(os.Getenv("PUBLISH_BASE_URL"), "/"),
		ReportSchedule:     os.Getenv("REPORT_SCHEDULE"),
		ReportFormat:       os.Getenv("REPORT_FORMAT"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.SourceURI == "" {
		cfg.SourceURI = "data_ggsheet.xlsx"
	}
	if cfg.SourceTimezone == "" {
		cfg.SourceTimezone = "UTC"
	}
	cfg.SourceTimeout = 30 * time.Second
	if v := os.Getenv("SOURCE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SourceTimeout = d
		} else {
			log.Printf("⚠️ invalid SOURCE_TIMEOUT %q, using %s", v, cfg.SourceTimeout)
		}
	}
	if cfg.CurrencyUnit == "" {
		cfg.CurrencyUnit = "triệu VND"
	}
	if len(cfg.PriorityGroups) == 0 {
		cfg.PriorityGroups = []string{"[BOT] Bột", "[SET] Set trà", "[THO] Trà hoa"}
	}
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = "ap-southeast-1"
	}
	if cfg.PublishProvider == "" {
		cfg.PublishProvider = "local"
	}
	if cfg.PublishPath == "" {
		cfg.PublishPath = "./reports"
	}
	if cfg.PublishBaseURL == "" {
		cfg.PublishBaseURL = "http://localhost:" + cfg.Port
	}
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = "pdf"
	}

	return cfg
}

// Location resolves SourceTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.SourceTimezone)
	if err != nil {
		log.Printf("⚠️ unknown SOURCE_TIMEZONE %q, using UTC", c.SourceTimezone)
		return time.UTC
	}
	return loc
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
