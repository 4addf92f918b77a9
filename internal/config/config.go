package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "CITESCRAPER_CONFIG"
	sheetIDEnv        = "CV_SHEET_ID"
	profileIDEnv      = "SCHOLAR_PROFILE_ID"
	credentialsEnv    = "GOOGLE_APPLICATION_CREDENTIALS"
	databaseDSNEnv    = "DATABASE_DSN"
	logLevelEnv       = "LOG_LEVEL"
	defaultDocumentID = "1yEYPdjQNqIw_lrOjUPDKjx9wMfzTeYrcdrtSDRj6Zhw"
	defaultProfileID  = "iNdNU5QAAAAJ"
	defaultCiteUser   = "DY2D56IAAAAJ"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig   `yaml:"logging"`
	HTTP     HTTPConfig      `yaml:"http"`
	Sheets   SheetsConfig    `yaml:"sheets"`
	Database DatabaseConfig  `yaml:"database"`
	Scholar  ScholarConfig   `yaml:"scholar"`
	Output   OutputConfig    `yaml:"output"`
	Sections []SectionConfig `yaml:"sections"`
}

// LoggingConfig sets the slog level (debug, info, warn, error).
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// HTTPConfig tunes the shared client. A negative timeout disables it.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"userAgent"`
}

// SheetsConfig locates the CV workbook and the credentials used to read it.
type SheetsConfig struct {
	DocumentID         string   `yaml:"documentId"`
	ExportBaseURL      string   `yaml:"exportBaseUrl"`
	ServiceAccountFile string   `yaml:"serviceAccountFile"`
	OAuthClientFile    string   `yaml:"oauthClientFile"`
	OAuthTokenFile     string   `yaml:"oauthTokenFile"`
	Interactive        bool     `yaml:"interactive"`
	Providers          []string `yaml:"providers"`
}

// DatabaseConfig describes an optional SQL mirror of the workbook.
type DatabaseConfig struct {
	Driver  string `yaml:"driver"`
	DSN     string `yaml:"dsn"`
	OrderBy string `yaml:"orderBy"`
}

// DriverName picks the sql driver, recognising postgres URLs whatever Driver says.
func (d DatabaseConfig) DriverName() string {
	if strings.HasPrefix(d.DSN, "postgres://") || strings.HasPrefix(d.DSN, "postgresql://") {
		return "postgres"
	}
	if d.Driver == "" {
		return "sqlite"
	}
	return d.Driver
}

// ScholarConfig identifies the Google Scholar profile.
type ScholarConfig struct {
	BaseURL      string `yaml:"baseUrl"`
	ProfileID    string `yaml:"profileId"`
	CitationUser string `yaml:"citationUser"`
}

// OutputConfig controls where and how fragments are written.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Dialect string `yaml:"dialect"`
}

// SectionConfig maps one CV list onto a sheet category.
type SectionConfig struct {
	Name     string `yaml:"name"`
	Sheet    string `yaml:"sheet"`
	Category string `yaml:"category"`
	Style    string `yaml:"style"`
}

// Load reads YAML configuration from CITESCRAPER_CONFIG (if set) and applies
// environment overrides.
func Load() Config {
	return LoadFile(os.Getenv(configPathEnv))
}

// LoadFile reads YAML configuration from path (if non-empty) and applies
// environment overrides. Unreadable files fall back to defaults.
func LoadFile(path string) Config {
	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Sections) == 0 {
		cfg.Sections = defaultConfig().Sections
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(sheetIDEnv); v != "" {
		c.Sheets.DocumentID = v
	}

	if v := os.Getenv(profileIDEnv); v != "" {
		c.Scholar.ProfileID = v
	}

	if v := os.Getenv(credentialsEnv); v != "" {
		c.Sheets.ServiceAccountFile = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.HTTP.Timeout != 0 {
		base.HTTP.Timeout = override.HTTP.Timeout
	}
	if override.HTTP.UserAgent != "" {
		base.HTTP.UserAgent = override.HTTP.UserAgent
	}

	if override.Sheets.DocumentID != "" {
		base.Sheets.DocumentID = override.Sheets.DocumentID
	}
	if override.Sheets.ExportBaseURL != "" {
		base.Sheets.ExportBaseURL = override.Sheets.ExportBaseURL
	}
	if override.Sheets.ServiceAccountFile != "" {
		base.Sheets.ServiceAccountFile = override.Sheets.ServiceAccountFile
	}
	if override.Sheets.OAuthClientFile != "" {
		base.Sheets.OAuthClientFile = override.Sheets.OAuthClientFile
	}
	if override.Sheets.OAuthTokenFile != "" {
		base.Sheets.OAuthTokenFile = override.Sheets.OAuthTokenFile
	}
	if override.Sheets.Interactive {
		base.Sheets.Interactive = true
	}
	if len(override.Sheets.Providers) > 0 {
		base.Sheets.Providers = override.Sheets.Providers
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
		if base.Database.Driver == "" {
			base.Database.Driver = defaultConfig().Database.Driver
		}
	}

	if override.Scholar.BaseURL != "" {
		base.Scholar.BaseURL = override.Scholar.BaseURL
	}
	if override.Scholar.ProfileID != "" {
		base.Scholar.ProfileID = override.Scholar.ProfileID
	}
	if override.Scholar.CitationUser != "" {
		base.Scholar.CitationUser = override.Scholar.CitationUser
	}

	if override.Output.Dir != "" {
		base.Output.Dir = override.Output.Dir
	}
	if override.Output.Dialect != "" {
		base.Output.Dialect = override.Output.Dialect
	}

	if len(override.Sections) > 0 {
		base.Sections = override.Sections
	}

	return base
}

// gspreadDir is where gspread keeps its credentials, shared with this tool.
func gspreadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "gspread")
	}
	return filepath.Join(home, ".config", "gspread")
}

func defaultConfig() Config {
	dir := gspreadDir()
	return Config{
		Logging: LoggingConfig{Level: "info"},
		HTTP:    HTTPConfig{Timeout: 30 * time.Second, UserAgent: "Mozilla/5.0 (compatible; CiteScraper/1.0)"},
		Sheets: SheetsConfig{
			DocumentID:         defaultDocumentID,
			ExportBaseURL:      "https://docs.google.com/spreadsheets/d",
			ServiceAccountFile: filepath.Join(dir, "service_account.json"),
			OAuthClientFile:    filepath.Join(dir, "credentials.json"),
			OAuthTokenFile:     filepath.Join(dir, "authorized_user.json"),
			Providers:          []string{"service_account", "oauth", "public_export"},
		},
		Database: DatabaseConfig{Driver: "sqlite"},
		Scholar: ScholarConfig{
			BaseURL:      "https://scholar.google.com",
			ProfileID:    defaultProfileID,
			CitationUser: defaultCiteUser,
		},
		Output: OutputConfig{Dir: "sections", Dialect: "latex"},
		Sections: []SectionConfig{
			{Name: "journal-articles", Sheet: "pubs", Category: "journal", Style: "ordered"},
			{Name: "conference-papers", Sheet: "pubs", Category: "conference", Style: "ordered"},
			{Name: "book-chapters", Sheet: "pubs", Category: "chapter", Style: "ordered"},
			{Name: "books", Sheet: "pubs", Category: "book", Style: "ordered"},
			{Name: "advising", Sheet: "advising", Category: "phd", Style: "bullet"},
			{Name: "invited-talks", Sheet: "teaching", Category: "invited", Style: "bullet"},
		},
	}
}
