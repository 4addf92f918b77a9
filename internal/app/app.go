package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"CiteScraper/internal/config"
	"CiteScraper/internal/domain"
	"CiteScraper/internal/format"
	"CiteScraper/internal/infrastructure/scholar"
	"CiteScraper/internal/infrastructure/sheets"
	"CiteScraper/internal/infrastructure/storage"
	"CiteScraper/internal/logging"
	"CiteScraper/internal/source"
	"CiteScraper/internal/usecase"
)

// Application wires configs to adapters and use cases.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	httpClient *http.Client
	db         *sql.DB

	Records *source.Chain
	Stats   *scholar.StatsExtractor
	Links   *scholar.LinkExtractor
}

// New builds the provider chain and scrapers from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	timeout := cfg.HTTP.Timeout
	if timeout < 0 {
		timeout = 0
	}
	client := &http.Client{Timeout: timeout}

	a := &Application{cfg: cfg, logger: baseLogger, httpClient: client}

	registry := source.NewRegistry()
	registry.Register(sheets.NewServiceAccountProvider(cfg.Sheets.DocumentID, cfg.Sheets.ServiceAccountFile))
	registry.Register(sheets.NewOAuthProvider(sheets.OAuthConfig{
		DocumentID:  cfg.Sheets.DocumentID,
		ClientFile:  cfg.Sheets.OAuthClientFile,
		TokenFile:   cfg.Sheets.OAuthTokenFile,
		Interactive: cfg.Sheets.Interactive,
		Prompt:      os.Stderr,
	}, baseLogger.With("component", "sheets.oauth")))
	registry.Register(sheets.NewPublicExportProvider(client, cfg.Sheets.ExportBaseURL, cfg.Sheets.DocumentID))

	providers := cfg.Sheets.Providers
	if cfg.Database.DSN != "" {
		db, err := storage.Open(cfg.Database.DriverName(), cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		a.db = db
		registry.Register(storage.NewSQLProvider(db, cfg.Database.OrderBy))
		if !contains(providers, "database") {
			providers = append(append([]string(nil), providers...), "database")
		}
	}

	chain, err := registry.Chain(providers, baseLogger.With("component", "source"))
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("record providers: %w", err)
	}
	a.Records = chain

	a.Stats = scholar.NewStatsExtractor(client, cfg.HTTP.UserAgent, baseLogger.With("component", "scholar.stats"))
	a.Links = scholar.NewLinkExtractor(client, cfg.HTTP.UserAgent, cfg.Scholar.BaseURL, cfg.Scholar.CitationUser,
		baseLogger.With("component", "scholar.links"))

	return a, nil
}

// Logger returns the base logger.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}

// ProfileURL is the configured Scholar profile page.
func (a *Application) ProfileURL() (string, error) {
	return scholar.ProfileURL(a.cfg.Scholar.BaseURL, a.cfg.Scholar.ProfileID)
}

// ProfileURLFor builds the profile page of another scholar id.
func (a *Application) ProfileURLFor(profileID string) (string, error) {
	return scholar.ProfileURL(a.cfg.Scholar.BaseURL, profileID)
}

// Formatter builds a formatter; an empty dialect uses the configured one.
func (a *Application) Formatter(dialect string) (*format.Formatter, error) {
	if dialect == "" {
		dialect = a.cfg.Output.Dialect
	}
	d, err := format.ParseDialect(dialect)
	if err != nil {
		return nil, err
	}
	return format.New(d)
}

// Pipeline assembles the section pipeline for the given dialect.
func (a *Application) Pipeline(dialect string) (*usecase.Pipeline, error) {
	renderer, err := a.Formatter(dialect)
	if err != nil {
		return nil, err
	}

	sections := make([]usecase.Section, 0, len(a.cfg.Sections))
	for _, s := range a.cfg.Sections {
		style, err := parseStyle(s.Style)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", s.Name, err)
		}
		sections = append(sections, usecase.Section{Name: s.Name, Sheet: s.Sheet, Category: s.Category, Style: style})
	}

	profileURL := ""
	if a.cfg.Scholar.ProfileID != "" {
		if profileURL, err = a.ProfileURL(); err != nil {
			return nil, err
		}
	}

	return usecase.NewPipeline(usecase.PipelineDeps{
		Source:   a.Records,
		Stats:    a.Stats,
		Renderer: renderer,
		Logger:   a.logger.With("component", "pipeline"),
	}, sections, profileURL), nil
}

// Run builds every configured section into outDir (or the configured dir).
func (a *Application) Run(ctx context.Context, outDir, dialect string) ([]string, error) {
	if outDir == "" {
		outDir = a.cfg.Output.Dir
	}

	pipeline, err := a.Pipeline(dialect)
	if err != nil {
		return nil, err
	}
	return pipeline.Build(ctx, outDir)
}

// Close releases the database handle, if any.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func parseStyle(value string) (domain.ListStyle, error) {
	switch value {
	case "", string(domain.StyleOrdered), "numbered":
		return domain.StyleOrdered, nil
	case string(domain.StyleBullet), "unnumbered":
		return domain.StyleBullet, nil
	default:
		return "", fmt.Errorf("unknown list style %q", value)
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
