package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"CiteScraper/internal/domain"
	"CiteScraper/internal/ports"
)

// StatsFragment is the base name of the citation summary fragment.
const StatsFragment = "stats"

// Section describes one list of the CV document.
type Section struct {
	Name     string
	Sheet    string
	Category string
	Style    domain.ListStyle
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source   ports.RecordSource
	Stats    ports.StatsSource
	Renderer ports.ListRenderer
	Logger   *slog.Logger
}

// Pipeline renders CV sections into document fragments.
type Pipeline struct {
	source     ports.RecordSource
	stats      ports.StatsSource
	renderer   ports.ListRenderer
	logger     *slog.Logger
	sections   []Section
	profileURL string
}

// NewPipeline constructs the orchestration component. An empty profileURL
// disables the citation summary.
func NewPipeline(deps PipelineDeps, sections []Section, profileURL string) *Pipeline {
	return &Pipeline{
		source:     deps.Source,
		stats:      deps.Stats,
		renderer:   deps.Renderer,
		logger:     deps.Logger,
		sections:   sections,
		profileURL: profileURL,
	}
}

// Sections lists the configured sections.
func (p *Pipeline) Sections() []Section {
	return append([]Section(nil), p.sections...)
}

// RenderSection loads the section's sheet and renders its category.
func (p *Pipeline) RenderSection(ctx context.Context, section Section) string {
	records := p.source.Load(ctx, section.Sheet)
	p.debug("render section", "section", section.Name, "sheet", section.Sheet, "rows", records.Len())
	return p.renderer.RenderFiltered(records, section.Category, section.Style)
}

// StatsLine scrapes the profile and renders the one-line summary.
func (p *Pipeline) StatsLine(ctx context.Context) string {
	stats := domain.DefaultCitationStats()
	if p.stats != nil && p.profileURL != "" {
		stats = p.stats.Fetch(ctx, p.profileURL)
	}
	return p.renderer.RenderLine(stats.String())
}

// Build writes one fragment per section, plus the citation summary, into
// outDir and returns the written paths. Source and scrape failures degrade
// to fallback markup; only filesystem errors abort.
func (p *Pipeline) Build(ctx context.Context, outDir string) ([]string, error) {
	if p.source == nil || p.renderer == nil {
		return nil, fmt.Errorf("pipeline is not configured")
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	for _, section := range p.sections {
		path, err := p.write(outDir, section.Name, p.RenderSection(ctx, section))
		if err != nil {
			return written, fmt.Errorf("section %s: %w", section.Name, err)
		}
		written = append(written, path)
	}

	if p.stats != nil && p.profileURL != "" {
		path, err := p.write(outDir, StatsFragment, p.StatsLine(ctx))
		if err != nil {
			return written, fmt.Errorf("citation summary: %w", err)
		}
		written = append(written, path)
	}

	p.debug("build done", "fragments", len(written), "dir", outDir)
	return written, nil
}

func (p *Pipeline) write(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name+p.renderer.Extension())
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write fragment: %w", err)
	}
	return path, nil
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
