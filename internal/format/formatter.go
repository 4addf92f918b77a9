// Package format renders CV record sets as list markup for LaTeX, Markdown or HTML documents.
package format

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"CiteScraper/internal/domain"
	"CiteScraper/internal/ports"
)

// Dialect names an output markup language.
type Dialect string

const (
	DialectLaTeX    Dialect = "latex"
	DialectMarkdown Dialect = "markdown"
	DialectHTML     Dialect = "html"
)

// NotReadyItem stands in for rows of sheets that carry no citation column.
const NotReadyItem = "Data available but citation format not ready"

// authorMarker matches **Name** with no asterisk inside.
var authorMarker = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// markup holds the tokens that distinguish one dialect from another.
type markup struct {
	orderedOpen  string
	orderedClose string
	orderedItem  string
	bulletOpen   string
	bulletClose  string
	bulletItem   string
	highlight    string
	noData       string
	extension    string
}

var dialects = map[Dialect]markup{
	DialectLaTeX: {
		orderedOpen:  `\begin{enumerate}`,
		orderedClose: `\end{enumerate}`,
		orderedItem:  `\item `,
		bulletOpen:   `\begin{itemize}`,
		bulletClose:  `\end{itemize}`,
		bulletItem:   `\item `,
		highlight:    `\underline{\textbf{${1}}}`,
		noData:       `\begin{itemize}\item No data available\end{itemize}`,
		extension:    ".tex",
	},
	DialectMarkdown: {
		orderedItem: "1. ",
		bulletItem:  "- ",
		highlight:   "<u>**${1}**</u>",
		noData:      "- No data available",
		extension:   ".md",
	},
}

// ParseDialect validates a dialect name; "" means LaTeX.
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(name))); d {
	case "", "tex":
		return DialectLaTeX, nil
	case DialectLaTeX, DialectMarkdown, DialectHTML:
		return d, nil
	case "md":
		return DialectMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output dialect %q", name)
	}
}

// Formatter renders lists in one dialect. It holds no per-call state.
type Formatter struct {
	dialect Dialect
	tokens  markup
	md      goldmark.Markdown
}

var _ ports.ListRenderer = (*Formatter)(nil)

// New builds a formatter for the dialect.
func New(dialect Dialect) (*Formatter, error) {
	f := &Formatter{dialect: dialect}
	switch dialect {
	case DialectLaTeX, DialectMarkdown:
		f.tokens = dialects[dialect]
	case DialectHTML:
		// HTML is the Markdown rendition passed through goldmark.
		f.tokens = dialects[DialectMarkdown]
		f.tokens.extension = ".html"
		f.md = goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))
	default:
		return nil, fmt.Errorf("unknown output dialect %q", dialect)
	}
	return f, nil
}

// Dialect reports the output language.
func (f *Formatter) Dialect() Dialect {
	return f.dialect
}

// Extension is the file suffix for fragments in this dialect.
func (f *Formatter) Extension() string {
	return f.tokens.extension
}

// OrderedList renders a numbered list; no items yields "".
func (f *Formatter) OrderedList(items []string) string {
	return f.list(items, f.tokens.orderedOpen, f.tokens.orderedItem, f.tokens.orderedClose)
}

// BulletList renders an unnumbered list; no items yields "".
func (f *Formatter) BulletList(items []string) string {
	return f.list(items, f.tokens.bulletOpen, f.tokens.bulletItem, f.tokens.bulletClose)
}

// OrderedListFiltered renders the rows of category as a numbered list.
func (f *Formatter) OrderedListFiltered(records *domain.RecordSet, category string) string {
	items, ok := f.filteredItems(records, category)
	if !ok {
		return f.noData()
	}
	return f.OrderedList(items)
}

// BulletListFiltered renders the rows of category as an unnumbered list.
func (f *Formatter) BulletListFiltered(records *domain.RecordSet, category string) string {
	items, ok := f.filteredItems(records, category)
	if !ok {
		return f.noData()
	}
	return f.BulletList(items)
}

// RenderFiltered dispatches on style.
func (f *Formatter) RenderFiltered(records *domain.RecordSet, category string, style domain.ListStyle) string {
	if style == domain.StyleBullet {
		return f.BulletListFiltered(records, category)
	}
	return f.OrderedListFiltered(records, category)
}

// RenderLine renders a standalone line of text, e.g. the citation summary.
func (f *Formatter) RenderLine(text string) string {
	if f.md != nil {
		return f.convert(text)
	}
	return text
}

// HighlightAuthors wraps every **Name** marker in the dialect's underline+bold markup.
func (f *Formatter) HighlightAuthors(text string) string {
	return authorMarker.ReplaceAllString(text, f.tokens.highlight)
}

// filteredItems selects rows whose category equals category exactly and
// returns their highlighted citations. The input set is never modified.
func (f *Formatter) filteredItems(records *domain.RecordSet, category string) ([]string, bool) {
	if records.Empty() || !records.HasColumn(domain.ColumnCategory) {
		return nil, false
	}

	filtered := records.Filter(func(r domain.Record) bool {
		return r[domain.ColumnCategory] == category
	})
	if filtered.Empty() {
		return nil, false
	}

	if !filtered.HasColumn(domain.ColumnCitation) {
		return []string{NotReadyItem}, true
	}

	filtered.Transform(domain.ColumnCitation, f.HighlightAuthors)
	return filtered.Column(domain.ColumnCitation), true
}

func (f *Formatter) list(items []string, open, item, closing string) string {
	if len(items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(items)+2)
	if open != "" {
		lines = append(lines, open)
	}
	for _, text := range items {
		lines = append(lines, item+text)
	}
	if closing != "" {
		lines = append(lines, closing)
	}

	out := strings.Join(lines, "\n")
	if f.md != nil {
		return f.convert(out)
	}
	return out
}

func (f *Formatter) noData() string {
	if f.md != nil {
		return f.convert(f.tokens.noData)
	}
	return f.tokens.noData
}

func (f *Formatter) convert(src string) string {
	var buf bytes.Buffer
	if err := f.md.Convert([]byte(src), &buf); err != nil {
		return src
	}
	return buf.String()
}
