package source

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CiteScraper/internal/domain"
)

type stubProvider struct {
	name  string
	set   *domain.RecordSet
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(context.Context, string) (*domain.RecordSet, error) {
	s.calls++
	return s.set, s.err
}

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestChainReturnsFirstSuccess(t *testing.T) {
	t.Parallel()

	found := domain.NewRecordSet("title", "extra")
	found.Append("A", "x")

	failing := &stubProvider{name: "service_account", err: errors.New("no key")}
	empty := &stubProvider{name: "oauth"}
	public := &stubProvider{name: "public_export", set: found}
	never := &stubProvider{name: "database", err: errors.New("unused")}

	chain := NewChain(nil, failing, empty, public, never)
	got := chain.Load(context.Background(), domain.SheetPublications)

	assert.Same(t, found, got)
	assert.Equal(t, []string{"title", "extra"}, got.Columns())
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, empty.calls)
	assert.Equal(t, 0, never.calls)
}

func TestChainExhaustionReturnsSchema(t *testing.T) {
	t.Parallel()

	for _, sheet := range []string{domain.SheetPublications, domain.SheetAdvising, domain.SheetClasses, domain.SheetTeaching} {
		var buf bytes.Buffer
		chain := NewChain(bufferLogger(&buf),
			&stubProvider{name: "a", err: errors.New("first")},
			&stubProvider{name: "b", err: errors.New("unreachable host")},
		)

		got := chain.Load(context.Background(), sheet)
		want, _ := domain.Schema(sheet)

		assert.Equal(t, want, got.Columns(), sheet)
		assert.Zero(t, got.Len(), sheet)
		assert.Contains(t, buf.String(), "could not access CV sheet")
		assert.Contains(t, buf.String(), "sheet="+sheet)
		assert.Contains(t, buf.String(), "unreachable host")
	}
}

func TestChainUnknownSheetIsColumnless(t *testing.T) {
	t.Parallel()

	got := NewChain(nil).Load(context.Background(), "awards")
	assert.Empty(t, got.Columns())
	assert.True(t, got.Empty())
}

func TestRegistryChain(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(&stubProvider{name: "oauth"})
	reg.Register(&stubProvider{name: "public_export"})

	chain, err := reg.Chain([]string{"public_export", "oauth"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"public_export", "oauth"}, chain.Providers())

	_, err = reg.Chain([]string{"carrier_pigeon"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier_pigeon")
}
