package llm

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeListClient struct {
	models []ModelInfo
	err    error
	calls  int
}

func (f *fakeListClient) Complete(context.Context, CompletionRequest) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeListClient) ListModels(context.Context) ([]ModelInfo, error) {
	f.calls++
	return f.models, f.err
}

func (f *fakeListClient) Close() error { return nil }

func TestCatalogCachesListing(t *testing.T) {
	fake := &fakeListClient{models: []ModelInfo{{ID: "qwen2.5-32b-instruct", SizeGB: "32"}}}
	catalog := NewCatalog(fake, t.TempDir(), DefaultCacheTTL)

	first, err := catalog.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fake.models, first)
	assert.Equal(t, 1, fake.calls)

	second, err := catalog.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fake.models, second)
	assert.Equal(t, 1, fake.calls, "fresh cache should not hit the provider")
}

func TestCatalogRefreshesAfterTTL(t *testing.T) {
	fake := &fakeListClient{models: []ModelInfo{{ID: "a", SizeGB: "N/A"}}}
	catalog := NewCatalog(fake, t.TempDir(), DefaultCacheTTL)

	now := time.Now()
	catalog.now = func() time.Time { return now }

	_, err := catalog.Models(context.Background())
	require.NoError(t, err)

	catalog.now = func() time.Time { return now.Add(DefaultCacheTTL + time.Second) }

	_, err = catalog.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fake.calls, "stale cache should refresh from the provider")
}

func TestCatalogPropagatesProviderError(t *testing.T) {
	fake := &fakeListClient{err: errors.New("server down")}
	catalog := NewCatalog(fake, t.TempDir(), DefaultCacheTTL)

	_, err := catalog.Models(context.Background())
	require.Error(t, err)
}

func TestCatalogIgnoresCorruptCache(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeListClient{models: []ModelInfo{{ID: "a", SizeGB: "N/A"}}}
	catalog := NewCatalog(fake, dir, DefaultCacheTTL)

	require.NoError(t, os.WriteFile(catalog.path, []byte("not json"), 0o644))

	models, err := catalog.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fake.models, models)
	assert.Equal(t, 1, fake.calls)
}
