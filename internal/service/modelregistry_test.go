package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// memObjects is an in-memory blob.ObjectStore for registry tests.
type memObjects struct {
	keys    []string
	listErr error
}

func (m *memObjects) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	m.keys = append(m.keys, key)
	return m.PublicURL(key), nil
}

func (m *memObjects) Delete(ctx context.Context, key string) error { return nil }

func (m *memObjects) List(ctx context.Context, prefix string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []string
	for _, k := range m.keys {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			out = append(out, k)
		}
	}
	return out, nil
}

func (m *memObjects) PublicURL(key string) string { return "https://blob.test/" + key }

func TestResolveLatestModel_PicksHighestVersion(t *testing.T) {
	store := newTestStore(t)
	objects := &memObjects{keys: []string{
		"models/model_v1.tflite",
		"models/model_v10.tflite",
		"models/model_v2.tflite",
		"models/readme.txt",
	}}

	info, err := ResolveLatestModel(context.Background(), objects, store)
	assert.NoError(t, err)
	assert.Equal(t, "model_v10.tflite", info.FileName)
	assert.Equal(t, "10", info.Version)
	assert.Equal(t, "https://blob.test/models/model_v10.tflite", info.ModelURL)

	// The resolved metadata is cached.
	cached, err := store.GetModelInfo(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "10", cached.Version)
}

func TestResolveLatestModel_NoVersionedFiles(t *testing.T) {
	store := newTestStore(t)
	objects := &memObjects{keys: []string{"models/notes.md", "profile_pictures/x.png"}}

	_, err := ResolveLatestModel(context.Background(), objects, store)
	assert.ErrorIs(t, err, ErrNoModels)
}

func TestResolveLatestModel_RefreshesCacheOnNewVersion(t *testing.T) {
	store := newTestStore(t)
	objects := &memObjects{keys: []string{"models/model_v1.tflite"}}
	ctx := context.Background()

	info, err := ResolveLatestModel(ctx, objects, store)
	assert.NoError(t, err)
	assert.Equal(t, "1", info.Version)

	objects.keys = append(objects.keys, "models/model_v2.tflite")
	info, err = ResolveLatestModel(ctx, objects, store)
	assert.NoError(t, err)
	assert.Equal(t, "2", info.Version)

	cached, err := store.GetModelInfo(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "2", cached.Version)
}
