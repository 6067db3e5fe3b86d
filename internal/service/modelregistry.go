package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/blob"
	"github.com/dreamguard-id/DreamGuard/internal/storage"
)

// ErrNoModels is returned when blob storage holds no versioned model files.
var ErrNoModels = errors.New("service: no model files found")

var modelFilePattern = regexp.MustCompile(`model_v(\d+)\.tflite$`)

// ResolveLatestModel lists the versioned model objects under models/,
// picks the highest filename-embedded version, and refreshes the cached
// metadata document when the version moved.
func ResolveLatestModel(ctx context.Context, objects blob.ObjectStore, meta storage.ModelMetaRepository) (*internal.ModelInfo, error) {
	keys, err := objects.List(ctx, "models/")
	if err != nil {
		return nil, err
	}

	bestVersion := -1
	bestKey := ""
	for _, key := range keys {
		m := modelFilePattern.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		version, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if version > bestVersion {
			bestVersion = version
			bestKey = key
		}
	}
	if bestKey == "" {
		return nil, ErrNoModels
	}

	info := &internal.ModelInfo{
		ModelURL: objects.PublicURL(bestKey),
		FileName: strings.TrimPrefix(bestKey, "models/"),
		Version:  strconv.Itoa(bestVersion),
	}

	cached, err := meta.GetModelInfo(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if cached == nil || cached.Version != info.Version {
		if err := meta.SetModelInfo(ctx, info); err != nil {
			return nil, err
		}
	}

	return info, nil
}
