package api

import (
	"time"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/auth"
	"github.com/dreamguard-id/DreamGuard/internal/blob"
	"github.com/dreamguard-id/DreamGuard/internal/prediction"
	"github.com/dreamguard-id/DreamGuard/internal/storage"
)

// App exposes the dependencies handlers need. Tests swap in fakes.
type App interface {
	Logger() internal.Logger
	Auth() auth.Provider
	Store() storage.Store
	Objects() blob.ObjectStore
	Classifier() *prediction.Adapter
	Now() time.Time
}

type app struct {
	logger     internal.Logger
	provider   auth.Provider
	store      storage.Store
	objects    blob.ObjectStore
	classifier *prediction.Adapter
	now        func() time.Time
}

// NewApp wires the production dependency set. A nil now falls back to
// time.Now.
func NewApp(logger internal.Logger, provider auth.Provider, store storage.Store, objects blob.ObjectStore, classifier *prediction.Adapter, now func() time.Time) App {
	if now == nil {
		now = time.Now
	}
	return &app{
		logger:     logger,
		provider:   provider,
		store:      store,
		objects:    objects,
		classifier: classifier,
		now:        now,
	}
}

func (a *app) Logger() internal.Logger          { return a.logger }
func (a *app) Auth() auth.Provider              { return a.provider }
func (a *app) Store() storage.Store             { return a.store }
func (a *app) Objects() blob.ObjectStore        { return a.objects }
func (a *app) Classifier() *prediction.Adapter  { return a.classifier }
func (a *app) Now() time.Time                   { return a.now() }
