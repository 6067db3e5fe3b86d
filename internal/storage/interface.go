package storage

import (
	"context"
	"errors"

	"github.com/dreamguard-id/DreamGuard/internal"
)

// ErrNotFound is returned when a requested profile or record does not
// exist. Handlers map it to 404.
var ErrNotFound = errors.New("storage: not found")

type ProfileRepository interface {
	// SaveProfile upserts the full profile document.
	SaveProfile(ctx context.Context, profile *internal.UserProfile) error
	GetProfile(ctx context.Context, uid string) (*internal.UserProfile, error)
	DeleteProfile(ctx context.Context, uid string) error
}

type PredictionRepository interface {
	// NextSequence atomically claims the next per-user sequence number.
	NextSequence(ctx context.Context, uid string) (int, error)
	SavePrediction(ctx context.Context, rec *internal.PredictionRecord) error
	// ListPredictions returns the user's records ascending by sequence
	// number.
	ListPredictions(ctx context.Context, uid string) ([]internal.PredictionRecord, error)
	GetPrediction(ctx context.Context, uid, id string) (*internal.PredictionRecord, error)
	DeletePredictions(ctx context.Context, uid string) error
}

type ScheduleRepository interface {
	// SaveSchedule upserts a schedule record.
	SaveSchedule(ctx context.Context, rec *internal.ScheduleRecord) error
	GetSchedule(ctx context.Context, uid, id string) (*internal.ScheduleRecord, error)
	// ListSchedules returns the user's schedules newest first.
	ListSchedules(ctx context.Context, uid string) ([]internal.ScheduleRecord, error)
	DeleteSchedules(ctx context.Context, uid string) error
}

type FeedbackRepository interface {
	NextFeedbackNumber(ctx context.Context, uid string) (int, error)
	SaveFeedback(ctx context.Context, entry *internal.FeedbackEntry) error
	DeleteFeedback(ctx context.Context, uid string) error
}

type ModelMetaRepository interface {
	GetModelInfo(ctx context.Context) (*internal.ModelInfo, error)
	SetModelInfo(ctx context.Context, info *internal.ModelInfo) error
}

// Store bundles every repository plus lifecycle management. Each backend
// implements all of it from a single struct.
type Store interface {
	ProfileRepository
	PredictionRepository
	ScheduleRepository
	FeedbackRepository
	ModelMetaRepository
	Close() error
}
