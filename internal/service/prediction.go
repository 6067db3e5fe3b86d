package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/prediction"
	"github.com/dreamguard-id/DreamGuard/internal/storage"
)

var validate = validator.New()

// PredictionRequest carries the biometric and lifestyle inputs for one
// classification. Constraints mirror what the mobile client can produce.
type PredictionRequest struct {
	Gender        int     `json:"gender" validate:"required,oneof=1 2"`
	Age           int     `json:"age" validate:"required,gt=0"`
	SleepDuration float64 `json:"sleepDuration" validate:"gte=0"`
	SleepQuality  int     `json:"sleepQuality" validate:"required,gte=1,lte=10"`
	Occupation    int     `json:"occupation" validate:"required,gte=1,lte=11"`
	ActivityLevel int     `json:"activityLevel" validate:"required,gte=1,lte=100"`
	StressLevel   int     `json:"stressLevel" validate:"required,gte=1,lte=10"`
	Weight        int     `json:"weight" validate:"required,gte=1"`
	Height        int     `json:"height" validate:"required,gte=1"`
	HeartRate     int     `json:"heartRate" validate:"required,gte=1"`
	DailySteps    int     `json:"dailySteps" validate:"gte=0"`
	Systolic      int     `json:"systolic" validate:"required,gte=1"`
	Diastolic     int     `json:"diastolic" validate:"required,gte=1"`
}

func ValidatePredictionRequest(req *PredictionRequest) error {
	return validate.Struct(req)
}

// CreatePrediction runs the full pipeline: feature assembly, classifier
// invocation, result disambiguation, sequence assignment, persistence.
// Nothing is written before inference succeeds.
func CreatePrediction(ctx context.Context, repo storage.PredictionRepository, adapter *prediction.Adapter, user *internal.User, req *PredictionRequest, now time.Time) (*internal.PredictionRecord, error) {
	input := internal.PredictionInput{
		Gender:        req.Gender,
		Age:           req.Age,
		SleepDuration: req.SleepDuration,
		SleepQuality:  req.SleepQuality,
		Occupation:    req.Occupation,
		ActivityLevel: req.ActivityLevel,
		StressLevel:   req.StressLevel,
		Weight:        req.Weight,
		Height:        req.Height,
		HeartRate:     req.HeartRate,
		DailySteps:    req.DailySteps,
		Systolic:      req.Systolic,
		Diastolic:     req.Diastolic,
	}

	outcome, err := adapter.Predict(ctx, prediction.FeatureVector(input))
	if err != nil {
		return nil, err
	}

	resultID, resultText, err := prediction.ResolveResult(outcome.PredictedClass, input.SleepDuration, input.StressLevel)
	if err != nil {
		return nil, err
	}

	seq, err := repo.NextSequence(ctx, user.UID)
	if err != nil {
		return nil, err
	}

	rec := &internal.PredictionRecord{
		ID:          uuid.NewString(),
		UserID:      user.UID,
		Input:       input,
		BMICategory: prediction.BMICategory(input.Weight, input.Height),
		Result: internal.PredictionResult{
			ID:                    resultID,
			Text:                  resultText,
			ConfidencePercentages: outcome.ConfidencePercentages,
		},
		SequenceNumber: seq,
		CreatedAt:      internal.FormatTimestamp(now),
	}

	if err := repo.SavePrediction(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListPredictions returns the history in creation order, or reversed when
// order is "desc".
func ListPredictions(ctx context.Context, repo storage.PredictionRepository, uid, order string) ([]internal.PredictionRecord, error) {
	recs, err := repo.ListPredictions(ctx, uid)
	if err != nil {
		return nil, err
	}
	if order == "desc" {
		for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
			recs[i], recs[j] = recs[j], recs[i]
		}
	}
	return recs, nil
}

// FilterPredictions keeps only records with the given result id, preserving
// creation order.
func FilterPredictions(ctx context.Context, repo storage.PredictionRepository, uid string, resultID int) ([]internal.PredictionRecord, error) {
	recs, err := repo.ListPredictions(ctx, uid)
	if err != nil {
		return nil, err
	}
	filtered := make([]internal.PredictionRecord, 0, len(recs))
	for _, r := range recs {
		if r.Result.ID == resultID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// LatestPrediction returns the record with the highest sequence number.
func LatestPrediction(ctx context.Context, repo storage.PredictionRepository, uid string) (*internal.PredictionRecord, error) {
	recs, err := repo.ListPredictions(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, storage.ErrNotFound
	}
	latest := recs[len(recs)-1]
	return &latest, nil
}
