package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/prediction"
	"github.com/dreamguard-id/DreamGuard/internal/storage"
)

// fixedInvoker returns the same probability row for every call.
type fixedInvoker struct {
	probs []float64
	err   error
}

func (f *fixedInvoker) Invoke(ctx context.Context, batch [][]float64) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return [][]float64{f.probs}, nil
}

func healthyRequest() *PredictionRequest {
	return &PredictionRequest{
		Gender:        1,
		Age:           30,
		SleepDuration: 8.5,
		SleepQuality:  9,
		Occupation:    3,
		ActivityLevel: 60,
		StressLevel:   3,
		Weight:        70,
		Height:        175,
		HeartRate:     68,
		DailySteps:    8000,
		Systolic:      120,
		Diastolic:     80,
	}
}

func TestCreatePrediction_BuildsRecord(t *testing.T) {
	store := newTestStore(t)
	adapter := prediction.NewAdapter(&fixedInvoker{probs: []float64{0.9, 0.05, 0.05}})
	now := time.Date(2024, 12, 1, 3, 0, 0, 0, time.UTC)

	rec, err := CreatePrediction(context.Background(), store, adapter, testUser(), healthyRequest(), now)
	assert.NoError(t, err)
	assert.Equal(t, 1, rec.SequenceNumber)
	assert.Equal(t, 1, rec.BMICategory)
	assert.Equal(t, 1, rec.Result.ID)
	assert.Equal(t, "No Sleep Disorder", rec.Result.Text)
	assert.Equal(t, []string{"90.00", "5.00", "5.00"}, rec.Result.ConfidencePercentages)
	assert.Equal(t, "December 01, 2024 at 10:00:00 AM UTC+07", rec.CreatedAt)
}

func TestCreatePrediction_SequenceIsMonotonic(t *testing.T) {
	store := newTestStore(t)
	adapter := prediction.NewAdapter(&fixedInvoker{probs: []float64{0.9, 0.05, 0.05}})
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		rec, err := CreatePrediction(ctx, store, adapter, testUser(), healthyRequest(), time.Now())
		assert.NoError(t, err)
		assert.Equal(t, want, rec.SequenceNumber)
	}
}

func TestCreatePrediction_NothingPersistedOnInferenceFailure(t *testing.T) {
	store := newTestStore(t)
	adapter := prediction.NewAdapter(&fixedInvoker{err: context.DeadlineExceeded})
	ctx := context.Background()

	_, err := CreatePrediction(ctx, store, adapter, testUser(), healthyRequest(), time.Now())
	assert.ErrorIs(t, err, prediction.ErrInference)

	recs, err := store.ListPredictions(ctx, "u1")
	assert.NoError(t, err)
	assert.Empty(t, recs)
}

func TestListPredictions_Order(t *testing.T) {
	store := newTestStore(t)
	adapter := prediction.NewAdapter(&fixedInvoker{probs: []float64{0.9, 0.05, 0.05}})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := CreatePrediction(ctx, store, adapter, testUser(), healthyRequest(), time.Now())
		assert.NoError(t, err)
	}

	asc, err := ListPredictions(ctx, store, "u1", "asc")
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, sequenceNumbers(asc))

	desc, err := ListPredictions(ctx, store, "u1", "desc")
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, sequenceNumbers(desc))
}

func sequenceNumbers(recs []internal.PredictionRecord) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = r.SequenceNumber
	}
	return out
}

func TestFilterPredictions_PreservesCreationOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Alternate between two result classes by steering the probabilities.
	healthy := prediction.NewAdapter(&fixedInvoker{probs: []float64{0.9, 0.05, 0.05}})
	apnea := prediction.NewAdapter(&fixedInvoker{probs: []float64{0.05, 0.9, 0.05}})
	for i := 0; i < 4; i++ {
		adapter := healthy
		if i%2 == 1 {
			adapter = apnea
		}
		_, err := CreatePrediction(ctx, store, adapter, testUser(), healthyRequest(), time.Now())
		assert.NoError(t, err)
	}

	recs, err := FilterPredictions(ctx, store, "u1", 2)
	assert.NoError(t, err)
	assert.Equal(t, []int{2, 4}, sequenceNumbers(recs))
	for _, r := range recs {
		assert.Equal(t, "Sleep Apnea", r.Result.Text)
	}
}

func TestLatestPrediction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := LatestPrediction(ctx, store, "u1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	adapter := prediction.NewAdapter(&fixedInvoker{probs: []float64{0.9, 0.05, 0.05}})
	for i := 0; i < 3; i++ {
		_, err := CreatePrediction(ctx, store, adapter, testUser(), healthyRequest(), time.Now())
		assert.NoError(t, err)
	}

	latest, err := LatestPrediction(ctx, store, "u1")
	assert.NoError(t, err)
	assert.Equal(t, 3, latest.SequenceNumber)
}

func TestValidatePredictionRequest(t *testing.T) {
	req := healthyRequest()
	assert.NoError(t, ValidatePredictionRequest(req))

	req.Gender = 3
	assert.Error(t, ValidatePredictionRequest(req))

	req = healthyRequest()
	req.SleepQuality = 11
	assert.Error(t, ValidatePredictionRequest(req))

	req = healthyRequest()
	req.Occupation = 12
	assert.Error(t, ValidatePredictionRequest(req))
}
