package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dreamguard-id/DreamGuard/internal"
)

func statsRecord(sleep float64, quality, stress, activity int) internal.PredictionRecord {
	return internal.PredictionRecord{
		Input: internal.PredictionInput{
			SleepDuration: sleep,
			SleepQuality:  quality,
			StressLevel:   stress,
			ActivityLevel: activity,
		},
	}
}

func TestCalculateStatistics_Empty(t *testing.T) {
	stats := CalculateStatistics(nil)

	assert.Equal(t, 0.0, stats.SleepTime.Average)
	assert.Equal(t, "N/A", stats.SleepTime.Text)
	assert.Equal(t, "N/A", stats.SleepQuality.Text)
	assert.Equal(t, "N/A", stats.StressLevel.Text)
	assert.Equal(t, "N/A", stats.ActivityLevel.Text)
}

func TestCalculateStatistics_Averages(t *testing.T) {
	stats := CalculateStatistics([]internal.PredictionRecord{
		statsRecord(7, 8, 4, 60),
		statsRecord(8, 6, 2, 80),
	})

	assert.InDelta(t, 7.5, stats.SleepTime.Average, 1e-9)
	assert.Equal(t, "Near ideal sleep", stats.SleepTime.Text)

	assert.InDelta(t, 7.0, stats.SleepQuality.Average, 1e-9)
	assert.Equal(t, "Decent sleep quality", stats.SleepQuality.Text)

	assert.InDelta(t, 3.0, stats.StressLevel.Average, 1e-9)
	assert.Equal(t, "Low stress", stats.StressLevel.Text)

	// 70 / 10 = index 7.
	assert.InDelta(t, 70.0, stats.ActivityLevel.Average, 1e-9)
	assert.Equal(t, "Active", stats.ActivityLevel.Text)
}

func TestCalculateStatistics_TruncatesBeforeLookup(t *testing.T) {
	// Average 9.9 truncates to index 9, not 10.
	stats := CalculateStatistics([]internal.PredictionRecord{
		statsRecord(9.9, 10, 10, 100),
	})

	assert.Equal(t, "Long sleep", stats.SleepTime.Text)
	assert.Equal(t, "Excellent sleep quality", stats.SleepQuality.Text)
	assert.Equal(t, "Extreme stress", stats.StressLevel.Text)
	assert.Equal(t, "Extremely active", stats.ActivityLevel.Text)
}

func TestCalculateStatistics_OutOfRangeIndex(t *testing.T) {
	// A sub-1 sleep average has no table row.
	stats := CalculateStatistics([]internal.PredictionRecord{
		statsRecord(0.5, 1, 1, 5),
	})

	assert.Equal(t, "N/A", stats.SleepTime.Text)
	assert.Equal(t, "Terrible sleep quality", stats.SleepQuality.Text)
	assert.Equal(t, "Minimal stress", stats.StressLevel.Text)
	// Activity 5 / 10 = 0, below the table.
	assert.Equal(t, "N/A", stats.ActivityLevel.Text)
}

func TestGetStatistics_FromStore(t *testing.T) {
	store := newTestStore(t)

	stats, err := GetStatistics(context.Background(), store, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "N/A", stats.SleepTime.Text)
}
