package service

import (
	"context"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/storage"
)

// StatisticItem pairs a numeric average with its descriptive text.
type StatisticItem struct {
	Average float64 `json:"average"`
	Text    string  `json:"text"`
}

// Statistics aggregates the user's prediction history.
type Statistics struct {
	SleepTime     StatisticItem `json:"sleepTime"`
	SleepQuality  StatisticItem `json:"sleepQuality"`
	StressLevel   StatisticItem `json:"stressLevel"`
	ActivityLevel StatisticItem `json:"activityLevel"`
}

// Ten-step descriptive tables, 1-indexed by the truncated average. Indexes
// outside 1..10 render as "N/A".
var (
	sleepTimeTexts = [10]string{
		"Severely sleep deprived",
		"Critically short sleep",
		"Very short sleep",
		"Short sleep",
		"Below recommended sleep",
		"Slightly under recommended sleep",
		"Near ideal sleep",
		"Ideal sleep duration",
		"Long sleep",
		"Very long sleep",
	}
	sleepQualityTexts = [10]string{
		"Terrible sleep quality",
		"Very poor sleep quality",
		"Poor sleep quality",
		"Below average sleep quality",
		"Average sleep quality",
		"Above average sleep quality",
		"Decent sleep quality",
		"Good sleep quality",
		"Very good sleep quality",
		"Excellent sleep quality",
	}
	stressTexts = [10]string{
		"Minimal stress",
		"Very low stress",
		"Low stress",
		"Mild stress",
		"Moderate stress",
		"Noticeable stress",
		"Elevated stress",
		"High stress",
		"Very high stress",
		"Extreme stress",
	}
	activityTexts = [10]string{
		"Sedentary",
		"Very lightly active",
		"Lightly active",
		"Somewhat active",
		"Moderately active",
		"Fairly active",
		"Active",
		"Very active",
		"Highly active",
		"Extremely active",
	}
)

func tableText(table [10]string, index int) string {
	if index < 1 || index > 10 {
		return "N/A"
	}
	return table[index-1]
}

// CalculateStatistics averages the per-record values and looks up the
// descriptive texts. Activity level runs 1..100, so its table index is the
// average divided by ten.
func CalculateStatistics(records []internal.PredictionRecord) Statistics {
	if len(records) == 0 {
		return Statistics{
			SleepTime:     StatisticItem{Text: "N/A"},
			SleepQuality:  StatisticItem{Text: "N/A"},
			StressLevel:   StatisticItem{Text: "N/A"},
			ActivityLevel: StatisticItem{Text: "N/A"},
		}
	}

	var sleep, quality, stress, activity float64
	for _, r := range records {
		sleep += r.Input.SleepDuration
		quality += float64(r.Input.SleepQuality)
		stress += float64(r.Input.StressLevel)
		activity += float64(r.Input.ActivityLevel)
	}
	n := float64(len(records))
	sleep /= n
	quality /= n
	stress /= n
	activity /= n

	return Statistics{
		SleepTime:     StatisticItem{Average: sleep, Text: tableText(sleepTimeTexts, int(sleep))},
		SleepQuality:  StatisticItem{Average: quality, Text: tableText(sleepQualityTexts, int(quality))},
		StressLevel:   StatisticItem{Average: stress, Text: tableText(stressTexts, int(stress))},
		ActivityLevel: StatisticItem{Average: activity, Text: tableText(activityTexts, int(activity)/10)},
	}
}

// GetStatistics loads the history and aggregates it.
func GetStatistics(ctx context.Context, repo storage.PredictionRepository, uid string) (Statistics, error) {
	recs, err := repo.ListPredictions(ctx, uid)
	if err != nil {
		return Statistics{}, err
	}
	return CalculateStatistics(recs), nil
}
