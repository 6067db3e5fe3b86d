package prediction

import (
	"errors"
	"fmt"
)

// ErrInvalidClass reports a classifier class outside {1,2,3}. That is a
// contract violation by the adapter and must never be papered over with a
// default result.
var ErrInvalidClass = errors.New("prediction: invalid classifier class")

const (
	textNoDisorder = "No Sleep Disorder"
	textApnea      = "Sleep Apnea"
	textInsomnia   = "Sleep Insomnia"
)

// resultRule matches one row of the disambiguation table.
type resultRule struct {
	class int
	match func(sleepDuration float64, stressLevel int) bool
	id    int
	text  string
}

// The rules are an ordered decision table. The compound short-sleep +
// high-stress rule precedes both single-condition rules, which precede the
// plain class-1 fallback.
var resultRules = []resultRule{
	{1, func(d float64, s int) bool { return d < 8 && s >= 8 }, 6, textNoDisorder},
	{1, func(d float64, s int) bool { return d < 8 }, 4, textNoDisorder},
	{1, func(d float64, s int) bool { return s >= 8 }, 5, textNoDisorder},
	{1, func(d float64, s int) bool { return true }, 1, textNoDisorder},
	{2, func(d float64, s int) bool { return true }, 2, textApnea},
	{3, func(d float64, s int) bool { return true }, 3, textInsomnia},
}

// ResolveResult maps the raw classifier class plus the duration and stress
// auxiliaries onto a result id and display text.
func ResolveResult(predictedClass int, sleepDuration float64, stressLevel int) (id int, text string, err error) {
	for _, r := range resultRules {
		if r.class == predictedClass && r.match(sleepDuration, stressLevel) {
			return r.id, r.text, nil
		}
	}
	return 0, "", fmt.Errorf("%w: %d", ErrInvalidClass, predictedClass)
}
