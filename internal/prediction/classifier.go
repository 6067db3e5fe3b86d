package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/dreamguard-id/DreamGuard/internal"
)

// ErrInference reports that the external model was unavailable or returned
// output we cannot interpret. Callers must not persist anything when they
// see it.
var ErrInference = errors.New("prediction: inference failed")

// Per-feature mean and variance from the training set, in feature-vector
// column order. The model expects inputs standardized with exactly these
// constants.
var (
	featureMean = []float64{
		1.43478261, 44.1594203, 5.84057971, 6.63043478, 7.10144928, 59.442029,
		5.63768116, 1.65217391, 70.9202899, 6850.72464, 131.275362, 86.8333333,
	}
	featureVariance = []float64{
		0.245746692, 75.3803823, 6.23545474, 0.653276623, 1.61289645, 441.7249,
		3.46292796, 0.299306868, 19.392197, 3121919.76, 58.9096828, 40.486715,
	}
)

// Invoker runs the external classifier on a standardized batch and returns
// one probability row per input row.
type Invoker interface {
	Invoke(ctx context.Context, batch [][]float64) ([][]float64, error)
}

// HTTPInvoker calls a model serving endpoint over HTTP JSON.
type HTTPInvoker struct {
	URL        string
	HTTPClient *http.Client
	logger     internal.Logger
}

func NewHTTPInvoker(url string, logger internal.Logger) *HTTPInvoker {
	return &HTTPInvoker{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

type inferenceRequest struct {
	Instances [][]float64 `json:"instances"`
}

type inferenceResponse struct {
	Predictions [][]float64 `json:"predictions"`
}

func (i *HTTPInvoker) Invoke(ctx context.Context, batch [][]float64) ([][]float64, error) {
	payload, err := json.Marshal(inferenceRequest{Instances: batch})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.URL, bytes.NewReader(payload))
	if err != nil {
		i.logger.Errorf("failed to create inference request: %v", err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := i.HTTPClient.Do(req)
	if err != nil {
		i.logger.Errorf("failed to call model service: %v", err)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		i.logger.Errorf("model service returned %d", resp.StatusCode)
		return nil, fmt.Errorf("model service returned %d", resp.StatusCode)
	}
	var out inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		i.logger.Errorf("failed to decode inference response: %v", err)
		return nil, err
	}
	return out.Predictions, nil
}

// Outcome is the adapter's view of one classification: the 1-indexed argmax
// class and each class probability as a 2-decimal percentage string.
type Outcome struct {
	PredictedClass        int
	ConfidencePercentages []string
}

// Adapter standardizes a feature vector, invokes the model, and extracts
// class and confidences from the probability row.
type Adapter struct {
	invoker Invoker
}

func NewAdapter(invoker Invoker) *Adapter {
	return &Adapter{invoker: invoker}
}

// Predict classifies a single feature vector.
func (a *Adapter) Predict(ctx context.Context, features []float64) (*Outcome, error) {
	if len(features) != len(featureMean) {
		return nil, fmt.Errorf("%w: expected %d features, got %d", ErrInference, len(featureMean), len(features))
	}

	standardized := make([]float64, len(features))
	for idx, v := range features {
		standardized[idx] = (v - featureMean[idx]) / math.Sqrt(featureVariance[idx])
	}

	rows, err := a.invoker.Invoke(ctx, [][]float64{standardized})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}
	if len(rows) != 1 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: malformed probability output", ErrInference)
	}

	probs := rows[0]
	argmax := 0
	for idx, p := range probs {
		if p > probs[argmax] {
			argmax = idx
		}
	}

	confidences := make([]string, len(probs))
	for idx, p := range probs {
		confidences[idx] = fmt.Sprintf("%.2f", p*100)
	}

	// Model classes are 0-indexed internally.
	return &Outcome{PredictedClass: argmax + 1, ConfidencePercentages: confidences}, nil
}
