package scoring

import "context"

// Result is the classification returned by the inference service.
// Confidence is a percentage in [0,100].
type Result struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Scorer represents a connector to an external image classification service.
type Scorer interface {
	Score(ctx context.Context, imagePath string) (Result, error)
}

// Static is a stub scorer that always returns the same result. Used in tests
// and when running without a model backend.
type Static struct {
	Label      string
	Confidence float64
}

// Score returns the configured static result.
func (s Static) Score(context.Context, string) (Result, error) {
	label := s.Label
	if label == "" {
		label = "Normal"
	}
	return Result{Label: label, Confidence: s.Confidence}, nil
}
