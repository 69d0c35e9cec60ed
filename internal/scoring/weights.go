package scoring

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// legacySimilarityKey is the name older stored configurations use for the
// similarity weight.
const legacySimilarityKey = "tfidf"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Weights sets the contribution of each sub-score to the final score.
// Education is reserved: no signal feeds it yet, so it always contributes 0.
type Weights struct {
	Keywords   float64 `mapstructure:"keywords" json:"keywords" validate:"gte=0"`
	Similarity float64 `mapstructure:"similarity" json:"similarity" validate:"gte=0"`
	Experience float64 `mapstructure:"experience" json:"experience" validate:"gte=0"`
	Education  float64 `mapstructure:"education" json:"education" validate:"gte=0"`
}

// DefaultWeights returns the weights used when the configuration supplies none.
func DefaultWeights() Weights {
	return Weights{
		Keywords:   0.45,
		Similarity: 0.35,
		Experience: 0.15,
		Education:  0.05,
	}
}

// NewWeights builds validated weights.
func NewWeights(keywords, similarity, experience, education float64) (Weights, error) {
	w := Weights{
		Keywords:   keywords,
		Similarity: similarity,
		Experience: experience,
		Education:  education,
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// WeightsFromMap decodes a loosely typed weight mapping, as found in config
// files. Missing keys keep their defaults; unknown keys, negative or
// non-numeric values are rejected with ErrInvalidConfiguration.
func WeightsFromMap(raw map[string]any) (Weights, error) {
	w := DefaultWeights()
	if len(raw) == 0 {
		return w, nil
	}

	normalized := make(map[string]any, len(raw))
	for key, value := range raw {
		normalized[strings.ToLower(strings.TrimSpace(key))] = value
	}

	if legacy, ok := normalized[legacySimilarityKey]; ok {
		if _, both := normalized["similarity"]; both {
			return Weights{}, fmt.Errorf("%w: both %q and %q weights are set", ErrInvalidConfiguration, legacySimilarityKey, "similarity")
		}
		normalized["similarity"] = legacy
		delete(normalized, legacySimilarityKey)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &w,
	})
	if err != nil {
		return Weights{}, fmt.Errorf("create weights decoder: %w", err)
	}

	if err := decoder.Decode(normalized); err != nil {
		return Weights{}, fmt.Errorf("%w: decode weights: %s", ErrInvalidConfiguration, err)
	}

	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// Validate rejects negative and non-finite weights.
func (w Weights) Validate() error {
	for _, field := range w.fields() {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) {
			return fmt.Errorf("%w: %s weight must be a finite number", ErrInvalidConfiguration, field.name)
		}
	}

	if err := validate.Struct(w); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s weight must be >= 0, got %v", ErrInvalidConfiguration, strings.ToLower(fe.Field()), fe.Value())
		}
		return fmt.Errorf("%w: %s", ErrInvalidConfiguration, err)
	}
	return nil
}

// Sum returns the total of all weights. Final scores stay within 0..100 without
// clamping only when the sum is at most 1.
func (w Weights) Sum() float64 {
	return w.Keywords + w.Similarity + w.Experience + w.Education
}

type weightField struct {
	name  string
	value float64
}

func (w Weights) fields() []weightField {
	return []weightField{
		{name: "keywords", value: w.Keywords},
		{name: "similarity", value: w.Similarity},
		{name: "experience", value: w.Experience},
		{name: "education", value: w.Education},
	}
}
