// Package trait defines the five personality traits a supernova plot is
// built from, and the per-trait measurements (score and percentile).
//
// # Canonical Order
//
// Every computation iterates traits in [All] order:
//
//	openness, extraversion, agreeableness, conscientiousness, neuroticism
//
// The order fixes both the floating point summation order used by the
// metrics and the painting order of the triangle groups, so two renders of
// the same input are identical.
//
// # Validation
//
// [Measurements.Validate] rejects sets that lack one of the five traits or
// carry NaN/infinite values. The returned error carries the code
// [errors.ErrCodeMissingTrait] or [errors.ErrCodeInvalidMeasurement] and wraps a
// [*MeasurementError] naming the offending trait. Identifiers outside the
// five are tolerated and ignored; see [Measurements.Unknown].
//
// [errors.ErrCodeMissingTrait]: github.com/matzehuels/supernova/pkg/errors.ErrCodeMissingTrait
// [errors.ErrCodeInvalidMeasurement]: github.com/matzehuels/supernova/pkg/errors.ErrCodeInvalidMeasurement
package trait

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/supernova/pkg/errors"
)

// Trait identifies one of the five personality measures.
type Trait string

// The five recognized traits.
const (
	Openness          Trait = "openness"
	Extraversion      Trait = "extraversion"
	Agreeableness     Trait = "agreeableness"
	Conscientiousness Trait = "conscientiousness"
	Neuroticism       Trait = "neuroticism"
)

// All lists the traits in canonical order.
var All = [...]Trait{Openness, Extraversion, Agreeableness, Conscientiousness, Neuroticism}

// Parse resolves a trait name, ignoring case and surrounding whitespace.
func Parse(s string) (Trait, bool) {
	t := Trait(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t, true
	}
	return "", false
}

// Valid reports whether t is one of the five recognized traits.
func (t Trait) Valid() bool {
	return slices.Contains(All[:], t)
}

// Index returns the position of t in canonical order, or -1.
func (t Trait) Index() int {
	return slices.Index(All[:], t)
}

func (t Trait) String() string { return string(t) }

// Names returns the trait names in canonical order joined by sep.
func Names(sep string) string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = string(t)
	}
	return strings.Join(names, sep)
}

// Measurement is a single trait result.
type Measurement struct {
	Score      float64 `json:"score" toml:"score"`           // raw value, nominally 0-5
	Percentile float64 `json:"percentile" toml:"percentile"` // rank, nominally 0-100
}

// Measurements maps traits to their results. Keys are trait names so that
// sets decoded from files or CSV rows can carry unrecognized identifiers.
type Measurements map[Trait]Measurement

// MeasurementError identifies the trait that made a measurement set unusable.
type MeasurementError struct {
	Trait Trait
	Field string  // "score" or "percentile"; empty when the trait is missing
	Value float64 // offending value when Field is set
}

func (e *MeasurementError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("trait %s: missing", e.Trait)
	}
	return fmt.Sprintf("trait %s: %s is not a finite number (%v)", e.Trait, e.Field, e.Value)
}

// Validate checks that all five traits are present with finite values.
// The first problem found in canonical order is reported.
func (m Measurements) Validate() error {
	for _, t := range All {
		v, ok := m[t]
		if !ok {
			return errors.Wrap(errors.ErrCodeMissingTrait, &MeasurementError{Trait: t},
				"measurements incomplete")
		}
		if !finite(v.Score) {
			return errors.Wrap(errors.ErrCodeInvalidMeasurement,
				&MeasurementError{Trait: t, Field: "score", Value: v.Score}, "invalid measurement")
		}
		if !finite(v.Percentile) {
			return errors.Wrap(errors.ErrCodeInvalidMeasurement,
				&MeasurementError{Trait: t, Field: "percentile", Value: v.Percentile}, "invalid measurement")
		}
	}
	return nil
}

// Unknown returns keys that are not recognized traits, sorted.
func (m Measurements) Unknown() []string {
	var out []string
	for k := range m {
		if !k.Valid() {
			out = append(out, string(k))
		}
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy of m.
func (m Measurements) Clone() Measurements {
	out := make(Measurements, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
