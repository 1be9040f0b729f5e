// Package io reads trait measurements from JSON and TOML files.
//
// # Formats
//
// Both formats carry an optional identifier and a table of traits. JSON:
//
//	{
//	  "id": "participant-7",
//	  "traits": {
//	    "openness":          {"score": 4.3, "percentile": 59},
//	    "extraversion":      {"score": 2.2, "percentile": 18},
//	    "agreeableness":     {"score": 4.2, "percentile": 63},
//	    "conscientiousness": {"score": 3.5, "percentile": 52},
//	    "neuroticism":       {"score": 2.4, "percentile": 25}
//	  }
//	}
//
// TOML:
//
//	id = "participant-7"
//
//	[traits.openness]
//	score = 4.3
//	percentile = 59
//
// Trait names are matched case-insensitively. Names that are not one of the
// five traits are kept so callers can report them; they do not affect the
// plot. Completeness is not checked here; see [trait.Measurements.Validate].
//
// # Import
//
// [ImportMeasurements] picks the decoder from the file extension (.json or
// .toml). [ReadJSON] and [ReadTOML] decode from any io.Reader.
//
// [trait.Measurements.Validate]: github.com/matzehuels/supernova/pkg/trait.Measurements.Validate
package io
