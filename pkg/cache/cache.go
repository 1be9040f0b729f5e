// Package cache stores rendered artifacts so repeated renders of the same
// inputs skip drawing and encoding.
//
// Rendering is deterministic, so an artifact is fully identified by a hash
// of its inputs: measurements, palette, configuration and format. [Keyer]
// derives those keys; [ScopedKeyer] prefixes them, which the pipeline uses
// to keep entries from different releases apart.
//
// Two backends are provided: [FileCache] for the CLI (one file per entry
// under the user cache directory) and [NullCache] when caching is off.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays valid.
const TTLArtifact = 30 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key and whether it was found.
	// Expired or unreadable entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	ArtifactKey(opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every input that influences a rendered artifact.
// Values must be finite; callers validate measurements first.
type ArtifactKeyOpts struct {
	Traits     map[string][2]float64 `json:"traits"` // trait -> {score, percentile}
	Colors     map[string]string     `json:"colors"` // trait -> hex
	Background string                `json:"background"`
	Opacity    float64               `json:"opacity"`
	Margin     float64               `json:"margin"`
	Width      int                   `json:"width"`
	Height     int                   `json:"height"`
	Center     string                `json:"center"`
	FirstOnly  bool                  `json:"first_only"`
	Format     string                `json:"format"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, opts)
}
