package config

import (
	"maps"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/style"
	"github.com/matzehuels/supernova/pkg/trait"
)

// File is the on-disk TOML configuration. Unset keys leave the
// corresponding setting untouched.
//
//	background = "#101010"
//	opacity    = 0.15
//	margin     = 0.05
//	width      = 1200
//	height     = 1200
//	center     = "centroid"
//	format     = "svg"
//	first_only = false
//
//	[colors]
//	openness    = "orange"
//	neuroticism = "#80FF0000"
type File struct {
	Background *string           `toml:"background"`
	Opacity    *float64          `toml:"opacity"`
	Margin     *float64          `toml:"margin"`
	Width      *int              `toml:"width"`
	Height     *int              `toml:"height"`
	Center     *string           `toml:"center"`
	Format     *string           `toml:"format"`
	FirstOnly  *bool             `toml:"first_only"`
	Colors     map[string]string `toml:"colors"`
}

// Load reads and decodes a TOML configuration file.
// Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML configuration from data.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return &f, nil
}

// Options converts the file's settings into render options.
func (f *File) Options() []Option {
	if f == nil {
		return nil
	}
	var opts []Option
	if f.Background != nil {
		opts = append(opts, func(c *Config) { c.Background = style.ParseColor(*f.Background, c.Background) })
	}
	if f.Opacity != nil {
		opts = append(opts, WithOpacity(*f.Opacity))
	}
	if f.Margin != nil {
		opts = append(opts, WithMargin(*f.Margin))
	}
	if f.Width != nil {
		opts = append(opts, WithWidth(*f.Width))
	}
	if f.Height != nil {
		opts = append(opts, WithHeight(*f.Height))
	}
	if f.Center != nil {
		opts = append(opts, WithCenter(*f.Center))
	}
	if f.FirstOnly != nil {
		opts = append(opts, WithOnlyFirstIteration(*f.FirstOnly))
	}
	return opts
}

// Style merges the file's [colors] table over base.
func (f *File) Style(base style.Style) style.Style {
	if f == nil || len(f.Colors) == 0 {
		return base
	}
	return base.Merge(f.Colors)
}

// Warnings lists settings that [File.Options] will ignore because they are
// out of range. The render still proceeds with the previous values.
func (f *File) Warnings() []error {
	if f == nil {
		return nil
	}
	var out []error
	if f.Opacity != nil {
		if err := errors.ValidateUnitInterval("opacity", *f.Opacity); err != nil {
			out = append(out, err)
		}
	}
	if f.Margin != nil {
		if err := errors.ValidateUnitInterval("margin", *f.Margin); err != nil {
			out = append(out, err)
		}
	}
	if f.Width != nil && *f.Width <= 0 {
		out = append(out, errors.New(errors.ErrCodeInvalidConfig, "width must be positive, got %d", *f.Width))
	}
	if f.Height != nil && *f.Height <= 0 {
		out = append(out, errors.New(errors.ErrCodeInvalidConfig, "height must be positive, got %d", *f.Height))
	}
	if f.Background != nil {
		if _, ok := style.LookupColor(*f.Background); !ok {
			out = append(out, errors.New(errors.ErrCodeInvalidConfig, "unrecognized background color %q", *f.Background))
		}
	}
	for _, name := range slices.Sorted(maps.Keys(f.Colors)) {
		t, ok := trait.Parse(name)
		if !ok {
			continue
		}
		if _, ok := style.LookupColor(f.Colors[name]); !ok {
			out = append(out, errors.New(errors.ErrCodeInvalidConfig, "unrecognized %s color %q", t, f.Colors[name]))
		}
	}
	return out
}
