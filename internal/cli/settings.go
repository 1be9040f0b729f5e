package cli

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/supernova/pkg/config"
	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/style"
	"github.com/matzehuels/supernova/pkg/trait"
)

// styleOpts holds the flags shared by render and batch. Flags only apply
// when given explicitly, so a --config file can supply the rest.
type styleOpts struct {
	configFile string
	format     string
	background string
	opacity    float64
	margin     float64
	width      int
	height     int
	center     string
	firstOnly  bool
	noCache    bool
	colors     map[trait.Trait]*string
}

func newStyleOpts() *styleOpts {
	o := &styleOpts{colors: make(map[trait.Trait]*string, len(trait.All))}
	for _, t := range trait.All {
		o.colors[t] = new(string)
	}
	return o
}

func (o *styleOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.configFile, "config", "c", "", "TOML file with colors and render settings")
	f.StringVarP(&o.format, "format", "f", "", "output format: png (default), pdf, svg, json")
	f.StringVar(&o.background, "background", "black", "background color (#RRGGBB, #AARRGGBB or a name)")
	f.Float64Var(&o.opacity, "opacity", config.DefaultOpacity, "triangle opacity in [0,1]")
	f.Float64Var(&o.margin, "margin", config.DefaultMargin, "fraction of the canvas kept free on each side, in [0,1]")
	f.IntVar(&o.width, "width", config.DefaultWidth, "canvas width")
	f.IntVar(&o.height, "height", config.DefaultHeight, "canvas height")
	f.StringVar(&o.center, "center", "", "triangle center algorithm (default incenter)")
	f.BoolVar(&o.firstOnly, "first-only", false, "draw a single triangle per trait")
	f.BoolVar(&o.noCache, "no-cache", false, "disable the artifact cache")
	for _, t := range trait.All {
		def := style.Hex(style.DefaultStyle().Color(t))
		f.StringVar(o.colors[t], string(t)+"-color", def, "color of the "+string(t)+" triangles")
	}
	registerFlagCompletions(cmd)
}

// settings is the resolved render input shared by every render of a command.
type settings struct {
	cfg    config.Config
	style  style.Style
	format string
}

// resolve layers defaults, the --config file and explicit flags, in that
// order. Out-of-range and unparseable values are reported and ignored.
func (o *styleOpts) resolve(cmd *cobra.Command, logger *log.Logger) (settings, error) {
	s := settings{cfg: config.Default(), style: style.DefaultStyle()}

	if o.configFile != "" {
		f, err := config.Load(o.configFile)
		if err != nil {
			return settings{}, err
		}
		for _, w := range f.Warnings() {
			logger.Warn("ignoring config value", "file", o.configFile, "reason", errors.UserMessage(w))
		}
		s.cfg = s.cfg.With(f.Options()...)
		s.style = f.Style(s.style)
		if f.Format != nil {
			s.format = *f.Format
		}
	}

	changed := cmd.Flags().Changed
	var opts []config.Option
	if changed("background") {
		opts = append(opts, config.WithBackground(parseColorFlag(logger, "background", o.background, s.cfg.Background)))
	}
	if changed("opacity") {
		warnRange(logger, "opacity", o.opacity)
		opts = append(opts, config.WithOpacity(o.opacity))
	}
	if changed("margin") {
		warnRange(logger, "margin", o.margin)
		opts = append(opts, config.WithMargin(o.margin))
	}
	if changed("width") {
		warnPositive(logger, "width", o.width)
		opts = append(opts, config.WithWidth(o.width))
	}
	if changed("height") {
		warnPositive(logger, "height", o.height)
		opts = append(opts, config.WithHeight(o.height))
	}
	if changed("center") {
		opts = append(opts, config.WithCenter(o.center))
	}
	if changed("first-only") {
		opts = append(opts, config.WithOnlyFirstIteration(o.firstOnly))
	}
	s.cfg = s.cfg.With(opts...)

	for _, t := range trait.All {
		name := string(t) + "-color"
		if changed(name) {
			s.style = s.style.With(t, parseColorFlag(logger, name, *o.colors[t], s.style.Color(t)))
		}
	}

	if changed("format") {
		s.format = o.format
	}
	return s, nil
}

func parseColorFlag(logger *log.Logger, flag, value string, def color.NRGBA) color.NRGBA {
	c, ok := style.LookupColor(value)
	if !ok {
		logger.Warn("unrecognized color, keeping previous", "flag", flag, "value", value, "using", style.Hex(def))
		return def
	}
	return c
}

func warnRange(logger *log.Logger, name string, v float64) {
	if err := errors.ValidateUnitInterval(name, v); err != nil {
		logger.Warn("ignoring flag", "reason", errors.UserMessage(err))
	}
}

func warnPositive(logger *log.Logger, name string, v int) {
	if v <= 0 {
		logger.Warn("ignoring flag", "reason", name+" must be positive")
	}
}
