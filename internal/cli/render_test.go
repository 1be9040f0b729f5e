package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/supernova/pkg/config"
	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/style"
	"github.com/matzehuels/supernova/pkg/trait"
)

// runCLI executes the root command with args and returns the log output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return logs.String(), err
}

var sampleFlags = []string{
	"--openness-score", "4.3", "--openness-percentile", "59",
	"--extraversion-score", "2.2", "--extraversion-percentile", "18",
	"--agreeableness-score", "4.2", "--agreeableness-percentile", "63",
	"--conscientiousness-score", "3.5", "--conscientiousness-percentile", "52",
	"--neuroticism-score", "2.4", "--neuroticism-percentile", "25",
}

func TestRenderFromFlags(t *testing.T) {
	out := filepath.Join(t.TempDir(), "p.svg")
	args := append([]string{"render", "-o", out, "--width", "100", "--height", "100"}, sampleFlags...)

	if _, err := runCLI(t, args...); err != nil {
		t.Fatalf("render error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Errorf("output is not svg: %.60q", data)
	}
}

func TestRenderFromScoresFile(t *testing.T) {
	dir := t.TempDir()
	scores := filepath.Join(dir, "p7.toml")
	content := `id = "p7"
[traits.openness]
score = 4.3
percentile = 59
[traits.extraversion]
score = 2.2
percentile = 18
[traits.agreeableness]
score = 4.2
percentile = 63
[traits.conscientiousness]
score = 3.5
percentile = 52
[traits.honesty]
score = 1
percentile = 1
`
	if err := os.WriteFile(scores, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "p7.json")

	// The file lacks neuroticism; flags complete it.
	logs, err := runCLI(t, "render", "--scores", scores, "-o", out, "--width", "80", "--height", "80",
		"--neuroticism-score", "2.4", "--neuroticism-percentile", "25")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output missing: %v", err)
	}
	if !strings.Contains(logs, "honesty") {
		t.Errorf("unknown trait should be reported, logs:\n%s", logs)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing traits", []string{"render", "-o", filepath.Join(dir, "a.png"), "--openness-score", "1", "--openness-percentile", "1"}, errors.ErrCodeMissingTrait},
		{"score without percentile", []string{"render", "-o", filepath.Join(dir, "a.png"), "--openness-score", "1"}, errors.ErrCodeInvalidInput},
		{"unknown format", append([]string{"render", "-o", filepath.Join(dir, "a.png"), "--format", "gif"}, sampleFlags...), errors.ErrCodeUnknownFormat},
		{"unknown center", append([]string{"render", "-o", filepath.Join(dir, "a.png"), "--center", "orthocenter"}, sampleFlags...), errors.ErrCodeUnknownCenter},
		{"missing scores file", []string{"render", "--scores", filepath.Join(dir, "nope.json")}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("render error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestResolveSettings(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "supernova.toml")
	content := `background = "#101010"
opacity = 2.0
center = "centroid"
format = "pdf"

[colors]
openness = "red"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	o := newStyleOpts()
	cmd := &cobra.Command{Use: "test"}
	o.register(cmd)
	if err := cmd.ParseFlags([]string{
		"--config", cfgPath,
		"--center", "circumcenter",
		"--background", "not-a-color",
		"--margin", "0.2",
		"--neuroticism-color", "#00FF00",
	}); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	s, err := o.resolve(cmd, newLogger(&logs, LogInfo))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	if s.cfg.Center != "circumcenter" {
		t.Errorf("Center = %q, flag should override the file", s.cfg.Center)
	}
	if got := style.Hex(s.cfg.Background); got != "#101010" {
		t.Errorf("Background = %s, bad flag should keep the file value", got)
	}
	if s.cfg.Opacity != config.DefaultOpacity {
		t.Errorf("Opacity = %v, out-of-range file value should be ignored", s.cfg.Opacity)
	}
	if s.cfg.Margin != 0.2 {
		t.Errorf("Margin = %v, want 0.2", s.cfg.Margin)
	}
	if s.format != "pdf" {
		t.Errorf("format = %q, want pdf from the file", s.format)
	}
	if got := s.style.Color(trait.Openness); got != style.Red {
		t.Errorf("openness color = %v, want red", got)
	}
	if got := style.Hex(s.style.Color(trait.Neuroticism)); got != "#00FF00" {
		t.Errorf("neuroticism color = %s, want #00FF00", got)
	}
	if got := s.style.Color(trait.Extraversion); got != style.Yellow {
		t.Errorf("extraversion color = %v, want default yellow", got)
	}

	for _, want := range []string{"opacity", "not-a-color"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("warnings should mention %q:\n%s", want, logs.String())
		}
	}
}

func TestResolveDefaults(t *testing.T) {
	o := newStyleOpts()
	cmd := &cobra.Command{Use: "test"}
	o.register(cmd)
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatal(err)
	}

	s, err := o.resolve(cmd, newLogger(io.Discard, LogInfo))
	if err != nil {
		t.Fatal(err)
	}
	if s.cfg != config.Default() {
		t.Errorf("cfg = %+v, want defaults", s.cfg)
	}
	if s.format != "" {
		t.Errorf("format = %q, want empty", s.format)
	}
}

func TestListCommand(t *testing.T) {
	if _, err := runCLI(t, "list"); err != nil {
		t.Errorf("list error = %v", err)
	}
	if _, err := runCLI(t, "list", "formats"); err != nil {
		t.Errorf("list formats error = %v", err)
	}
	if _, err := runCLI(t, "list", "triangles"); err == nil {
		t.Error("list with an unknown topic should fail")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
