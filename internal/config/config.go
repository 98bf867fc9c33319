package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-time-diff/internal/core/clock"
	"github.com/penwyp/go-time-diff/internal/core/severity"
	"github.com/penwyp/go-time-diff/internal/presentation/formatter"
	"github.com/penwyp/go-time-diff/internal/util"
)

const (
	DefaultSummaryLimit = 20
	// FastlaneResetMark starts a chapter at every fastlane step
	FastlaneResetMark = "Step: "
)

// Config holds every option of a run
type Config struct {
	Thresholds    severity.Thresholds
	ResetMark     string
	DiffMode      clock.Mode
	SummaryLimit  int
	SummaryFormat string
	Color         util.ColorMode
	Input         string
	Follow        bool
	Fastlane      bool
	Debug         bool
	LogFile       string
	LogFormat     string

	resetPattern *regexp.Regexp
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Thresholds:    severity.DefaultThresholds(),
		DiffMode:      clock.ModeLive,
		SummaryLimit:  DefaultSummaryLimit,
		SummaryFormat: formatter.FormatText,
		Color:         util.ColorAlways,
		LogFormat:     string(util.FormatText),
	}
}

// File is the content of a config file. Nil fields are not set.
type File struct {
	Low           *int    `toml:"low" yaml:"low"`
	Medium        *int    `toml:"medium" yaml:"medium"`
	High          *int    `toml:"high" yaml:"high"`
	ResetMark     *string `toml:"reset_mark" yaml:"reset_mark"`
	DiffMode      *string `toml:"diff_mode" yaml:"diff_mode"`
	SummaryLimit  *int    `toml:"summary_limit" yaml:"summary_limit"`
	SummaryFormat *string `toml:"summary_format" yaml:"summary_format"`
	Color         *string `toml:"color" yaml:"color"`
	Fastlane      *bool   `toml:"fastlane" yaml:"fastlane"`
	LogFile       *string `toml:"log_file" yaml:"log_file"`
	LogFormat     *string `toml:"log_format" yaml:"log_format"`
}

// Load reads a TOML config file, or YAML when the extension is .yaml/.yml
func Load(path string) (File, error) {
	resolved, err := expandPath(path)
	if err != nil {
		return File{}, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{}, fmt.Errorf("config file %s does not exist", resolved)
		}
		return File{}, fmt.Errorf("read config: %w", err)
	}

	var file File
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return File{}, fmt.Errorf("parse config: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, &file); err != nil {
			return File{}, fmt.Errorf("parse config: %w", err)
		}
	}
	return file, nil
}

// ApplyFile overrides the options set in f
func (c *Config) ApplyFile(f File) {
	if f.Low != nil {
		c.Thresholds.Low = *f.Low
	}
	if f.Medium != nil {
		c.Thresholds.Medium = *f.Medium
	}
	if f.High != nil {
		c.Thresholds.High = *f.High
	}
	if f.ResetMark != nil {
		c.ResetMark = *f.ResetMark
	}
	if f.DiffMode != nil {
		c.DiffMode = clock.Mode(*f.DiffMode)
	}
	if f.SummaryLimit != nil {
		c.SummaryLimit = *f.SummaryLimit
	}
	if f.SummaryFormat != nil {
		c.SummaryFormat = strings.TrimSpace(*f.SummaryFormat)
	}
	if f.Color != nil {
		c.Color = util.ColorMode(strings.TrimSpace(*f.Color))
	}
	if f.Fastlane != nil {
		c.Fastlane = *f.Fastlane
	}
	if f.LogFile != nil {
		c.LogFile = strings.TrimSpace(*f.LogFile)
	}
	if f.LogFormat != nil {
		c.LogFormat = strings.TrimSpace(*f.LogFormat)
	}
}

// ApplyFastlane switches to fastlane timestamps and, unless a reset mark
// is already set, starts a chapter at every fastlane step.
func (c *Config) ApplyFastlane() {
	c.DiffMode = clock.ModeFastlane
	if c.ResetMark == "" {
		c.ResetMark = FastlaneResetMark
	}
}

// Validate checks every option and compiles the reset mark
func (c *Config) Validate() error {
	if c.Fastlane {
		c.ApplyFastlane()
	}

	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.SummaryLimit < 0 {
		return fmt.Errorf("--summary-limit must be >= 0 (0 disables the summary)")
	}

	mode, err := clock.ParseMode(string(c.DiffMode))
	if err != nil {
		return err
	}
	c.DiffMode = mode

	if err := formatter.ValidateFormat(c.SummaryFormat); err != nil {
		return err
	}
	c.SummaryFormat = strings.ToLower(c.SummaryFormat)

	color, err := ParseColorMode(string(c.Color))
	if err != nil {
		return err
	}
	c.Color = color

	if _, err := util.ParseLogFormat(c.LogFormat); err != nil {
		return err
	}

	c.resetPattern = nil
	if c.ResetMark != "" {
		pattern, err := regexp.Compile(c.ResetMark)
		if err != nil {
			return fmt.Errorf("bad regex pattern passed to --reset-mark: %w", err)
		}
		c.resetPattern = pattern
	}
	return nil
}

// ResetPattern returns the compiled reset mark, or nil when none is set.
// It is only populated by Validate.
func (c *Config) ResetPattern() *regexp.Regexp {
	return c.resetPattern
}

// SummaryEnabled reports whether the end-of-stream summary is printed
func (c *Config) SummaryEnabled() bool {
	return c.SummaryLimit > 0
}

// ParseColorMode parses "always", "never" or "auto", ignoring case
func ParseColorMode(s string) (util.ColorMode, error) {
	switch mode := util.ColorMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case util.ColorAlways, util.ColorNever, util.ColorAuto:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (valid: always, never, auto)", s)
	}
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// ExpandPath resolves ~ and makes path absolute, returning path unchanged on failure
func ExpandPath(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}
