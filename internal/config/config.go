package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// AppDirName is the directory searched under the user config directory.
const AppDirName = "go-cv2pdf"

// Config holds every setting of a cv2pdf run. Zero values mean "use the
// default", so a partial file only overrides what it names.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Template TemplateConfig `yaml:"template"`
	Style    StyleConfig    `yaml:"style"`
	PDF      PDFConfig      `yaml:"pdf"`
}

// InputConfig defines the CV data source.
type InputConfig struct {
	Path string `yaml:"path" validate:"omitempty,max=4096"` // default: cv_data.yaml
}

// OutputConfig defines where generated files go.
type OutputConfig struct {
	Name     string `yaml:"name" validate:"omitempty,max=255,excludesall=/\\"` // base name, no extension
	Dir      string `yaml:"dir" validate:"omitempty,max=4096"`                 // PDF directory (default: output)
	KeepHTML bool   `yaml:"keepHTML"`                                          // keep <name>.html after success
}

// TemplateConfig locates the HTML template.
type TemplateConfig struct {
	Path string `yaml:"path" validate:"omitempty,max=4096"` // default: cv_template.html
}

// StyleConfig locates the stylesheet.
type StyleConfig struct {
	Path string `yaml:"path" validate:"omitempty,max=4096"` // default: style.css
}

// PDFConfig defines engine and page settings.
type PDFConfig struct {
	Engine  string     `yaml:"engine" validate:"omitempty,oneof=rod chromedp wkhtmltopdf"`
	Timeout string     `yaml:"timeout" validate:"omitempty,duration"` // Go duration, e.g. "45s"
	Page    PageConfig `yaml:"page"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string   `yaml:"size" validate:"omitempty,oneof=letter a4 legal"`           // default: a4
	Orientation string   `yaml:"orientation" validate:"omitempty,oneof=portrait landscape"` // default: portrait
	Margin      *float64 `yaml:"margin" validate:"omitempty,gte=0.25,lte=3"`                // inches (default: 0.5); nil when unset
}

// TimeoutDuration returns the parsed timeout, or zero when unset.
// Validate guarantees a set value parses.
func (p PDFConfig) TimeoutDuration() time.Duration {
	if p.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0
	}
	return d
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their YAML key so messages match the file the user wrote.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})

	return v
}

// Validate checks every field against its constraints.
// All violations are reported at once, joined with "; ".
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrConfigInvalid, strings.Join(msgs, "; "))
}

// describe renders a single validation failure as "<yaml.path>: <reason>".
func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest // drop the root struct name
	}

	var reason string
	switch fe.Tag() {
	case "oneof":
		reason = fmt.Sprintf("must be one of: %s (got %q)", strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "max":
		reason = fmt.Sprintf("exceeds maximum length of %s", fe.Param())
	case "gte":
		reason = fmt.Sprintf("must be at least %s (got %v)", fe.Param(), fe.Value())
	case "lte":
		reason = fmt.Sprintf("must be at most %s (got %v)", fe.Param(), fe.Value())
	case "excludesall":
		reason = "must be a name, not a path"
	case "duration":
		reason = fmt.Sprintf("must be a positive duration such as 30s or 1m (got %q)", fe.Value())
	default:
		reason = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return field + ": " + reason
}

// DefaultConfig returns an empty configuration; every field falls back to
// the built-in defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-cv2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
