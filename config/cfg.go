package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ParserConfig struct {
		FontSize          int  `yaml:"font_size" validate:"min=8,max=64"`
		Anonymize         bool `yaml:"anonymize"`
		AnonymizeIDs      bool `yaml:"anonymize_ids"`
		ShowAnonymousName bool `yaml:"show_anonymous_name"`
		// 0 means one worker per available CPU
		Workers int `yaml:"workers" validate:"gte=0"`
	}

	// ThemeColors holds optional per-color overrides, "#rrggbb" or "#aarrggbb".
	ThemeColors struct {
		Quote             string `yaml:"quote,omitempty" validate:"omitempty,hexcolor"`
		Name              string `yaml:"name,omitempty" validate:"omitempty,hexcolor"`
		Subject           string `yaml:"subject,omitempty" validate:"omitempty,hexcolor"`
		InlineQuote       string `yaml:"inline_quote,omitempty" validate:"omitempty,hexcolor"`
		Capcode           string `yaml:"capcode,omitempty" validate:"omitempty,hexcolor"`
		IDBackgroundLight string `yaml:"id_background_light,omitempty" validate:"omitempty,hexcolor"`
		IDBackgroundDark  string `yaml:"id_background_dark,omitempty" validate:"omitempty,hexcolor"`
	}

	ThemeConfig struct {
		Palette string      `yaml:"name" validate:"required"`
		Colors  ThemeColors `yaml:"colors"`
	}

	OutputConfig struct {
		NameTemplate string `yaml:"name_template"`
	}

	SavedRepliesConfig struct {
		Database string `yaml:"database,omitempty" sanitize:"assure_file_access"`
	}

	Config struct {
		Version      int                `yaml:"version" validate:"eq=1"`
		Parser       ParserConfig       `yaml:"parser"`
		Theme        ThemeConfig        `yaml:"theme"`
		Output       OutputConfig       `yaml:"output"`
		SavedReplies SavedRepliesConfig `yaml:"saved_replies"`
		Logging      LoggingConfig      `yaml:"logging"`
		Reporting    ReporterConfig     `yaml:"reporting"`
	}
)

// NOTE: must match yaml field name above
const OutputNameTemplateFieldName = "name_template"

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(OutputNameTemplateFieldName),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
