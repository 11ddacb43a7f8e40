// Package settings loads the options of the aml command. Values come from
// the defaults, then an optional YAML file, then the environment:
//
//	aml:
//	    dialect: jinja
//	    keepWhitespace: false
//	    generatedWarning: true
//	    commentSyntax: "{# %s #}"
//	    codeStyle: monokai
//
// Command line flags are applied by the caller on top of the result.
package settings

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v10"
	"github.com/hesusruiz/vcutils/yaml"

	"github.com/hesusruiz/aml/dialect"
	"github.com/hesusruiz/aml/filter"
)

// Settings are the options of a conversion run.
type Settings struct {
	Dialect        string `env:"AML_DIALECT"`
	KeepWhitespace bool   `env:"AML_KEEP_WHITESPACE"`
	Generated      bool   `env:"AML_GENERATED_WARNING"`
	CommentSyntax  string `env:"AML_COMMENT_SYNTAX"`
	CodeStyle      string `env:"AML_CODE_STYLE"`
	Debug          bool   `env:"AML_DEBUG"`
}

// Default returns the settings used when nothing is configured.
func Default() *Settings {
	return &Settings{
		Dialect:       dialect.Plain.Name,
		CommentSyntax: filter.DefaultCommentSyntax,
		CodeStyle:     "swapoff",
	}
}

// Load reads the settings. An empty fileName skips the YAML file.
func Load(fileName string) (*Settings, error) {
	s := Default()

	if len(fileName) > 0 {
		config, err := yaml.ParseYamlFile(fileName)
		if err != nil {
			return nil, fmt.Errorf("reading settings file %s: %w", fileName, err)
		}
		if err := s.apply(config); err != nil {
			return nil, fmt.Errorf("settings file %s: %w", fileName, err)
		}
	}

	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return s, nil
}

func (s *Settings) apply(config *yaml.YAML) error {
	s.Dialect = config.String("aml.dialect", s.Dialect)
	s.CommentSyntax = config.String("aml.commentSyntax", s.CommentSyntax)
	s.CodeStyle = config.String("aml.codeStyle", s.CodeStyle)

	var err error
	if s.KeepWhitespace, err = boolValue(config, "aml.keepWhitespace", s.KeepWhitespace); err != nil {
		return err
	}
	if s.Generated, err = boolValue(config, "aml.generatedWarning", s.Generated); err != nil {
		return err
	}
	if s.Debug, err = boolValue(config, "aml.debug", s.Debug); err != nil {
		return err
	}
	return nil
}

func boolValue(config *yaml.YAML, path string, def bool) (bool, error) {
	v := config.String(path, strconv.FormatBool(def))
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %q is not a boolean", path, v)
	}
	return b, nil
}

// Validate checks the dialect name and the comment syntax.
func (s *Settings) Validate() error {
	if _, err := dialect.Lookup(s.Dialect); err != nil {
		return err
	}
	if err := filter.ValidateCommentSyntax(s.CommentSyntax); err != nil {
		return err
	}
	return nil
}
