// Package aml converts indentation based templates into HTML templates.
//
// A Config bundles the dialect chosen for the templates with the engine
// resolved for it. It is built once with a Builder and never changes, so
// it can be shared by concurrent conversions:
//
//	cfg, err := aml.NewBuilder().WithDialect(dialect.Jinja).Build()
//	if err != nil {
//		return err
//	}
//	html, err := cfg.Convert(text)
package aml

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hesusruiz/aml/dialect"
	"github.com/hesusruiz/aml/engine"
)

// ErrConfiguration is wrapped by all the configuration errors
var ErrConfiguration = errors.New("configuration error")

var (
	// ErrNotConfigured is returned when converting without a dialect
	ErrNotConfigured = fmt.Errorf("%w: not configured", ErrConfiguration)
	// ErrAlreadyConfigured is returned when configuring a second time
	ErrAlreadyConfigured = fmt.Errorf("%w: already configured", ErrConfiguration)
)

// Builder collects the options of a Config.
type Builder struct {
	dialect *dialect.Dialect
	elide   bool
	log     *zap.SugaredLogger
	built   bool
}

// NewBuilder returns a Builder with whitespace elision enabled.
func NewBuilder() *Builder {
	return &Builder{elide: true}
}

func (b *Builder) WithDialect(d *dialect.Dialect) *Builder {
	b.dialect = d
	return b
}

// WithElision enables or disables whitespace elision.
func (b *Builder) WithElision(elide bool) *Builder {
	b.elide = elide
	return b
}

func (b *Builder) WithLogger(log *zap.SugaredLogger) *Builder {
	b.log = log
	return b
}

// Build resolves the engine for the options. A Builder can only build once.
func (b *Builder) Build() (*Config, error) {
	if b.built {
		return nil, ErrAlreadyConfigured
	}
	if b.dialect == nil {
		return nil, fmt.Errorf("%w: no dialect", ErrNotConfigured)
	}

	log := b.log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	// The dialect hooks go first, so elision wraps them
	hooks := engine.NewHooks()
	if b.dialect.Extension != nil {
		if err := install(hooks, b.dialect.Extension); err != nil {
			return nil, err
		}
	}
	if b.elide {
		if err := install(hooks, engine.WhitespaceElision()); err != nil {
			return nil, err
		}
	}

	b.built = true

	cfg := &Config{
		dialect: b.dialect,
		elide:   b.elide,
		engine:  engine.New(hooks, log),
		log:     log,
	}
	log.Debugw("configured", "dialect", cfg.dialect.Name, "elide", cfg.elide, "extensions", hooks.Installed())

	return cfg, nil
}

func install(hooks *engine.Hooks, ext engine.Extension) error {
	err := hooks.Install(ext)
	if errors.Is(err, engine.ErrDuplicateExtension) {
		return fmt.Errorf("%w: %v", ErrAlreadyConfigured, err)
	}
	return err
}

// Config is an immutable conversion setup. The zero Config is not configured.
type Config struct {
	dialect *dialect.Dialect
	elide   bool
	engine  *engine.Engine
	log     *zap.SugaredLogger
}

// Dialect returns the dialect of the Config.
func (c *Config) Dialect() *dialect.Dialect {
	if c == nil {
		return nil
	}
	return c.dialect
}

// Elided returns true if whitespace elision is enabled.
func (c *Config) Elided() bool {
	return c != nil && c.elide
}

// Convert runs the dialect PRE pass, the engine and the dialect POST pass.
func (c *Config) Convert(text string) (string, error) {
	if c == nil || c.engine == nil {
		return "", ErrNotConfigured
	}

	pre, err := c.dialect.Pre(text)
	if err != nil {
		return "", err
	}

	out, err := c.dialect.Post(c.engine.Convert(pre), c.elide)
	if err != nil {
		return "", err
	}

	c.log.Debugw("converted", "dialect", c.dialect.Name, "in", len(text), "out", len(out))
	return out, nil
}
