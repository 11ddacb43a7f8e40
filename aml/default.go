package aml

import (
	"sync"

	"github.com/hesusruiz/aml/dialect"
)

// The process wide configuration used by ConvertText
var (
	defaultMu  sync.RWMutex
	defaultCfg *Config
)

// Configure sets the process wide configuration. It can only be called once.
func Configure(d *dialect.Dialect, elide bool) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultCfg != nil {
		return ErrAlreadyConfigured
	}

	cfg, err := NewBuilder().WithDialect(d).WithElision(elide).Build()
	if err != nil {
		return err
	}
	defaultCfg = cfg
	return nil
}

// ConvertText converts text with the process wide configuration.
func ConvertText(text string) (string, error) {
	defaultMu.RLock()
	cfg := defaultCfg
	defaultMu.RUnlock()

	if cfg == nil {
		return "", ErrNotConfigured
	}
	return cfg.Convert(text)
}
