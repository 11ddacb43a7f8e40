package engine

import (
	"errors"
	"fmt"
)

// The operations of the engine which extensions can wrap.
type (
	// LineFunc renders the content of a single line.
	LineFunc func(line string) Fragment
	// BlockFunc renders a block of more than one line. It must call recurse
	// for the lines of the body that have to be rendered.
	BlockFunc func(e *Engine, out *Output, block []Line, recurse func(body []Line))
	// SugarFunc resolves the tag sugar of a block header into its start and end tags.
	SugarFunc func(markup string) (start Fragment, end Fragment)
	// AccumulateFunc renders the whole document into its list of fragments.
	AccumulateFunc func(lines []Line) []Fragment
	// JoinFunc attaches the indentation prefix of a line to its rendered fragment.
	JoinFunc func(prefix string, f Fragment) Fragment
	// RulesFunc returns the ordered syntax rules used by the line renderer.
	RulesFunc func() []SyntaxRule
)

// A Hook receives the currently active implementation of an operation and
// returns the one replacing it. The returned function may call next any
// number of times, including zero.
type Hook[F any] func(next F) F

// Chain is the stack of hooks installed on one operation.
type Chain[F any] struct {
	hooks []Hook[F]
}

// Push adds a hook on top of the ones already installed.
func (c *Chain[F]) Push(h Hook[F]) {
	c.hooks = append(c.hooks, h)
}

// Len returns the number of hooks installed.
func (c *Chain[F]) Len() int {
	return len(c.hooks)
}

// Resolve composes the hooks around base, in installation order.
// The last hook installed is the outermost one.
func (c *Chain[F]) Resolve(base F) F {
	f := base
	for _, h := range c.hooks {
		f = h(f)
	}
	return f
}

// ErrDuplicateExtension is returned when an extension is installed twice on the same Hooks.
var ErrDuplicateExtension = errors.New("extension already installed")

// An Extension installs hooks on the engine operations.
type Extension interface {
	Name() string
	Extend(h *Hooks)
}

type extensionFunc struct {
	name   string
	extend func(h *Hooks)
}

func (x extensionFunc) Name() string {
	return x.name
}

func (x extensionFunc) Extend(h *Hooks) {
	x.extend(h)
}

// NewExtension builds an Extension from its name and the function installing its hooks.
func NewExtension(name string, extend func(h *Hooks)) Extension {
	return extensionFunc{name: name, extend: extend}
}

// Hooks collects the extensions to be resolved into an Engine.
// The zero value is ready to use.
type Hooks struct {
	names []string

	line       Chain[LineFunc]
	block      Chain[BlockFunc]
	sugar      Chain[SugarFunc]
	accumulate Chain[AccumulateFunc]
	join       Chain[JoinFunc]
	rules      Chain[RulesFunc]
}

func NewHooks() *Hooks {
	return &Hooks{}
}

// Install runs the extension so it can wrap the operations it needs.
// Each extension can only be installed once.
func (h *Hooks) Install(ext Extension) error {
	name := ext.Name()
	for _, n := range h.names {
		if n == name {
			return fmt.Errorf("%w: %s", ErrDuplicateExtension, name)
		}
	}
	h.names = append(h.names, name)
	ext.Extend(h)
	return nil
}

// Installed returns the names of the installed extensions, in installation order.
func (h *Hooks) Installed() []string {
	return append([]string(nil), h.names...)
}

func (h *Hooks) WrapLine(hook Hook[LineFunc]) {
	h.line.Push(hook)
}

func (h *Hooks) WrapBlock(hook Hook[BlockFunc]) {
	h.block.Push(hook)
}

func (h *Hooks) WrapSugar(hook Hook[SugarFunc]) {
	h.sugar.Push(hook)
}

func (h *Hooks) WrapAccumulate(hook Hook[AccumulateFunc]) {
	h.accumulate.Push(hook)
}

func (h *Hooks) WrapJoin(hook Hook[JoinFunc]) {
	h.join.Push(hook)
}

func (h *Hooks) WrapRules(hook Hook[RulesFunc]) {
	h.rules.Push(hook)
}

// PrependRules installs a hook adding rules before the ones already active.
func (h *Hooks) PrependRules(rules ...SyntaxRule) {
	h.WrapRules(func(next RulesFunc) RulesFunc {
		return func() []SyntaxRule {
			return append(append([]SyntaxRule(nil), rules...), next()...)
		}
	})
}
