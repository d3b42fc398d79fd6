// Package mcml parses chat markup into styled, interactive text runs.
//
// The markup combines legacy color/format codes (&a, &l, &r, ...), backslash
// escapes, {n} placeholders and event groups of the form
//
//	[display text](!"/command" T"hover text")
//
// Values substituted for placeholders are never read as markup. Parsing never
// fails: ambiguous input is kept as literal text and reported as a Warning.
package mcml

import (
	"github.com/rs/zerolog"
)

// DefaultPlaceholderOffset is the index of the first ordered placeholder.
const DefaultPlaceholderOffset = 1

// Parser turns markup into style runs. A Parser holds only read-only
// configuration and is safe for concurrent use.
type Parser struct {
	registry  *Registry
	offset    int
	colorChar rune
	logger    zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithSerializers registers value serializers for placeholder substitution.
func WithSerializers(serializers ...Serializer) Option {
	return func(p *Parser) {
		p.registry = NewRegistry(serializers...)
	}
}

// WithRegistry shares an existing serializer registry.
func WithRegistry(reg *Registry) Option {
	return func(p *Parser) {
		p.registry = reg
	}
}

// WithPlaceholderOffset sets the index used for the first ordered value.
func WithPlaceholderOffset(offset int) Option {
	return func(p *Parser) {
		p.offset = offset
	}
}

// WithColorChar sets the color trigger character. The section sign is
// accepted regardless.
func WithColorChar(r rune) Option {
	return func(p *Parser) {
		p.colorChar = r
	}
}

// WithLogger sets the logger that receives parse warnings at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		offset:    DefaultPlaceholderOffset,
		colorChar: DefaultColorChar,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = NewRegistry()
	}
	return p
}

// ColorChar returns the configured color trigger.
func (p *Parser) ColorChar() rune {
	return p.colorChar
}

// Result is the outcome of a parse together with its warnings.
type Result struct {
	Runs     []StyleRun
	Warnings []Warning
	// Resolved is the input after placeholder substitution; warning
	// positions refer to it.
	Resolved string
}

// Parse parses raw after substituting replacements, which may be nil.
func (p *Parser) Parse(raw string, replacements map[string]any) []StyleRun {
	return p.ParseResult(raw, replacements).Runs
}

// ParseValues parses raw with ordered values bound to {offset}, {offset+1}, ...
func (p *Parser) ParseValues(raw string, values ...any) []StyleRun {
	return p.Parse(raw, OrderedReplacements(p.offset, values))
}

// ParseResult parses raw and also reports every recovered ambiguity.
func (p *Parser) ParseResult(raw string, replacements map[string]any) *Result {
	resolved := Resolve(raw, replacements, p.registry)

	s := newScanner(resolved, p.colorChar, true)
	runs := s.scan()

	for _, w := range s.warnings {
		p.logger.Debug().
			Str("issue", w.Issue.String()).
			Int("pos", w.Pos).
			Msg(w.Detail)
	}

	return &Result{
		Runs:     runs,
		Warnings: s.warnings,
		Resolved: resolved.Text,
	}
}
