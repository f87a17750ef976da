// Package macro expands $(name) placeholders through a layered chain of scopes.
package macro

import (
	"regexp"
	"strings"

	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/zerr"
)

var placeholder = regexp.MustCompile(`\$\(([A-Za-z_][A-Za-z0-9_.\-]*)\)`)

// unimplemented lists macros that are recognized but deliberately not provided.
var unimplemented = map[string]bool{
	"devenvdir":       true,
	"vsinstalldir":    true,
	"vcinstalldir":    true,
	"frameworksdkdir": true,
	"webdeploypath":   true,
}

// Scope provides the macro values of one layer.
type Scope interface {
	// Lookup returns the value of name, matched case-insensitively.
	// The boolean is false when the scope does not define name.
	Lookup(name string) (string, bool, error)
}

// Resolver expands macros by consulting its scopes in order.
type Resolver struct {
	scopes []Scope
}

// New creates a resolver over scopes, innermost first
// (configuration, then project, then solution). Nil scopes are skipped.
func New(scopes ...Scope) *Resolver {
	r := &Resolver{scopes: make([]Scope, 0, len(scopes))}
	for _, s := range scopes {
		if s != nil {
			r.scopes = append(r.scopes, s)
		}
	}
	return r
}

// Expand replaces every $(name) in text with its value.
// Substituted values are inserted verbatim and never scanned again.
func (r *Resolver) Expand(text string) (string, error) {
	if !strings.Contains(text, "$(") {
		return text, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range placeholder.FindAllStringSubmatchIndex(text, -1) {
		value, err := r.ExpandOne(text[m[2]:m[3]])
		if err != nil {
			return "", zerr.With(err, "text", text)
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(value)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// ExpandOne returns the value of a single macro.
func (r *Resolver) ExpandOne(name string) (string, error) {
	for _, s := range r.scopes {
		value, ok, err := s.Lookup(name)
		if err != nil {
			return "", err
		}
		if ok {
			return value, nil
		}
	}
	if unimplemented[strings.ToLower(name)] {
		return "", zerr.With(zerr.Wrap(domain.ErrUnimplementedMacro, "cannot expand $("+name+")"), "macro", name)
	}
	return "", zerr.With(zerr.Wrap(domain.ErrUnsupportedMacro, "cannot expand $("+name+")"), "macro", name)
}
