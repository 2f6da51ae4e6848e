package regexp

import (
	"fmt"
	stdlib "regexp"

	gore2 "github.com/wasilibs/go-re2"
)

// Engine names accepted by Compile.
const (
	EngineStdlib = "stdlib"
	EngineRE2    = "re2"

	// EngineDefault is used when Compile is given no engine name
	EngineDefault = EngineStdlib
)

// engine is an internal interface satisfied by both *stdlib.Regexp and *gore2.Regexp.
type engine interface {
	FindStringSubmatch(s string) []string
	NumSubexp() int
	String() string
}

// Regexp wraps a compiled regular expression. It is a concrete struct
// so that *Regexp works as a normal pointer (not pointer-to-interface).
type Regexp struct {
	e    engine
	name string
}

// FindStringSubmatch returns the leftmost match and its groups. Groups that
// did not participate in the match are empty strings.
func (r *Regexp) FindStringSubmatch(s string) []string {
	return r.e.FindStringSubmatch(s)
}
func (r *Regexp) NumSubexp() int {
	return r.e.NumSubexp()
}
func (r *Regexp) String() string {
	return r.e.String()
}

// Engine returns the name of the engine this expression was compiled with.
func (r *Regexp) Engine() string {
	return r.name
}

// ValidEngine reports whether name is a known engine. The empty string
// means the default engine.
func ValidEngine(name string) bool {
	switch name {
	case "", EngineStdlib, EngineRE2:
		return true
	}
	return false
}

// Compile compiles expr with the named engine, or the default engine when
// name is empty.
func Compile(name, expr string) (*Regexp, error) {
	if name == "" {
		name = EngineDefault
	}
	var (
		impl engine
		err  error
	)
	switch name {
	case EngineRE2:
		impl, err = gore2.Compile(expr)
	case EngineStdlib:
		impl, err = stdlib.Compile(expr)
	default:
		return nil, fmt.Errorf("unknown regex engine %q", name)
	}
	if err != nil {
		return nil, err
	}
	return &Regexp{e: impl, name: name}, nil
}
