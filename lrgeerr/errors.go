// Package lrgeerr defines the typed error kinds used across the genome-size
// estimation pipeline. It is modelled on github.com/grailbio/base/errors,
// which the rest of this module uses directly for ad-hoc wrapping, but its
// E takes a Kind, a message and an optional wrapped error, so callers can
// distinguish error classes programmatically (see spec §7).
package lrgeerr

import (
	"fmt"
	"strings"
)

// Kind classifies an Error.
type Kind int

const (
	// Other is an unclassified error.
	Other Kind = iota
	// IO covers file-absent, unreadable, or empty-file conditions.
	IO
	// FastqParse covers malformed records or invalid compression.
	FastqParse
	// TooManyReads is returned when a read set exceeds 2^32-1 records.
	TooManyReads
	// TooFewReads is returned when a read set is smaller than a required minimum.
	TooFewReads
	// InvalidPlatform is returned for an unrecognised platform string.
	InvalidPlatform
	// ThreadPool covers worker-pool setup or join failures.
	ThreadPool
	// PafWrite covers PAF serialization failures.
	PafWrite
	// Map covers an aligner error for a specific read.
	Map
	// DuplicateReadIdentifier is returned when a subsample contains the same id twice.
	DuplicateReadIdentifier
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "IO"
	case FastqParse:
		return "FastqParse"
	case TooManyReads:
		return "TooManyReads"
	case TooFewReads:
		return "TooFewReads"
	case InvalidPlatform:
		return "InvalidPlatform"
	case ThreadPool:
		return "ThreadPool"
	case PafWrite:
		return "PafWrite"
	case Map:
		return "Map"
	case DuplicateReadIdentifier:
		return "DuplicateReadIdentifier"
	default:
		return "Other"
	}
}

// Error is a typed error carrying a Kind plus enough context (offending
// identifier, underlying reason) to diagnose, per spec §7.
type Error struct {
	Kind  Kind
	Msg   string
	Ident string // offending read identifier, if applicable
	Err   error  // wrapped underlying error, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Ident != "" {
		fmt.Fprintf(&b, " (read %q)", e.Ident)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an *Error of the given kind with a message and an optional
// wrapped error.
func E(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// WithIdent attaches a read identifier to an *Error for context.
func WithIdent(kind Kind, msg, ident string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Ident: ident, Err: err}
}
