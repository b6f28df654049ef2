// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant

import "strings"

// Code categorizes an [Error].
type Code uint8

const (
	// CodeEmpty reports visitor dispatch against a variant with no active
	// alternative.
	CodeEmpty Code = iota + 1

	// CodeWrongAlternative reports typed access to an alternative that is
	// declared but not currently active.
	CodeWrongAlternative

	// CodeIllFormed reports a schema or query that can never be valid:
	// duplicate alternatives, invalid declarations, or a query for a type
	// the schema does not declare. It is a programming error.
	CodeIllFormed

	// CodeNilReference reports an attempt to bind a reference alternative
	// to a nil address.
	CodeNilReference
)

func (c Code) String() string {
	switch c {
	case CodeEmpty:
		return "empty variant"
	case CodeWrongAlternative:
		return "wrong alternative"
	case CodeIllFormed:
		return "ill-formed"
	case CodeNilReference:
		return "nil reference"
	default:
		return "unknown"
	}
}

// Error is the structured error raised or returned by this package.
//
// Reference-style accessors and [Apply] panic with *Error; poll-style
// accessors report absence through their boolean result instead.
// Errors compare equal under [errors.Is] when their codes match, so
// callers test against the sentinels:
//
//	defer func() {
//		if r := recover(); r != nil {
//			if err, ok := r.(error); ok && errors.Is(err, variant.ErrWrongAlternative) {
//				// recovered
//			}
//		}
//	}()
type Error struct {
	// Schema is the name of the schema type involved, if any.
	Schema string

	// Want describes the requested alternative.
	Want string

	// Have describes the active alternative at the time of the failure.
	Have string

	// Detail is a human-readable explanation.
	Detail string

	Code Code
}

// Sentinels for [errors.Is].
var (
	ErrEmpty            = &Error{Code: CodeEmpty}
	ErrWrongAlternative = &Error{Code: CodeWrongAlternative}
	ErrIllFormed        = &Error{Code: CodeIllFormed}
	ErrNilReference     = &Error{Code: CodeNilReference}
)

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("variant: ")
	b.WriteString(e.Code.String())

	if e.Schema != "" {
		b.WriteString(" in ")
		b.WriteString(e.Schema)
	}

	if e.Want != "" || e.Have != "" {
		b.WriteString(": ")
		if e.Want != "" {
			b.WriteString("want ")
			b.WriteString(e.Want)
		}
		if e.Have != "" {
			if e.Want != "" {
				b.WriteString(", ")
			}
			b.WriteString("have ")
			b.WriteString(e.Have)
		}
	}

	if e.Detail != "" {
		if e.Want != "" || e.Have != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	return b.String()
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func illFormed(schema, detail string) *Error {
	return &Error{Code: CodeIllFormed, Schema: schema, Detail: detail}
}

func unknownQuery(schema, want string) *Error {
	return &Error{
		Code:   CodeIllFormed,
		Schema: schema,
		Want:   want,
		Detail: "type is not an alternative of this schema",
	}
}

func wrongAlternative(schema, want, have string) *Error {
	return &Error{Code: CodeWrongAlternative, Schema: schema, Want: want, Have: have}
}

func emptyVariant(schema string) *Error {
	return &Error{Code: CodeEmpty, Schema: schema}
}

func nilReference(schema, want string) *Error {
	return &Error{Code: CodeNilReference, Schema: schema, Want: want}
}
