// github.com/wallplot/psimport - a PostScript importer for pen plotters
// Copyright (C) 2026  The psimport authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package psimport

import "fmt"

// Kind classifies the errors an import can fail with.  Every error is
// fatal: the run aborts at the first one, and no partial instruction
// sequence is returned.
type Kind int

const (
	// LexError reports malformed structure at the character level, for
	// example a procedure body or a font prolog still open at the end of
	// the input.
	LexError Kind = iota + 1

	// UnknownTokenError reports a lexeme whose leading character matches
	// none of the recognized classes.
	UnknownTokenError

	// UnmatchedBracketError reports a ']' with no corresponding open mark.
	UnmatchedBracketError

	// UndefinedNameError reports an identifier with no binding in the
	// variable dictionary.
	UndefinedNameError

	// TypeMismatchError reports an operand whose kind does not match what
	// the operator expects.
	TypeMismatchError

	// StackUnderflowError reports a pop from an empty stack.
	StackUnderflowError

	// NumberFormatError reports a numeric literal that fails to parse.
	NumberFormatError
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "lexical error"
	case UnknownTokenError:
		return "unknown token"
	case UnmatchedBracketError:
		return "unmatched bracket"
	case UndefinedNameError:
		return "undefined name"
	case TypeMismatchError:
		return "type mismatch"
	case StackUnderflowError:
		return "stack underflow"
	case NumberFormatError:
		return "malformed number"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the error type produced by the interpreter.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

// e constructs an *Error, prefixed with the scanner's current position
// when one is attached.
func (intp *Interpreter) e(kind Kind, format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	if intp.scanner != nil {
		msg = fmt.Sprintf("%d:%d: %s", intp.scanner.line+1, intp.scanner.col, msg)
	}
	return &Error{Kind: kind, msg: msg}
}
