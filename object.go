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

import (
	"fmt"
	"strings"
)

// Object is any value that can live on the operand stack or in the
// variable dictionary.
type Object interface{}

// Real is a numeric value. The importer grammar has a single number type;
// the small integers used for line caps and joins are Reals too.
type Real float64

type Boolean bool

// Name is a name literal, written /name in the source text.
type Name string

func (n Name) String() string {
	return "/" + string(n)
}

// Array is the sequence of values collected between a '[' mark and the
// matching ']'.
type Array []Object

// Procedure is a deferred block of source text: the raw lexemes captured
// between braces.  Invoking a procedure replays its lexemes through the
// dispatcher, so names in the body resolve at call time, not at capture
// time.
type Procedure []string

func (p Procedure) String() string {
	return "{" + strings.Join(p, " ") + "}"
}

// builtin is an operator implemented in Go.
type builtin func(*Interpreter) error

func (b builtin) String() string {
	return "<builtin>"
}

// typeName describes an object's kind for error messages.
func typeName(o Object) string {
	switch o.(type) {
	case Real:
		return "number"
	case Boolean:
		return "boolean"
	case Name:
		return "name"
	case Array:
		return "array"
	case Procedure:
		return "procedure"
	case builtin:
		return "operator"
	default:
		return fmt.Sprintf("%T", o)
	}
}
