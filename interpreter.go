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
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/exp/maps"
)

// Interpreter runs one stream of PostScript-subset source text and
// collects the drawing instructions it emits.  An Interpreter owns all of
// its state and is meant for a single Execute call; it is not safe for
// concurrent use.
type Interpreter struct {
	// Stack is the operand stack, top at the end.
	Stack []Object

	marks  []int
	vars   map[Name]Object
	gstack []*GraphicsState
	result []Instruction

	scanner *scanner
}

func NewInterpreter() *Interpreter {
	intp := &Interpreter{
		vars:   make(map[Name]Object, len(systemVars)),
		gstack: []*GraphicsState{newGraphicsState()},
	}
	maps.Copy(intp.vars, systemVars)
	return intp
}

// Operators returns the sorted names currently bound in the variable
// dictionary, built-in and user-defined alike.
func (intp *Interpreter) Operators() []string {
	names := maps.Keys(intp.vars)
	ss := make([]string, len(names))
	for i, name := range names {
		ss[i] = string(name)
	}
	sort.Strings(ss)
	return ss
}

func (intp *Interpreter) ExecuteString(code string) ([]Instruction, error) {
	return intp.Execute(strings.NewReader(code))
}

// Execute interprets the stream and returns the emitted instruction
// sequence, terminated by a single END instruction.  The first error
// aborts the run and no instructions are returned.
func (intp *Interpreter) Execute(r io.Reader) ([]Instruction, error) {
	s := newScanner(r)
	intp.scanner = s
	for {
		tok, err := s.readToken()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		err = intp.accept(tok, s)
		if err != nil {
			return nil, err
		}
	}
	intp.result = append(intp.result, Instruction{Kind: KindEnd})
	return intp.result, nil
}

// tokenSource supplies lexemes to the dispatcher: the scanner while
// reading the input stream, a replaySource while a procedure runs.
type tokenSource interface {
	readToken() (string, error)
}

// replaySource feeds the captured body of a procedure back through the
// dispatcher.
type replaySource struct {
	body Procedure
	pos  int
}

func (r *replaySource) readToken() (string, error) {
	if r.pos >= len(r.body) {
		return "", io.EOF
	}
	tok := r.body[r.pos]
	r.pos++
	return tok, nil
}

// accept processes a single lexeme, classified by its first character.
// src supplies the following lexemes during procedure capture.
func (intp *Interpreter) accept(tok string, src tokenSource) error {
	c := tok[0]
	switch {
	case c == '/':
		intp.push(Name(tok[1:]))
		return nil
	case c == '{':
		return intp.capture(src)
	case unicode.IsLetter(rune(c)):
		val, ok := intp.vars[Name(tok)]
		if !ok {
			return intp.e(UndefinedNameError, "undefined name %q", tok)
		}
		return intp.invoke(val)
	case c == '.' || c == '-' || c >= '0' && c <= '9':
		x, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return intp.e(NumberFormatError, "malformed number %q", tok)
		}
		intp.push(Real(x))
		return nil
	case c == '[':
		intp.marks = append(intp.marks, len(intp.Stack))
		return nil
	case c == ']':
		return intp.closeArray()
	default:
		return intp.e(UnknownTokenError, "unknown token %q", tok)
	}
}

// capture collects the raw lexemes of a procedure body, tracking brace
// depth.  The body is not interpreted here; it is replayed when the
// procedure is invoked.
func (intp *Interpreter) capture(src tokenSource) error {
	var body []string
	depth := 1
	for {
		tok, err := src.readToken()
		if err == io.EOF {
			return intp.e(LexError, "unterminated procedure")
		} else if err != nil {
			return err
		}
		switch tok {
		case "{":
			depth++
		case "}":
			depth--
			if depth == 0 {
				intp.push(Procedure(body))
				return nil
			}
		}
		body = append(body, tok)
	}
}

// invoke runs a value bound in the variable dictionary.
func (intp *Interpreter) invoke(val Object) error {
	switch val := val.(type) {
	case builtin:
		return val(intp)
	case Procedure:
		src := &replaySource{body: val}
		for {
			tok, err := src.readToken()
			if err == io.EOF {
				return nil
			}
			err = intp.accept(tok, src)
			if err != nil {
				return err
			}
		}
	default:
		return intp.e(TypeMismatchError, "cannot execute %s", typeName(val))
	}
}

// closeArray pops every value pushed since the matching '[' and pushes
// them back as a single Array.
func (intp *Interpreter) closeArray() error {
	if len(intp.marks) == 0 {
		return intp.e(UnmatchedBracketError, "']' without matching '['")
	}
	d := intp.marks[len(intp.marks)-1]
	intp.marks = intp.marks[:len(intp.marks)-1]
	if d > len(intp.Stack) {
		return intp.e(StackUnderflowError, "']': operand stack below its mark")
	}
	a := make(Array, len(intp.Stack)-d)
	copy(a, intp.Stack[d:])
	intp.Stack = append(intp.Stack[:d], a)
	return nil
}

func (intp *Interpreter) push(o Object) {
	intp.Stack = append(intp.Stack, o)
}

func (intp *Interpreter) pop(op string) (Object, error) {
	if len(intp.Stack) == 0 {
		return nil, intp.e(StackUnderflowError, "%s: operand stack is empty", op)
	}
	o := intp.Stack[len(intp.Stack)-1]
	intp.Stack = intp.Stack[:len(intp.Stack)-1]
	return o, nil
}

func (intp *Interpreter) popNum(op string) (float64, error) {
	o, err := intp.pop(op)
	if err != nil {
		return 0, err
	}
	x, ok := o.(Real)
	if !ok {
		return 0, intp.e(TypeMismatchError, "%s: expected number, got %s", op, typeName(o))
	}
	return float64(x), nil
}

func (intp *Interpreter) popName(op string) (Name, error) {
	o, err := intp.pop(op)
	if err != nil {
		return "", err
	}
	name, ok := o.(Name)
	if !ok {
		return "", intp.e(TypeMismatchError, "%s: expected name, got %s", op, typeName(o))
	}
	return name, nil
}

func (intp *Interpreter) popBool(op string) (bool, error) {
	o, err := intp.pop(op)
	if err != nil {
		return false, err
	}
	b, ok := o.(Boolean)
	if !ok {
		return false, intp.e(TypeMismatchError, "%s: expected boolean, got %s", op, typeName(o))
	}
	return bool(b), nil
}

// popCode pops an invocable value, either a captured procedure or a
// built-in operator.
func (intp *Interpreter) popCode(op string) (Object, error) {
	o, err := intp.pop(op)
	if err != nil {
		return nil, err
	}
	switch o.(type) {
	case Procedure, builtin:
		return o, nil
	default:
		return nil, intp.e(TypeMismatchError, "%s: expected procedure, got %s", op, typeName(o))
	}
}
