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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// GraphicsState holds the current transformation matrix, the line style
// attributes, and the path under construction.  States form a stack:
// gsave pushes a copy, grestore pops back to the previous one.
type GraphicsState struct {
	// CTM maps user space to device space.
	CTM matrix.Matrix

	LineCap    int
	LineJoin   int
	LineWidth  float64
	MiterLimit float64

	// Path is the buffer of instructions not yet flushed to the output.
	Path []Instruction
}

func newGraphicsState() *GraphicsState {
	return &GraphicsState{
		CTM:        matrix.Identity,
		LineWidth:  1,
		MiterLimit: 10,
	}
}

// clone returns a copy with an independent path buffer.
func (g *GraphicsState) clone() *GraphicsState {
	dup := *g
	dup.Path = make([]Instruction, len(g.Path))
	copy(dup.Path, g.Path)
	return &dup
}

// graphics returns the current graphics state.
func (intp *Interpreter) graphics() *GraphicsState {
	return intp.gstack[len(intp.gstack)-1]
}

func (intp *Interpreter) gsave() {
	intp.gstack = append(intp.gstack, intp.graphics().clone())
}

func (intp *Interpreter) grestore() error {
	if len(intp.gstack) <= 1 {
		return intp.e(StackUnderflowError, "grestore: no saved graphics state")
	}
	intp.gstack = intp.gstack[:len(intp.gstack)-1]
	return nil
}

// popPoints pops n points (2n numbers) from the operand stack and maps
// them through the current transformation matrix.  The transformation
// happens here, once: later changes to the CTM do not affect points
// already recorded.
func (intp *Interpreter) popPoints(op string, n int) ([]vec.Vec2, error) {
	g := intp.graphics()
	pts := make([]vec.Vec2, n)
	for i := n - 1; i >= 0; i-- {
		y, err := intp.popNum(op)
		if err != nil {
			return nil, err
		}
		x, err := intp.popNum(op)
		if err != nil {
			return nil, err
		}
		dx, dy := g.CTM.Apply(x, y)
		pts[i] = vec.Vec2{X: dx, Y: dy}
	}
	return pts, nil
}

// popMatrix pops a six-element numeric array as an affine matrix.
func (intp *Interpreter) popMatrix(op string) (matrix.Matrix, error) {
	var m matrix.Matrix
	o, err := intp.pop(op)
	if err != nil {
		return m, err
	}
	a, ok := o.(Array)
	if !ok {
		return m, intp.e(TypeMismatchError, "%s: expected matrix, got %s", op, typeName(o))
	}
	if len(a) != 6 {
		return m, intp.e(TypeMismatchError, "%s: matrix must have 6 elements, got %d", op, len(a))
	}
	for i, el := range a {
		x, ok := el.(Real)
		if !ok {
			return m, intp.e(TypeMismatchError, "%s: matrix element %d is a %s", op, i, typeName(el))
		}
		m[i] = float64(x)
	}
	return m, nil
}
