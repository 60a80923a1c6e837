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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

func move(x, y float64) Instruction {
	return Instruction{Kind: KindMove, Pts: []vec.Vec2{{X: x, Y: y}}}
}

func line(x, y float64) Instruction {
	return Instruction{Kind: KindLine, Pts: []vec.Vec2{{X: x, Y: y}}}
}

var end = Instruction{Kind: KindEnd}

// runProg executes code and returns the emitted instruction sequence.
func runProg(t *testing.T, code string) []Instruction {
	t.Helper()
	prog, err := NewInterpreter().ExecuteString(code)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestEmptyInput(t *testing.T) {
	if d := cmp.Diff([]Instruction{end}, runProg(t, " % nothing here\n")); d != "" {
		t.Error(d)
	}
}

func TestMoveStroke(t *testing.T) {
	exp := []Instruction{move(10, 20), end}
	if d := cmp.Diff(exp, runProg(t, "newpath 10 20 moveto stroke")); d != "" {
		t.Error(d)
	}
}

func TestSquare(t *testing.T) {
	prog := runProg(t, "newpath 0 0 moveto 10 0 lineto 10 10 lineto closepath stroke")
	exp := []Instruction{move(0, 0), line(10, 0), line(10, 10), move(0, 0), end}
	if d := cmp.Diff(exp, prog); d != "" {
		t.Error(d)
	}
}

func TestCurveto(t *testing.T) {
	prog := runProg(t, "newpath 0 0 moveto 1 2 3 4 5 6 curveto stroke")
	exp := []Instruction{
		move(0, 0),
		{Kind: KindCubic, Pts: []vec.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}},
		end,
	}
	if d := cmp.Diff(exp, prog); d != "" {
		t.Error(d)
	}
}

func TestFillFlushes(t *testing.T) {
	exp := []Instruction{move(1, 2), line(3, 4), end}
	if d := cmp.Diff(exp, runProg(t, "1 2 moveto 3 4 lineto fill")); d != "" {
		t.Error(d)
	}
}

func TestEofillDiscards(t *testing.T) {
	if d := cmp.Diff([]Instruction{end}, runProg(t, "0 0 moveto eofill stroke")); d != "" {
		t.Error(d)
	}
}

func TestClipKeepsPath(t *testing.T) {
	exp := []Instruction{move(0, 0), end}
	if d := cmp.Diff(exp, runProg(t, "0 0 moveto clip stroke")); d != "" {
		t.Error(d)
	}
}

func TestNewpathClears(t *testing.T) {
	exp := []Instruction{move(1, 1), end}
	if d := cmp.Diff(exp, runProg(t, "0 0 moveto newpath 1 1 moveto stroke")); d != "" {
		t.Error(d)
	}
}

func TestClosepathEmptyPath(t *testing.T) {
	if d := cmp.Diff([]Instruction{end}, runProg(t, "closepath stroke")); d != "" {
		t.Error(d)
	}
}

func TestStrokeOrderIsEmissionOrder(t *testing.T) {
	prog := runProg(t, "0 0 moveto stroke 1 1 moveto stroke")
	exp := []Instruction{move(0, 0), move(1, 1), end}
	if d := cmp.Diff(exp, prog); d != "" {
		t.Error(d)
	}
}

func TestConcat(t *testing.T) {
	prog := runProg(t, "[ 2 0 0 2 10 5 ] concat 1 1 moveto stroke")
	exp := []Instruction{move(12, 7), end}
	if d := cmp.Diff(exp, prog); d != "" {
		t.Error(d)
	}
}

func TestMatrixIdentity(t *testing.T) {
	prog := runProg(t, "matrix concat 5 6 moveto stroke")
	exp := []Instruction{move(5, 6), end}
	if d := cmp.Diff(exp, prog); d != "" {
		t.Error(d)
	}
}

func TestConcatComposition(t *testing.T) {
	// Two concats must match applying the composed matrix; the later
	// concat applies to the point first.
	prog := runProg(t, "[ 2 0 0 3 5 7 ] concat [ 0 1 -1 0 2 2 ] concat 3 4 moveto stroke")
	got := prog[0].Pts[0]

	m1 := matrix.Matrix{2, 0, 0, 3, 5, 7}
	m2 := matrix.Matrix{0, 1, -1, 0, 2, 2}
	wantX, wantY := m2.Mul(m1).Apply(3, 4)
	if math.Abs(got.X-wantX) > 1e-9 || math.Abs(got.Y-wantY) > 1e-9 {
		t.Errorf("got (%g, %g), want (%g, %g)", got.X, got.Y, wantX, wantY)
	}
	// anchor against hand-computed device coordinates
	if math.Abs(got.X-1) > 1e-9 || math.Abs(got.Y-22) > 1e-9 {
		t.Errorf("got (%g, %g), want (1, 22)", got.X, got.Y)
	}
}

func TestTransformAtRecordTime(t *testing.T) {
	// CTM changes after a point is recorded must not move it.
	prog := runProg(t, "1 1 moveto [ 2 0 0 2 0 0 ] concat stroke")
	exp := []Instruction{move(1, 1), end}
	if d := cmp.Diff(exp, prog); d != "" {
		t.Error(d)
	}
}

func TestGsaveGrestoreRestoresState(t *testing.T) {
	setup := "[ 2 0 0 2 0 0 ] concat 3 setlinecap 2 setlinejoin 4.5 setlinewidth 9 setmiterlimit"

	a := NewInterpreter()
	if _, err := a.ExecuteString(setup); err != nil {
		t.Fatal(err)
	}
	b := NewInterpreter()
	if _, err := b.ExecuteString(setup +
		" gsave [ 3 0 0 3 1 1 ] concat 1 setlinecap 0 setlinejoin 5 5 moveto grestore"); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(a.graphics(), b.graphics()); d != "" {
		t.Error(d)
	}
}

func TestGsaveDiscardsInnerPath(t *testing.T) {
	prog := runProg(t, "[ 2 0 0 2 0 0 ] concat gsave 5 5 moveto grestore 1 1 moveto stroke")
	exp := []Instruction{move(2, 2), end}
	if d := cmp.Diff(exp, prog); d != "" {
		t.Error(d)
	}
}

func TestStyleSetters(t *testing.T) {
	intp := run(t, "2 setlinecap 1 setlinejoin 3.5 setlinewidth 4 setmiterlimit")
	g := intp.graphics()
	if g.LineCap != 2 || g.LineJoin != 1 || g.LineWidth != 3.5 || g.MiterLimit != 4 {
		t.Errorf("unexpected line style: %+v", g)
	}
}

func TestColorOperatorsDiscard(t *testing.T) {
	intp := run(t, "1 0 0 setrgbcolor 0.5 setgray")
	if len(intp.Stack) != 0 {
		t.Errorf("expected empty stack, got %d values", len(intp.Stack))
	}
}

func TestFindfontSkipsProlog(t *testing.T) {
	in := "/Helvetica findfont\n" +
		"glyph data { [ ( not tokenized\n" +
		"more data\n" +
		"%%EndProlog\n" +
		"10 10 moveto stroke"
	exp := []Instruction{move(10, 10), end}
	if d := cmp.Diff(exp, runProg(t, in)); d != "" {
		t.Error(d)
	}
}

func TestFindfontMissingEndProlog(t *testing.T) {
	if kind := mustFail(t, "/Helvetica findfont\nno end in sight"); kind != LexError {
		t.Errorf("expected LexError, got %v", kind)
	}
}

func TestLengthIsNoop(t *testing.T) {
	intp := run(t, "[ 1 2 ] length")
	exp := []Object{Array{Real(1), Real(2)}}
	if d := cmp.Diff(exp, intp.Stack); d != "" {
		t.Error(d)
	}
}

func TestBindIsNoop(t *testing.T) {
	intp := run(t, "{ dup } bind")
	if d := cmp.Diff([]Object{Procedure{"dup"}}, intp.Stack); d != "" {
		t.Error(d)
	}
}

func TestRedefiningBuiltin(t *testing.T) {
	// def silently shadows builtins; the new binding wins.
	prog := runProg(t, "/moveto { pop pop } def 1 2 moveto stroke")
	if d := cmp.Diff([]Instruction{end}, prog); d != "" {
		t.Error(d)
	}
}
