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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// systemVars is the base dictionary of built-in operators.  Every
// interpreter starts from a copy; user definitions overlay the copy and
// never touch this map.
var systemVars = map[Name]Object{
	// fonts and colors
	"setrgbcolor": builtin(bSetrgbcolor),
	"setgray":     builtin(bSetgray),
	"findfont":    builtin(bFindfont),

	// path construction
	"newpath":   builtin(bNewpath),
	"moveto":    builtin(bMoveto),
	"lineto":    builtin(bLineto),
	"curveto":   builtin(bCurveto),
	"closepath": builtin(bClosepath),
	"stroke":    builtin(bStroke),
	"fill":      builtin(bStroke), // stroked and filled geometry are not distinguished here
	"eofill":    builtin(bEofill),
	"clip":      builtin(bClip),

	// computations
	"length": builtin(bLength),
	"add":    builtin(bAdd),
	"sub":    builtin(bSub),
	"mul":    builtin(bMul),
	"div":    builtin(bDiv),

	// stack manipulation
	"dup":  builtin(bDup),
	"pop":  builtin(bPop),
	"exch": builtin(bExch),

	// transformation matrices
	"matrix": builtin(bMatrix),
	"concat": builtin(bConcat),

	// graphics state
	"gsave":         builtin(bGsave),
	"grestore":      builtin(bGrestore),
	"setlinecap":    builtin(bSetlinecap),
	"setlinejoin":   builtin(bSetlinejoin),
	"setlinewidth":  builtin(bSetlinewidth),
	"setmiterlimit": builtin(bSetmiterlimit),

	// variables
	"bind": builtin(bBind),
	"load": builtin(bLoad),
	"def":  builtin(bDef),

	// flow control
	"if":    builtin(bIf),
	"true":  builtin(bTrue),
	"false": builtin(bFalse),
}

// bSetrgbcolor discards its three components: color is not carried in the
// emitted instructions.
func bSetrgbcolor(intp *Interpreter) error {
	for i := 0; i < 3; i++ {
		_, err := intp.popNum("setrgbcolor")
		if err != nil {
			return err
		}
	}
	return nil
}

func bSetgray(intp *Interpreter) error {
	_, err := intp.popNum("setgray")
	return err
}

// bFindfont discards the font name and skips the remainder of the font
// prolog.  Glyph definitions are not interpreted.
func bFindfont(intp *Interpreter) error {
	_, err := intp.pop("findfont")
	if err != nil {
		return err
	}
	for {
		line, err := intp.scanner.readLine()
		if err == io.EOF {
			return intp.e(LexError, "findfont: missing %%%%EndProlog")
		} else if err != nil {
			return err
		}
		if line == "%%EndProlog" {
			return nil
		}
	}
}

func bNewpath(intp *Interpreter) error {
	g := intp.graphics()
	g.Path = g.Path[:0]
	return nil
}

func bMoveto(intp *Interpreter) error {
	pts, err := intp.popPoints("moveto", 1)
	if err != nil {
		return err
	}
	g := intp.graphics()
	g.Path = append(g.Path, Instruction{Kind: KindMove, Pts: pts})
	return nil
}

func bLineto(intp *Interpreter) error {
	pts, err := intp.popPoints("lineto", 1)
	if err != nil {
		return err
	}
	g := intp.graphics()
	g.Path = append(g.Path, Instruction{Kind: KindLine, Pts: pts})
	return nil
}

func bCurveto(intp *Interpreter) error {
	pts, err := intp.popPoints("curveto", 3)
	if err != nil {
		return err
	}
	g := intp.graphics()
	g.Path = append(g.Path, Instruction{Kind: KindCubic, Pts: pts})
	return nil
}

// bClosepath appends a copy of the path's first instruction, closing the
// path back to its start point.  With an empty path there is nothing to
// close.
func bClosepath(intp *Interpreter) error {
	g := intp.graphics()
	if len(g.Path) == 0 {
		return nil
	}
	first := g.Path[0]
	pts := make([]vec.Vec2, len(first.Pts))
	copy(pts, first.Pts)
	g.Path = append(g.Path, Instruction{Kind: first.Kind, Pts: pts})
	return nil
}

// bStroke flushes the path buffer into the result.  Line style lives only
// in the graphics state, so fill shares this implementation.
func bStroke(intp *Interpreter) error {
	g := intp.graphics()
	intp.result = append(intp.result, g.Path...)
	g.Path = g.Path[:0]
	return nil
}

// bEofill discards the path: even-odd filling is not implemented.
func bEofill(intp *Interpreter) error {
	g := intp.graphics()
	g.Path = g.Path[:0]
	return nil
}

// bClip is a no-op and leaves the path buffer alone.
func bClip(intp *Interpreter) error {
	return nil
}

func bLength(intp *Interpreter) error {
	return nil
}

func bAdd(intp *Interpreter) error {
	b, err := intp.popNum("add")
	if err != nil {
		return err
	}
	a, err := intp.popNum("add")
	if err != nil {
		return err
	}
	intp.push(Real(a + b))
	return nil
}

func bSub(intp *Interpreter) error {
	b, err := intp.popNum("sub")
	if err != nil {
		return err
	}
	a, err := intp.popNum("sub")
	if err != nil {
		return err
	}
	intp.push(Real(a - b))
	return nil
}

func bMul(intp *Interpreter) error {
	b, err := intp.popNum("mul")
	if err != nil {
		return err
	}
	a, err := intp.popNum("mul")
	if err != nil {
		return err
	}
	intp.push(Real(a * b))
	return nil
}

func bDiv(intp *Interpreter) error {
	b, err := intp.popNum("div")
	if err != nil {
		return err
	}
	a, err := intp.popNum("div")
	if err != nil {
		return err
	}
	intp.push(Real(a / b))
	return nil
}

func bDup(intp *Interpreter) error {
	if len(intp.Stack) == 0 {
		return intp.e(StackUnderflowError, "dup: operand stack is empty")
	}
	intp.push(intp.Stack[len(intp.Stack)-1])
	return nil
}

func bPop(intp *Interpreter) error {
	_, err := intp.pop("pop")
	return err
}

func bExch(intp *Interpreter) error {
	fst, err := intp.pop("exch")
	if err != nil {
		return err
	}
	snd, err := intp.pop("exch")
	if err != nil {
		return err
	}
	intp.push(fst)
	intp.push(snd)
	return nil
}

// bMatrix pushes an identity matrix as a six-element array.
func bMatrix(intp *Interpreter) error {
	a := make(Array, 6)
	for i, x := range matrix.Identity {
		a[i] = Real(x)
	}
	intp.push(a)
	return nil
}

// bConcat composes the popped matrix with the CTM.  The popped matrix
// applies first, so nested coordinate systems compose the PostScript way.
func bConcat(intp *Interpreter) error {
	m, err := intp.popMatrix("concat")
	if err != nil {
		return err
	}
	g := intp.graphics()
	g.CTM = m.Mul(g.CTM)
	return nil
}

func bGsave(intp *Interpreter) error {
	intp.gsave()
	return nil
}

func bGrestore(intp *Interpreter) error {
	return intp.grestore()
}

func bSetlinecap(intp *Interpreter) error {
	x, err := intp.popNum("setlinecap")
	if err != nil {
		return err
	}
	intp.graphics().LineCap = int(x)
	return nil
}

func bSetlinejoin(intp *Interpreter) error {
	x, err := intp.popNum("setlinejoin")
	if err != nil {
		return err
	}
	intp.graphics().LineJoin = int(x)
	return nil
}

func bSetlinewidth(intp *Interpreter) error {
	x, err := intp.popNum("setlinewidth")
	if err != nil {
		return err
	}
	intp.graphics().LineWidth = x
	return nil
}

func bSetmiterlimit(intp *Interpreter) error {
	x, err := intp.popNum("setmiterlimit")
	if err != nil {
		return err
	}
	intp.graphics().MiterLimit = x
	return nil
}

func bBind(intp *Interpreter) error {
	return nil
}

// bLoad pushes the dictionary's binding for a name without invoking it.
func bLoad(intp *Interpreter) error {
	name, err := intp.popName("load")
	if err != nil {
		return err
	}
	val, ok := intp.vars[name]
	if !ok {
		return intp.e(UndefinedNameError, "load: undefined name %q", string(name))
	}
	intp.push(val)
	return nil
}

// bDef binds a name in the variable dictionary.  Invocable values are
// bound directly; literals are wrapped in an operator that pushes them,
// so a later mention of the name reproduces the value.
func bDef(intp *Interpreter) error {
	val, err := intp.pop("def")
	if err != nil {
		return err
	}
	name, err := intp.popName("def")
	if err != nil {
		return err
	}
	switch val.(type) {
	case Procedure, builtin:
		intp.vars[name] = val
	default:
		lit := val
		intp.vars[name] = builtin(func(intp *Interpreter) error {
			intp.push(lit)
			return nil
		})
	}
	return nil
}

func bIf(intp *Interpreter) error {
	code, err := intp.popCode("if")
	if err != nil {
		return err
	}
	cond, err := intp.popBool("if")
	if err != nil {
		return err
	}
	if cond {
		return intp.invoke(code)
	}
	return nil
}

func bTrue(intp *Interpreter) error {
	intp.push(Boolean(true))
	return nil
}

func bFalse(intp *Interpreter) error {
	intp.push(Boolean(false))
	return nil
}
