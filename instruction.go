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

	"seehuhn.de/go/geom/vec"
)

// InstructionKind identifies a drawing primitive.
type InstructionKind uint8

const (
	KindMove InstructionKind = iota + 1
	KindLine
	KindCubic
	KindEnd
)

func (k InstructionKind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindLine:
		return "line"
	case KindCubic:
		return "cubic"
	case KindEnd:
		return "end"
	default:
		return fmt.Sprintf("InstructionKind(%d)", uint8(k))
	}
}

// Instruction is one drawing primitive in device coordinates.  MOVE and
// LINE carry one point, CUBIC three (two control points and the
// endpoint), END none.  The instruction sequence returned by a run is the
// importer's only output.
type Instruction struct {
	Kind InstructionKind
	Pts  []vec.Vec2
}

func (inst Instruction) String() string {
	ss := make([]string, 0, 1+len(inst.Pts))
	ss = append(ss, inst.Kind.String())
	for _, p := range inst.Pts {
		ss = append(ss, fmt.Sprintf("%g %g", p.X, p.Y))
	}
	return strings.Join(ss, " ")
}
