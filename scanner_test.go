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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func scanAll(t *testing.T, in string) []string {
	t.Helper()
	s := newScanner(strings.NewReader(in))
	var toks []string
	for {
		tok, err := s.readToken()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestReadToken(t *testing.T) {
	in := `
	% a comment
	newpath
	10 20[30 40]{moveto}stroke
	/a/b 1.5e2
	-12 .5 % trailing comment
	`
	exp := []string{
		"newpath",
		"10", "20", "[", "30", "40", "]", "{", "moveto", "}", "stroke",
		"/a", "/b", "1.5e2",
		"-12", ".5",
	}
	if d := cmp.Diff(exp, scanAll(t, in)); d != "" {
		t.Errorf("unexpected tokens: %s", d)
	}
}

func TestBracketIsolation(t *testing.T) {
	exp := []string{"a", "[", "b", "]", "c", "{", "d", "}"}
	if d := cmp.Diff(exp, scanAll(t, "a[b]c{d}")); d != "" {
		t.Errorf("unexpected tokens: %s", d)
	}
}

func TestCommentAtEOF(t *testing.T) {
	exp := []string{"abc"}
	if d := cmp.Diff(exp, scanAll(t, "abc % no final newline")); d != "" {
		t.Errorf("unexpected tokens: %s", d)
	}
}

func TestSlashBindsToIdentifier(t *testing.T) {
	exp := []string{"/x", "5", "def", "/y", "{", "x", "}", "def"}
	if d := cmp.Diff(exp, scanAll(t, "/x 5 def/y{x}def")); d != "" {
		t.Errorf("unexpected tokens: %s", d)
	}
}

func TestReadLine(t *testing.T) {
	s := newScanner(strings.NewReader("x\r\nsecond line\nthird"))

	tok, err := s.readToken()
	if err != nil {
		t.Fatal(err)
	}
	if tok != "x" {
		t.Fatalf("expected %q, got %q", "x", tok)
	}

	exp := []string{"", "second line", "third"}
	for _, want := range exp {
		line, err := s.readLine()
		if err != nil {
			t.Fatal(err)
		}
		if line != want {
			t.Errorf("expected %q, got %q", want, line)
		}
	}
	if _, err := s.readLine(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestLineCol(t *testing.T) {
	s := newScanner(strings.NewReader("ab\ncd\r\nef"))
	for {
		_, err := s.readToken()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
	}
	if s.line != 2 {
		t.Errorf("expected line 2, got %d", s.line)
	}
	if s.col != 2 {
		t.Errorf("expected col 2, got %d", s.col)
	}
}
