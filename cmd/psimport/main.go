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

// Psimport reads a PostScript-subset drawing description from a file or
// standard input and writes the resulting instruction sequence, one
// instruction per line, in device coordinates.
package main

import (
	"fmt"
	"io"
	"os"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/wallplot/psimport"
)

func main() {
	var (
		outPath string
		list    bool
		quiet   bool
	)

	opts, optind, err := getopt.Getopts(os.Args, "lo:q")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'l':
			list = true
		case 'o':
			outPath = opt.Value
		case 'q':
			quiet = true
		}
	}
	args := os.Args[optind:]

	if list {
		for _, name := range psimport.NewInterpreter().Operators() {
			fmt.Println(name)
		}
		return
	}

	var in io.Reader = os.Stdin
	switch len(args) {
	case 0:
		// read from stdin
	case 1:
		f, err := os.Open(args[0])
		if err != nil {
			eprintln(err)
		}
		defer f.Close()
		in = f
	default:
		usage()
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			eprintln(err)
		}
		defer f.Close()
		out = f
	}

	prog, err := psimport.NewInterpreter().Execute(in)
	if err != nil {
		eprintln(err)
	}
	for _, inst := range prog {
		fmt.Fprintln(out, inst)
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "%d instructions\n", len(prog))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-lq] [-o output] [file]\n", os.Args[0])
	os.Exit(1)
}

func eprintln(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", os.Args[0], err)
	os.Exit(1)
}
