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

import "io"

// scanner splits the input into raw lexemes.  Runs of whitespace are
// delimiters, '%' starts a comment extending to the end of the line, the
// characters '{', '}', '[' and ']' always form their own lexeme, and '/'
// always starts a new lexeme.  The scanner makes a single forward pass;
// the end of the stream is reported as io.EOF.
type scanner struct {
	line int // 0-based
	col  int // 0-based

	r         io.Reader
	buf       []byte
	pos, used int
	peek      []byte
	crSeen    bool

	// err is the first error returned by r.Read().  Once set, all
	// subsequent calls to refill() return it.
	err error
}

func newScanner(r io.Reader) *scanner {
	return &scanner{
		r:   r,
		buf: make([]byte, 512),
	}
}

// readToken returns the next lexeme.  It implements tokenSource.
func (s *scanner) readToken() (string, error) {
	err := s.skipWhiteSpace()
	if err != nil {
		return "", err
	}
	b, err := s.peekByte()
	if err != nil {
		return "", err
	}

	switch b {
	case '{', '}', '[', ']':
		s.skipByte()
		return string(b), nil
	case '/':
		s.skipByte()
		tok, err := s.readRun([]byte{'/'})
		if err != nil {
			return "", err
		}
		return string(tok), nil
	default:
		s.skipByte()
		tok, err := s.readRun([]byte{b})
		if err != nil {
			return "", err
		}
		return string(tok), nil
	}
}

// readRun consumes bytes up to the next delimiter and appends them to tok.
func (s *scanner) readRun(tok []byte) ([]byte, error) {
	for {
		b, err := s.peekByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if isDelimiter(b) {
			break
		}
		s.skipByte()
		tok = append(tok, b)
	}
	return tok, nil
}

// readLine consumes the rest of the current line and returns it without
// its line ending.  Used to skip uninterpreted font prologs.
func (s *scanner) readLine() (string, error) {
	var line []byte
	for {
		b, err := s.next()
		if err == io.EOF {
			if len(line) > 0 {
				return string(line), nil
			}
			return "", io.EOF
		} else if err != nil {
			return "", err
		}
		if b == 10 { // LF
			break
		} else if b == 13 { // CR or CR+LF
			s.skipOptionalByte(10)
			break
		}
		line = append(line, b)
	}
	return string(line), nil
}

// skipWhiteSpace skips all input, including comments, until a
// non-whitespace character is found.
func (s *scanner) skipWhiteSpace() error {
	for {
		b, err := s.peekByte()
		if err != nil {
			return err
		}
		if b <= 32 {
			s.skipByte()
		} else if b == '%' {
			err := s.skipToEOL()
			if err != nil {
				return err
			}
		} else {
			return nil
		}
	}
}

func (s *scanner) skipToEOL() error {
	for {
		b, err := s.next()
		if err != nil {
			return err
		} else if b == 10 { // LF
			return nil
		} else if b == 13 { // CR or CR+LF
			s.skipOptionalByte(10)
			return nil
		}
	}
}

// skipByte skips a single byte of input which has already been peeked.
func (s *scanner) skipByte() {
	s.next()
}

func (s *scanner) skipOptionalByte(b byte) {
	next, err := s.peekByte()
	if err == nil && next == b {
		s.next()
	}
}

func (s *scanner) peekByte() (byte, error) {
	for len(s.peek) == 0 {
		b, err := s.readByte()
		if err != nil {
			return 0, err
		}
		s.peek = append(s.peek, b)
	}
	return s.peek[0], nil
}

func (s *scanner) next() (byte, error) {
	var b byte

	if len(s.peek) > 0 {
		b = s.peek[0]
		s.peek = s.peek[:0]
	} else {
		var err error
		b, err = s.readByte()
		if err != nil {
			return 0, err
		}
	}

	if s.crSeen && b == 10 {
		// ignore LF after CR
	} else if b == 10 || b == 13 {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	s.crSeen = (b == 13)

	return b, nil
}

func (s *scanner) readByte() (byte, error) {
	for s.pos >= s.used {
		err := s.refill()
		if err != nil {
			return 0, err
		}
	}

	b := s.buf[s.pos]
	s.pos++

	return b, nil
}

func (s *scanner) refill() error {
	if s.err != nil {
		return s.err
	}
	s.used = copy(s.buf, s.buf[s.pos:s.used])
	s.pos = 0

	n, err := s.r.Read(s.buf[s.used:])
	s.used += n
	if err != nil {
		s.err = err
	}
	if n > 0 {
		err = nil
	}
	return err
}

func isDelimiter(b byte) bool {
	if b <= 32 {
		return true
	}
	switch b {
	case '{', '}', '[', ']', '/', '%':
		return true
	default:
		return false
	}
}
