// Package loader reads LS-8 program images.
//
// An image is plain text, one byte per line, written as a base-2 literal.
// A '#' starts a comment running to the end of the line. Lines with no
// binary literal are skipped.
package loader

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	ErrByteRange = errors.New(f("value out of byte range"))
	ErrImageSize = errors.New(f("image larger than memory"))
)

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// Parse reads an image, returning the bytes to be loaded at address 0.
func Parse(input io.Reader) (image []byte, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		line, _, _ := strings.Cut(text, "#")
		line = strings.TrimSpace(line)
		if len(line) > 2 && (line[:2] == "0b" || line[:2] == "0B") {
			line = line[2:]
		}

		value, perr := strconv.ParseUint(line, 2, 64)
		if perr != nil {
			var nerr *strconv.NumError
			if errors.As(perr, &nerr) && nerr.Err == strconv.ErrRange {
				err = ErrSyntax{LineNo: lineno, Line: text, Err: ErrByteRange}
				return
			}
			// Not a binary literal.
			continue
		}

		if value > 0xff {
			err = ErrSyntax{LineNo: lineno, Line: text, Err: ErrByteRange}
			return
		}

		if len(image) == cpu.MEMORY_SIZE {
			err = ErrSyntax{LineNo: lineno, Line: text, Err: ErrImageSize}
			return
		}

		image = append(image, uint8(value))
	}

	err = scanner.Err()

	return
}

// Open reads an image from a file.
func Open(path string) (image []byte, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	image, err = Parse(inf)

	return
}
