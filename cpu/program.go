package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Link is a statement byte to be filled with the address of a label.
type Link struct {
	Index int
	Label string
}

// Statement represents a line of assembled code with its source location and generated bytes.
type Statement struct {
	LineNo int
	Addr   int
	Words  []string
	Bytes  []uint8
	Links  []Link
}

// Program is an assembled listing.
type Program struct {
	Statements []Statement
}

type Debug struct {
	*Statement
	Index int
}

// Debug finds the statement which generated the byte at an address.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, st := range prog.Statements {
		if addr >= st.Addr && addr < st.Addr+len(st.Bytes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     addr - st.Addr,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bins []byte) {
	for addr, value := range prog.Bytes() {
		for len(bins) < addr {
			bins = append(bins, 0)
		}
		bins = append(bins, value)
	}

	return
}

// Bytes iterates over each address and byte of the program.
func (prog *Program) Bytes() iter.Seq2[int, uint8] {
	return func(yield func(addr int, value uint8) bool) {
		for _, st := range prog.Statements {
			for n, value := range st.Bytes {
				if !yield(st.Addr+n, value) {
					return
				}
			}
		}
	}
}

// Listing writes the program as an .ls8 image: one binary byte per line,
// with the source of each statement as a comment on its first byte.
func (prog *Program) Listing(w io.Writer) (err error) {
	for _, st := range prog.Statements {
		for n, value := range st.Bytes {
			line := fmt.Sprintf("%08b", value)
			if n == 0 {
				line += fmt.Sprintf(" # %02x: %v", st.Addr, strings.Join(st.Words, " "))
			}
			_, err = fmt.Fprintln(w, line)
			if err != nil {
				return
			}
		}
	}

	return
}
