package msh

import (
	"bufio"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// Version is the MSHID format version written to every document
const Version = 3

const defaultComment = "created by gomsh"

// Encoder writes MSH documents to an output stream
type Encoder struct {
	w         *bufio.Writer
	buf       []byte
	err       error
	comment   string
	certified bool
}

type EncoderOption func(e *Encoder)

// WithComment sets the text of the leading "# ..." banner line
func WithComment(comment string) EncoderOption {
	return func(e *Encoder) { e.comment = comment }
}

// Certified skips the Certify pass, for callers that already ran it
func Certified() EncoderOption {
	return func(e *Encoder) { e.certified = true }
}

func NewEncoder(w io.Writer, opts ...EncoderOption) *Encoder {
	e := &Encoder{
		w:       bufio.NewWriter(w),
		buf:     make([]byte, 0, 256),
		comment: defaultComment,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes one complete document for m and flushes the stream. Nothing
// is written when m fails Certify.
func (e *Encoder) Encode(m *Mesh) error {
	if !e.certified {
		if err := Certify(m); err != nil {
			return err
		}
	} else if m == nil {
		return fmt.Errorf("%w: nil mesh", ErrInvalidArgument)
	}
	e.err = nil
	e.buf = append(append(e.buf[:0], "# "...), e.comment...)
	e.line()
	e.buf = append(e.buf[:0], "MSHID="...)
	e.buf = AppendInt(e.buf, Version)
	e.buf = append(append(e.buf, ';'), m.Kind.String()...)
	e.line()

	for _, s := range sectionsFor(m.Kind) {
		if e.err != nil {
			break
		}
		if s.present(m) {
			s.write(e, m)
		}
	}
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

// Encode writes m to w with the default options
func Encode(w io.Writer, m *Mesh, opts ...EncoderOption) error {
	return NewEncoder(w, opts...).Encode(m)
}

func sectionsFor(kind Kind) []section {
	if kind.IsGrid() {
		return gridSections
	}
	return meshSections
}

// line terminates e.buf with a newline and writes it
func (e *Encoder) line() {
	if e.err != nil {
		return
	}
	e.buf = append(e.buf, '\n')
	_, e.err = e.w.Write(e.buf)
}

// header writes NAME=c0[;c1...]
func (e *Encoder) header(name string, counts ...int) {
	e.buf = append(append(e.buf[:0], name...), '=')
	for i, c := range counts {
		if i != 0 {
			e.buf = append(e.buf, ';')
		}
		e.buf = AppendInt(e.buf, c)
	}
	e.line()
}

func (e *Encoder) intRow(row []int) {
	e.buf = e.buf[:0]
	for j, v := range row {
		if j != 0 {
			e.buf = append(e.buf, ';')
		}
		e.buf = AppendInt(e.buf, v)
	}
	e.line()
}

// realTable writes NAME=rows;cols followed by one ';' separated row per line
func (e *Encoder) realTable(name string, d *mat.Dense) {
	nr, nc := d.Dims()
	e.header(name, nr, nc)
	for i := 0; i < nr; i++ {
		e.buf = e.buf[:0]
		for j := 0; j < nc; j++ {
			if j != 0 {
				e.buf = append(e.buf, ';')
			}
			e.buf = AppendReal(e.buf, d.At(i, j))
		}
		e.line()
	}
}
