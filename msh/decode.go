package msh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Decode parses one MSH document. Sections absent from the document are
// absent (nil) in the returned mesh.
func Decode(r io.Reader) (*Mesh, error) {
	d := &decoder{scanner: bufio.NewScanner(r)}
	if err := d.decode(); err != nil {
		return nil, err
	}
	return d.m, nil
}

type decoder struct {
	scanner *bufio.Scanner
	lineNo  int
	m       *Mesh
	ndims   int
}

func (d *decoder) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, d.lineNo, fmt.Sprintf(format, args...))
}

// next returns the next line that is neither blank nor a comment
func (d *decoder) next() (line string, ok bool) {
	for d.scanner.Scan() {
		d.lineNo++
		line = strings.TrimSpace(d.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}
	return "", false
}

// row reads the next line and splits it into exactly n fields
func (d *decoder) row(n int) ([]string, error) {
	line, ok := d.next()
	if !ok {
		return nil, d.eof()
	}
	fields := strings.Split(line, ";")
	if len(fields) != n {
		return nil, d.errorf("expected %d fields, got %d in %q", n, len(fields), line)
	}
	return fields, nil
}

func (d *decoder) eof() error {
	if err := d.scanner.Err(); err != nil {
		return err
	}
	return d.errorf("unexpected EOF")
}

func (d *decoder) decode() error {
	for {
		line, ok := d.next()
		if !ok {
			break
		}
		key, rest, found := strings.Cut(line, "=")
		if !found {
			return d.errorf("expected NAME=..., got %q", line)
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		args := strings.Split(rest, ";")
		if d.m == nil && key != "MSHID" {
			return d.errorf("%s before MSHID", key)
		}
		if err := d.section(key, args); err != nil {
			return err
		}
	}
	if err := d.scanner.Err(); err != nil {
		return err
	}
	if d.m == nil {
		return fmt.Errorf("%w: no MSHID line", ErrMalformed)
	}
	return nil
}

func (d *decoder) section(key string, args []string) (err error) {
	switch key {
	case "MSHID":
		return d.readMshID(args)
	case "NDIMS":
		var n []int
		if n, err = d.counts(args, 1); err != nil {
			return
		}
		d.ndims = n[0]
	case "RADII":
		return d.readRadii(args)
	case "POINT":
		return d.readPoint(args)
	case "POWER":
		d.m.Power, err = d.readRealTable(args)
	case "VALUE":
		d.m.Value, err = d.readRealTable(args)
	case "BOUND":
		d.m.Bound, err = d.readIndexTable(args, 3)
	case "COORD":
		return d.readAxis(args)
	default:
		t, ok := TopologyByName(key)
		if !ok {
			return d.errorf("unknown section %q", key)
		}
		return d.readCell(t, args)
	}
	return
}

func (d *decoder) readMshID(args []string) error {
	if d.m != nil {
		return d.errorf("duplicate MSHID")
	}
	version, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return d.errorf("bad MSHID version %q", args[0])
	}
	if version > Version {
		return d.errorf("unsupported MSHID version %d", version)
	}
	kind := EuclideanMesh
	if len(args) > 1 {
		if kind, err = ParseKind(args[1]); err != nil {
			return d.errorf("%v", err)
		}
	}
	d.m = NewMesh(kind)
	return nil
}

func (d *decoder) ints(fields []string, n int) ([]int, error) {
	if len(fields) != n {
		return nil, d.errorf("expected %d integers, got %d", n, len(fields))
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, d.errorf("bad integer %q", f)
		}
		out[i] = v
	}
	return out, nil
}

// counts parses the header integers of a section, none may be negative
func (d *decoder) counts(fields []string, n int) ([]int, error) {
	out, err := d.ints(fields, n)
	if err != nil {
		return nil, err
	}
	for _, v := range out {
		if v < 0 {
			return nil, d.errorf("negative count %d", v)
		}
	}
	return out, nil
}

func (d *decoder) reals(dst []float64, fields []string) error {
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return d.errorf("bad real %q", f)
		}
		dst[i] = v
	}
	return nil
}

func (d *decoder) readRadii(args []string) error {
	if len(args) != 1 && len(args) != 3 {
		return d.errorf("RADII expects 1 or 3 values, got %d", len(args))
	}
	radii := make([]float64, len(args))
	if err := d.reals(radii, args); err != nil {
		return err
	}
	if len(radii) == 1 {
		radii = []float64{radii[0], radii[0], radii[0]}
	}
	d.m.Radii = radii
	return nil
}

// maxReserve bounds the storage allocated from a header count before the
// rows backing it have been read
const maxReserve = 1 << 16

// reserve is the capacity for n rows of width entries, width > 0
func reserve(n, width int) int {
	if n > maxReserve/width {
		return maxReserve
	}
	return n * width
}

func (d *decoder) readPoint(args []string) error {
	n, err := d.counts(args, 1)
	if err != nil {
		return err
	}
	npoint, ndims := n[0], d.ndims
	if npoint == 0 {
		return nil
	}
	var (
		coord []float64
		idtag = make([]int, 0, reserve(npoint, 1))
	)
	for i := 0; i < npoint; i++ {
		var fields []string
		if ndims == 0 {
			// No NDIMS line, take the width from the first row
			line, ok := d.next()
			if !ok {
				return d.eof()
			}
			fields = strings.Split(line, ";")
			ndims = len(fields) - 1
			if ndims < 1 {
				return d.errorf("POINT row %q has no coordinates", line)
			}
		} else if fields, err = d.row(ndims + 1); err != nil {
			return err
		}
		if coord == nil {
			coord = make([]float64, 0, reserve(npoint, ndims))
		}
		if coord, err = d.appendReals(coord, fields[:ndims]); err != nil {
			return err
		}
		tag, err := d.ints(fields[ndims:], 1)
		if err != nil {
			return err
		}
		idtag = append(idtag, tag[0])
	}
	d.m.Point = &Point{Coord: mat.NewDense(npoint, ndims, coord), IDtag: idtag}
	return nil
}

func (d *decoder) appendReals(dst []float64, fields []string) ([]float64, error) {
	n := len(dst)
	dst = append(dst, make([]float64, len(fields))...)
	if err := d.reals(dst[n:], fields); err != nil {
		return nil, err
	}
	return dst, nil
}

func (d *decoder) readRealTable(args []string) (*mat.Dense, error) {
	dims, err := d.counts(args, 2)
	if err != nil {
		return nil, err
	}
	nr, nc := dims[0], dims[1]
	if nr == 0 || nc == 0 {
		return nil, nil
	}
	data := make([]float64, 0, reserve(nr, nc))
	for i := 0; i < nr; i++ {
		fields, err := d.row(nc)
		if err != nil {
			return nil, err
		}
		if data, err = d.appendReals(data, fields); err != nil {
			return nil, err
		}
	}
	return mat.NewDense(nr, nc, data), nil
}

func (d *decoder) readIndexTable(args []string, nc int) (*IndexTable, error) {
	n, err := d.counts(args, 1)
	if err != nil {
		return nil, err
	}
	if n[0] == 0 {
		return nil, nil
	}
	data := make([]int, 0, reserve(n[0], nc))
	for i := 0; i < n[0]; i++ {
		fields, err := d.row(nc)
		if err != nil {
			return nil, err
		}
		row, err := d.ints(fields, nc)
		if err != nil {
			return nil, err
		}
		data = append(data, row...)
	}
	return NewIndexTable(n[0], nc, data), nil
}

func (d *decoder) readCell(t Topology, args []string) error {
	n, err := d.counts(args, 1)
	if err != nil {
		return err
	}
	if n[0] == 0 {
		return nil
	}
	var (
		nv    = t.Vertices()
		index = make([]int, 0, reserve(n[0], nv))
		idtag = make([]int, 0, reserve(n[0], 1))
	)
	for i := 0; i < n[0]; i++ {
		fields, err := d.row(nv + 1)
		if err != nil {
			return err
		}
		row, err := d.ints(fields, nv+1)
		if err != nil {
			return err
		}
		index = append(index, row[:nv]...)
		idtag = append(idtag, row[nv])
	}
	d.m.SetCell(t, NewCell(NewIndexTable(n[0], nv, index), idtag))
	return nil
}

func (d *decoder) readAxis(args []string) error {
	n, err := d.counts(args, 2)
	if err != nil {
		return err
	}
	axis, count := n[0], n[1]
	if axis < 1 || axis > 3 {
		return d.errorf("COORD axis %d must be 1, 2 or 3", axis)
	}
	var data []float64
	if count != 0 {
		data = make([]float64, 0, reserve(count, 1))
	}
	for i := 0; i < count; i++ {
		fields, err := d.row(1)
		if err != nil {
			return err
		}
		if data, err = d.appendReals(data, fields); err != nil {
			return err
		}
	}
	switch axis {
	case 1:
		d.m.XGrid = data
	case 2:
		d.m.YGrid = data
	case 3:
		d.m.ZGrid = data
	}
	return nil
}
