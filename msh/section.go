package msh

import (
	"gonum.org/v1/gonum/mat"
)

// section is one header-plus-rows block of a document
type section interface {
	present(m *Mesh) bool
	write(e *Encoder, m *Mesh)
}

// meshSections is the mesh path order, grid path order is gridSections
var meshSections = buildMeshSections()

var gridSections = []section{
	axisCountSection{},
	radiiSection{},
	axisSection{axis: 1},
	axisSection{axis: 2},
	axisSection{axis: 3},
	gridValueSection{},
}

func buildMeshSections() (s []section) {
	s = []section{
		ndimsSection{},
		radiiSection{},
		pointSection{},
		fieldSection{name: "POWER", table: func(m *Mesh) *mat.Dense { return m.Power }},
		fieldSection{name: "VALUE", table: func(m *Mesh) *mat.Dense { return m.Value }},
	}
	for _, t := range Topologies {
		s = append(s, cellSection{topo: t})
	}
	return append(s, boundSection{})
}

type ndimsSection struct{}

func (ndimsSection) present(m *Mesh) bool { return m.HasPoint() }
func (ndimsSection) write(e *Encoder, m *Mesh) {
	e.header("NDIMS", m.NumDims())
}

type radiiSection struct{}

func (radiiSection) present(m *Mesh) bool { return m.Kind.IsEllipsoid() && m.HasRadii() }
func (radiiSection) write(e *Encoder, m *Mesh) {
	e.buf = append(e.buf[:0], "RADII="...)
	for i, r := range m.Radii {
		if i != 0 {
			e.buf = append(e.buf, ';')
		}
		e.buf = append(e.buf, FormatShort(r)...)
	}
	e.line()
}

type pointSection struct{}

func (pointSection) present(m *Mesh) bool { return m.HasPoint() }
func (pointSection) write(e *Encoder, m *Mesh) {
	var (
		coord  = m.Point.Coord
		nr, nc = coord.Dims()
	)
	e.header("POINT", nr)
	for i := 0; i < nr; i++ {
		e.buf = e.buf[:0]
		for j := 0; j < nc; j++ {
			e.buf = append(AppendReal(e.buf, coord.At(i, j)), ';')
		}
		e.buf = AppendInt(e.buf, m.Point.IDtag[i])
		e.line()
	}
}

// fieldSection writes an index free real table, one row per point
type fieldSection struct {
	name  string
	table func(m *Mesh) *mat.Dense
}

func (s fieldSection) present(m *Mesh) bool { return denseRows(s.table(m)) > 0 }
func (s fieldSection) write(e *Encoder, m *Mesh) {
	e.realTable(s.name, s.table(m))
}

// cellSection is shared by every element topology, W comes from topo
type cellSection struct {
	topo Topology
}

func (s cellSection) present(m *Mesh) bool { return m.HasCell(s.topo) }
func (s cellSection) write(e *Encoder, m *Mesh) {
	c := m.Cell(s.topo)
	nr, _ := c.Index.Dims()
	e.header(s.topo.Name(), nr)
	for i := 0; i < nr; i++ {
		e.buf = e.buf[:0]
		for _, idx := range c.Index.Row(i) {
			e.buf = append(AppendInt(e.buf, idx), ';')
		}
		e.buf = AppendInt(e.buf, c.IDtag[i])
		e.line()
	}
}

type boundSection struct{}

func (boundSection) present(m *Mesh) bool { return m.HasBound() }
func (boundSection) write(e *Encoder, m *Mesh) {
	nr, _ := m.Bound.Dims()
	e.header("BOUND", nr)
	for i := 0; i < nr; i++ {
		e.intRow(m.Bound.Row(i))
	}
}

type axisCountSection struct{}

func (axisCountSection) present(m *Mesh) bool { return len(m.Axes()) != 0 }
func (axisCountSection) write(e *Encoder, m *Mesh) {
	e.header("NDIMS", len(m.Axes()))
}

// axisSection writes COORD=<axis>;<n> and one real per line
type axisSection struct {
	axis int
}

func (s axisSection) data(m *Mesh) []float64 {
	switch s.axis {
	case 1:
		return m.XGrid
	case 2:
		return m.YGrid
	default:
		return m.ZGrid
	}
}

func (s axisSection) present(m *Mesh) bool { return len(s.data(m)) != 0 }
func (s axisSection) write(e *Encoder, m *Mesh) {
	ax := s.data(m)
	e.header("COORD", s.axis, len(ax))
	for _, v := range ax {
		e.buf = AppendReal(e.buf[:0], v)
		e.line()
	}
}

type gridValueSection struct{}

func (gridValueSection) present(m *Mesh) bool { return len(m.Axes()) != 0 && m.HasValue() }
func (gridValueSection) write(e *Encoder, m *Mesh) {
	e.realTable("VALUE", m.Value)
}
