package msh

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// IndexTable is a dense row major table of integers. gonum only provides
// float64 storage, so index data lives here instead of in a mat.Dense.
type IndexTable struct {
	rows, cols int
	data       []int
}

func NewIndexTable(nr, nc int, dataO ...[]int) (T *IndexTable) {
	var data []int
	if len(dataO) != 0 {
		data = dataO[0]
		if len(data) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewIndexTable nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(data))
			panic(err)
		}
	} else {
		data = make([]int, nr*nc)
	}
	return &IndexTable{rows: nr, cols: nc, data: data}
}

// NewIndexTableFromRows builds a table from equal length rows
func NewIndexTableFromRows(rows [][]int) (T *IndexTable) {
	if len(rows) == 0 {
		return NewIndexTable(0, 0)
	}
	nc := len(rows[0])
	data := make([]int, 0, len(rows)*nc)
	for i, row := range rows {
		if len(row) != nc {
			panic(fmt.Errorf("ragged index rows: row %d has %d entries, want %d", i, len(row), nc))
		}
		data = append(data, row...)
	}
	return NewIndexTable(len(rows), nc, data)
}

func (t *IndexTable) Dims() (r, c int) {
	if t == nil {
		return 0, 0
	}
	return t.rows, t.cols
}

func (t *IndexTable) At(i, j int) int { return t.data[i*t.cols+j] }

func (t *IndexTable) Set(i, j, v int) { t.data[i*t.cols+j] = v }

// Row returns a view of row i, not a copy
func (t *IndexTable) Row(i int) []int { return t.data[i*t.cols : (i+1)*t.cols] }

// RawData returns the backing row major storage
func (t *IndexTable) RawData() []int { return t.data }

// Point holds the N×D coordinate table and one ID-tag per row
type Point struct {
	Coord *mat.Dense
	IDtag []int
}

// Cell holds the M×W index table of one topology and one ID-tag per row
type Cell struct {
	Index *IndexTable
	IDtag []int
}

func NewCell(index *IndexTable, idtag []int) *Cell {
	return &Cell{Index: index, IDtag: idtag}
}

// Mesh is the in memory MSH object. Every entity is optional; nil or zero
// rows means absent.
type Mesh struct {
	Kind  Kind
	Radii []float64

	Point *Point
	Power *mat.Dense // [npoint][npower]
	Value *mat.Dense // [npoint][nvalue], or [nx*ny*nz][nvalue] for grids

	Edge2 *Cell
	Tria3 *Cell
	Quad4 *Cell
	Tria4 *Cell
	Hexa8 *Cell
	Wedg6 *Cell
	Pyra5 *Cell

	// Bound columns are part ID, element index, element kind tag
	Bound *IndexTable

	// Grid axes, only meaningful for grid kinds
	XGrid, YGrid, ZGrid []float64
}

func NewMesh(kind Kind) *Mesh {
	return &Mesh{Kind: kind}
}

// Cell returns the entity for topology t, possibly nil
func (m *Mesh) Cell(t Topology) *Cell {
	return *m.cellSlot(t)
}

func (m *Mesh) SetCell(t Topology, c *Cell) {
	*m.cellSlot(t) = c
}

func (m *Mesh) cellSlot(t Topology) **Cell {
	switch t {
	case Edge2:
		return &m.Edge2
	case Tria3:
		return &m.Tria3
	case Quad4:
		return &m.Quad4
	case Tria4:
		return &m.Tria4
	case Hexa8:
		return &m.Hexa8
	case Wedg6:
		return &m.Wedg6
	case Pyra5:
		return &m.Pyra5
	default:
		panic(fmt.Errorf("unknown topology %d", int(t)))
	}
}

// Axes returns the present grid axes in x, y, z order
func (m *Mesh) Axes() (axes [][]float64) {
	for _, ax := range [][]float64{m.XGrid, m.YGrid, m.ZGrid} {
		if len(ax) != 0 {
			axes = append(axes, ax)
		}
	}
	return
}

// NumPoints is the row count of the point table, 0 when absent
func (m *Mesh) NumPoints() int { return denseRows(m.pointCoord()) }

// NumDims is the coordinate column count, 0 when there are no points
func (m *Mesh) NumDims() int {
	if !m.HasPoint() {
		return 0
	}
	_, nc := m.Point.Coord.Dims()
	return nc
}

func (m *Mesh) HasPoint() bool { return m.NumPoints() > 0 }

func (m *Mesh) HasRadii() bool { return len(m.Radii) != 0 }

func (m *Mesh) HasPower() bool { return denseRows(m.Power) > 0 }

func (m *Mesh) HasValue() bool { return denseRows(m.Value) > 0 }

func (m *Mesh) HasBound() bool {
	nr, _ := m.Bound.Dims()
	return nr > 0
}

func (m *Mesh) HasCell(t Topology) bool { return m.Cell(t).Len() > 0 }

// Len is the element row count, 0 for a nil cell
func (c *Cell) Len() int {
	if c == nil {
		return 0
	}
	nr, _ := c.Index.Dims()
	return nr
}

func (m *Mesh) pointCoord() *mat.Dense {
	if m.Point == nil {
		return nil
	}
	return m.Point.Coord
}

func denseRows(d *mat.Dense) int {
	if d == nil || d.IsEmpty() {
		return 0
	}
	nr, _ := d.Dims()
	return nr
}

// PrintStatistics prints entity counts for the mesh
func (m *Mesh) PrintStatistics() {
	fmt.Printf("Mesh Statistics:\n")
	fmt.Printf("  Kind: %s\n", m.Kind)
	if m.HasRadii() {
		fmt.Printf("  Radii: %v\n", m.Radii)
	}
	if m.HasPoint() {
		fmt.Printf("  Points: %d (NDIMS=%d)\n", m.NumPoints(), m.NumDims())
	}
	if m.HasPower() {
		_, nc := m.Power.Dims()
		fmt.Printf("  Power: %d x %d\n", denseRows(m.Power), nc)
	}
	if m.HasValue() {
		_, nc := m.Value.Dims()
		fmt.Printf("  Value: %d x %d\n", denseRows(m.Value), nc)
	}
	for _, t := range Topologies {
		if m.HasCell(t) {
			fmt.Printf("  %s: %d\n", t.Name(), m.Cell(t).Len())
		}
	}
	if m.HasBound() {
		nr, _ := m.Bound.Dims()
		fmt.Printf("  Bound: %d\n", nr)
	}
	for i, ax := range m.Axes() {
		fmt.Printf("  Axis %d: %d\n", i+1, len(ax))
	}
}
