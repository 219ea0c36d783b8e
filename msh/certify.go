package msh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Certify checks the structural consistency the encoder relies on. It
// returns an error wrapping ErrContractViolation (or ErrInvalidArgument for
// a nil mesh or unknown kind) describing the first problem found.
func Certify(m *Mesh) error {
	if m == nil {
		return fmt.Errorf("%w: nil mesh", ErrInvalidArgument)
	}
	if !m.Kind.Valid() {
		return fmt.Errorf("%w: unknown mesh kind %d", ErrInvalidArgument, uint8(m.Kind))
	}
	if err := certifyRadii(m); err != nil {
		return err
	}
	if m.Kind.IsGrid() {
		return certifyGrid(m)
	}
	return certifyMesh(m)
}

func violation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrContractViolation}, args...)...)
}

func certifyRadii(m *Mesh) error {
	if !m.HasRadii() {
		return nil
	}
	if len(m.Radii) != 3 {
		return violation("RADII must have 3 entries, got %d", len(m.Radii))
	}
	for i, r := range m.Radii {
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
			return violation("RADII[%d] = %v must be positive and finite", i, r)
		}
	}
	return nil
}

func certifyMesh(m *Mesh) error {
	var npoint int
	if m.Point != nil && m.Point.Coord != nil && !m.Point.Coord.IsEmpty() {
		var ndims int
		npoint, ndims = m.Point.Coord.Dims()
		if ndims != 2 && ndims != 3 {
			return violation("POINT.COORD must have 2 or 3 columns, got %d", ndims)
		}
		if len(m.Point.IDtag) != npoint {
			return violation("POINT.IDTAG has %d entries for %d points", len(m.Point.IDtag), npoint)
		}
		if err := certifyFinite("POINT.COORD", m.Point.Coord); err != nil {
			return err
		}
	}
	if err := certifyAligned("POWER", m.Power, npoint); err != nil {
		return err
	}
	if err := certifyAligned("VALUE", m.Value, npoint); err != nil {
		return err
	}
	for _, t := range Topologies {
		if err := certifyCell(t, m.Cell(t), npoint); err != nil {
			return err
		}
	}
	return certifyBound(m)
}

func certifyFinite(name string, d *mat.Dense) error {
	nr, nc := d.Dims()
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if v := d.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return violation("%s[%d,%d] = %v is not finite", name, i, j, v)
			}
		}
	}
	return nil
}

func certifyAligned(name string, d *mat.Dense, nrows int) error {
	if denseRows(d) == 0 {
		return nil
	}
	if nr, _ := d.Dims(); nr != nrows {
		return violation("%s has %d rows, want %d", name, nr, nrows)
	}
	return nil
}

func certifyCell(t Topology, c *Cell, npoint int) error {
	if c.Len() == 0 {
		return nil
	}
	nr, nc := c.Index.Dims()
	if nc != t.Vertices() {
		return violation("%s.INDEX must have %d columns, got %d", t.Name(), t.Vertices(), nc)
	}
	if len(c.IDtag) != nr {
		return violation("%s.IDTAG has %d entries for %d cells", t.Name(), len(c.IDtag), nr)
	}
	for i := 0; i < nr; i++ {
		for j, idx := range c.Index.Row(i) {
			if idx < 0 || idx >= npoint {
				return violation("%s.INDEX[%d,%d] = %d is out of range [0,%d)", t.Name(), i, j, idx, npoint)
			}
		}
	}
	return nil
}

func certifyBound(m *Mesh) error {
	if !m.HasBound() {
		return nil
	}
	nr, nc := m.Bound.Dims()
	if nc != 3 {
		return violation("BOUND.INDEX must have 3 columns, got %d", nc)
	}
	for i := 0; i < nr; i++ {
		row := m.Bound.Row(i)
		t, ok := TopologyByTag(row[2])
		if !ok {
			return violation("BOUND.INDEX[%d,2] = %d is not an element kind tag", i, row[2])
		}
		if n := m.Cell(t).Len(); row[1] < 0 || row[1] >= n {
			return violation("BOUND.INDEX[%d,1] = %d is out of range for %s with %d cells", i, row[1], t.Name(), n)
		}
	}
	return nil
}

func certifyGrid(m *Mesh) error {
	axes := [...]struct {
		name string
		data []float64
	}{{"XGRID", m.XGrid}, {"YGRID", m.YGrid}, {"ZGRID", m.ZGrid}}
	var (
		nnode   = 1
		missing string
	)
	for _, ax := range axes {
		if len(ax.data) == 0 {
			if missing == "" {
				missing = ax.name
			}
			continue
		}
		if missing != "" {
			return violation("%s is present but %s is not", ax.name, missing)
		}
		if !monotonic(ax.data) {
			return violation("%s must increase or decrease monotonically", ax.name)
		}
		nnode *= len(ax.data)
	}
	if !m.HasValue() {
		return nil
	}
	if missing == "XGRID" {
		return violation("VALUE is present on a grid without axes")
	}
	return certifyAligned("VALUE", m.Value, nnode)
}

func monotonic(ax []float64) bool {
	if floats.HasNaN(ax) {
		return false
	}
	if len(ax) < 2 {
		return true
	}
	up := ax[1] > ax[0]
	for i := 1; i < len(ax); i++ {
		if up && !(ax[i] > ax[i-1]) || !up && !(ax[i] < ax[i-1]) {
			return false
		}
	}
	return true
}
