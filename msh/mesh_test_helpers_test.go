package msh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// newTriangleMesh is the single triangle mesh used throughout the tests
func newTriangleMesh() *Mesh {
	m := NewMesh(EuclideanMesh)
	m.Point = &Point{
		Coord: mat.NewDense(3, 2, []float64{
			0, 0,
			1, 0,
			0, 1,
		}),
		IDtag: []int{0, 0, 0},
	}
	m.Tria3 = NewCell(NewIndexTable(1, 3, []int{0, 1, 2}), []int{0})
	return m
}

// newCubeMesh populates every mesh path entity on the 8 corners of a cube
func newCubeMesh() *Mesh {
	m := NewMesh(EuclideanMesh)
	m.Point = &Point{
		Coord: mat.NewDense(8, 3, []float64{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
			0, 0, 1,
			1, 0, 1,
			1, 1, 1,
			0, 1, 1,
		}),
		IDtag: []int{1, 1, 1, 1, 2, 2, 2, 2},
	}
	m.Power = mat.NewDense(8, 1, []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8})
	m.Value = mat.NewDense(8, 2, []float64{
		1, -1,
		2, -2,
		3, -3,
		4, -4,
		5, -5,
		6, -6,
		7, -7,
		8, -8,
	})
	m.Edge2 = NewCell(NewIndexTableFromRows([][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}), []int{5, 5, 5, 5})
	m.Tria3 = NewCell(NewIndexTableFromRows([][]int{{0, 1, 2}, {0, 2, 3}}), []int{7, 7})
	m.Quad4 = NewCell(NewIndexTableFromRows([][]int{{4, 5, 6, 7}}), []int{8})
	m.Tria4 = NewCell(NewIndexTableFromRows([][]int{{0, 1, 3, 4}}), []int{9})
	m.Hexa8 = NewCell(NewIndexTableFromRows([][]int{{0, 1, 2, 3, 4, 5, 6, 7}}), []int{10})
	m.Wedg6 = NewCell(NewIndexTableFromRows([][]int{{0, 1, 2, 4, 5, 6}}), []int{11})
	m.Pyra5 = NewCell(NewIndexTableFromRows([][]int{{0, 1, 2, 3, 6}}), []int{12})
	m.Bound = NewIndexTableFromRows([][]int{
		{1, 0, Edge2.Tag()},
		{1, 3, Edge2.Tag()},
		{2, 1, Tria3.Tag()},
	})
	return m
}

// newGridMesh is a 3x2 euclidean grid with one value per node
func newGridMesh() *Mesh {
	m := NewMesh(EuclideanGrid)
	m.XGrid = []float64{0, 0.5, 1}
	m.YGrid = []float64{10, 5}
	m.Value = mat.NewDense(6, 1, []float64{1, 2, 3, 4, 5, 6})
	return m
}

func assertDenseEqual(t *testing.T, want, got *mat.Dense, name string) {
	t.Helper()
	if denseRows(want) == 0 {
		assert.Zero(t, denseRows(got), "%s should be absent", name)
		return
	}
	require.NotNil(t, got, "%s should be present", name)
	assert.True(t, mat.Equal(want, got), "%s mismatch:\nwant %v\ngot  %v", name, mat.Formatted(want), mat.Formatted(got))
}

// assertMeshEqual checks every entity, absent entities must stay absent
func assertMeshEqual(t *testing.T, want, got *Mesh) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.Kind, got.Kind)
	if want.HasRadii() {
		assert.Equal(t, want.Radii, got.Radii)
	} else {
		assert.False(t, got.HasRadii())
	}
	if want.HasPoint() {
		require.True(t, got.HasPoint())
		assertDenseEqual(t, want.Point.Coord, got.Point.Coord, "POINT.COORD")
		assert.Equal(t, want.Point.IDtag, got.Point.IDtag)
	} else {
		assert.False(t, got.HasPoint())
	}
	assertDenseEqual(t, want.Power, got.Power, "POWER")
	assertDenseEqual(t, want.Value, got.Value, "VALUE")
	for _, topo := range Topologies {
		wc, gc := want.Cell(topo), got.Cell(topo)
		if wc.Len() == 0 {
			assert.Zero(t, gc.Len(), "%s should be absent", topo)
			continue
		}
		require.Equal(t, wc.Len(), gc.Len(), topo.Name())
		assert.Equal(t, wc.Index.RawData(), gc.Index.RawData(), topo.Name())
		assert.Equal(t, wc.IDtag, gc.IDtag, topo.Name())
	}
	if want.HasBound() {
		require.True(t, got.HasBound())
		assert.Equal(t, want.Bound.RawData(), got.Bound.RawData())
	} else {
		assert.False(t, got.HasBound())
	}
	assert.Equal(t, want.XGrid, got.XGrid)
	assert.Equal(t, want.YGrid, got.YGrid)
	assert.Equal(t, want.ZGrid, got.ZGrid)
}
