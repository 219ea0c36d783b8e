package msh

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func encodeString(t *testing.T, m *Mesh, opts ...EncoderOption) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, m, opts...))
	return buf.String()
}

// headers returns the NAME part of every NAME=... line in order
func headers(doc string) (names []string) {
	for _, line := range strings.Split(doc, "\n") {
		if name, _, found := strings.Cut(line, "="); found {
			names = append(names, name)
		}
	}
	return
}

func TestEncodeTriangle(t *testing.T) {
	want := `# created by gomsh
MSHID=3;euclidean-mesh
NDIMS=2
POINT=3
0.0000000000000000E+00;0.0000000000000000E+00;0
1.0000000000000000E+00;0.0000000000000000E+00;0
0.0000000000000000E+00;1.0000000000000000E+00;0
TRIA3=1
0;1;2;0
`
	assert.Equal(t, want, encodeString(t, newTriangleMesh()))
}

func TestEncodeEmptyGrid(t *testing.T) {
	doc := encodeString(t, NewMesh(EuclideanGrid), WithComment("grid.msh"))
	assert.Equal(t, "# grid.msh\nMSHID=3;euclidean-grid\n", doc)
}

func TestEncodeRadiiOnly(t *testing.T) {
	m := NewMesh(EllipsoidMesh)
	m.Radii = []float64{1.0, 1.0, 0.5}
	doc := encodeString(t, m)
	assert.Equal(t, "# created by gomsh\nMSHID=3;ellipsoid-mesh\nRADII=1.0;1.0;0.5\n", doc)
	assert.NotContains(t, doc, "NDIMS")
	assert.NotContains(t, doc, "POINT")
}

func TestEncodeRadiiEuclideanOmitted(t *testing.T) {
	m := newTriangleMesh()
	m.Radii = []float64{1, 1, 1}
	assert.NotContains(t, encodeString(t, m), "RADII")
}

func TestEncodeSectionOrder(t *testing.T) {
	doc := encodeString(t, newCubeMesh())
	assert.Equal(t, []string{
		"MSHID", "NDIMS", "POINT", "POWER", "VALUE",
		"EDGE2", "TRIA3", "QUAD4", "TRIA4", "HEXA8", "WEDG6", "PYRA5", "BOUND",
	}, headers(doc))

	// TRIA3 precedes BOUND with or without the other entities
	small := newTriangleMesh()
	small.Bound = NewIndexTable(1, 3, []int{0, 0, Tria3.Tag()})
	assert.Equal(t, []string{"MSHID", "NDIMS", "POINT", "TRIA3", "BOUND"}, headers(encodeString(t, small)))
}

func TestEncodeHeaderCounts(t *testing.T) {
	m := newCubeMesh()
	lines := strings.Split(strings.TrimSuffix(encodeString(t, m), "\n"), "\n")
	counts := map[string]string{
		"POINT": "8", "POWER": "8;1", "VALUE": "8;2",
		"EDGE2": "4", "TRIA3": "2", "QUAD4": "1", "TRIA4": "1",
		"HEXA8": "1", "WEDG6": "1", "PYRA5": "1", "BOUND": "3",
	}
	for i := 0; i < len(lines); i++ {
		name, arg, _ := strings.Cut(lines[i], "=")
		want, ok := counts[name]
		if !ok {
			continue
		}
		assert.Equal(t, want, arg, name)
		rows, _, _ := strings.Cut(arg, ";")
		n := 0
		for j := i + 1; j < len(lines) && !strings.Contains(lines[j], "="); j++ {
			n++
		}
		assert.Equal(t, rows, FormatInt(n), "%s data lines", name)
	}
}

func TestEncodeRows(t *testing.T) {
	doc := encodeString(t, newCubeMesh())
	assert.Contains(t, doc, "\nPOINT=8\n0.0000000000000000E+00;0.0000000000000000E+00;0.0000000000000000E+00;1\n")
	assert.Contains(t, doc, "\nPOWER=8;1\n1.0000000000000001E-01\n")
	assert.Contains(t, doc, "\nVALUE=8;2\n1.0000000000000000E+00;-1.0000000000000000E+00\n")
	assert.Contains(t, doc, "\nHEXA8=1\n0;1;2;3;4;5;6;7;10\n")
	assert.Contains(t, doc, "\nWEDG6=1\n0;1;2;4;5;6;11\n")
	assert.Contains(t, doc, "\nPYRA5=1\n0;1;2;3;6;12\n")
	assert.True(t, strings.HasSuffix(doc, "\nBOUND=3\n1;0;10\n1;3;10\n2;1;20\n"))
}

func TestEncodeGrid(t *testing.T) {
	m := newGridMesh()
	m.Kind = EllipsoidGrid
	m.Radii = []float64{6371, 6371, 6357}
	want := `# created by gomsh
MSHID=3;ellipsoid-grid
NDIMS=2
RADII=6371.0;6371.0;6357.0
COORD=1;3
0.0000000000000000E+00
5.0000000000000000E-01
1.0000000000000000E+00
COORD=2;2
1.0000000000000000E+01
5.0000000000000000E+00
VALUE=6;1
1.0000000000000000E+00
2.0000000000000000E+00
3.0000000000000000E+00
4.0000000000000000E+00
5.0000000000000000E+00
6.0000000000000000E+00
`
	assert.Equal(t, want, encodeString(t, m))
}

func TestEncodeGridIgnoresMeshEntities(t *testing.T) {
	m := newGridMesh()
	m.Point = newTriangleMesh().Point
	m.Tria3 = newTriangleMesh().Tria3
	doc := encodeString(t, m)
	assert.NotContains(t, doc, "POINT")
	assert.NotContains(t, doc, "TRIA3")
}

func TestEncodeDeterministic(t *testing.T) {
	for _, m := range []*Mesh{newTriangleMesh(), newCubeMesh(), newGridMesh()} {
		assert.Equal(t, encodeString(t, m), encodeString(t, m))
	}
}

func TestEncodeRejectsBeforeWriting(t *testing.T) {
	m := newTriangleMesh()
	m.Point.Coord = mat.NewDense(3, 4, nil)
	var buf bytes.Buffer
	err := Encode(&buf, m)
	assert.True(t, errors.Is(err, ErrContractViolation), "got %v", err)
	assert.Zero(t, buf.Len())

	err = Encode(&buf, nil, Certified())
	assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
}

type failingWriter struct {
	after int
}

var errDiskFull = errors.New("disk full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errDiskFull
	}
	w.after--
	return len(p), nil
}

func TestEncodeWriteError(t *testing.T) {
	err := Encode(&failingWriter{}, newCubeMesh())
	assert.True(t, errors.Is(err, errDiskFull), "got %v", err)
}
