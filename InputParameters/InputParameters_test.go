package InputParameters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomsh/msh"
)

func TestGridParameters(t *testing.T) {
	fileInput := []byte(`
Title: Test Grid
Kind: ELLIPSOID-GRID
Radii: [6371., 6371., 6357.]
XAxis:
  Min: -180
  Max: 180
  N: 5
YAxis:
  Min: 90
  Max: -90
  N: 3
Values: [1.5, -1]
`)
	var gp GridParameters
	require.NoError(t, gp.Parse(fileInput))
	gp.Print()
	assert.Equal(t, "Test Grid", gp.Title)
	assert.Nil(t, gp.ZAxis)

	m, err := gp.Build()
	require.NoError(t, err)
	assert.Equal(t, msh.EllipsoidGrid, m.Kind)
	assert.Equal(t, []float64{6371, 6371, 6357}, m.Radii)
	assert.Equal(t, []float64{-180, -90, 0, 90, 180}, m.XGrid)
	assert.Equal(t, []float64{90, 0, -90}, m.YGrid)
	assert.Nil(t, m.ZGrid)

	nr, nc := m.Value.Dims()
	assert.Equal(t, 15, nr)
	assert.Equal(t, 2, nc)
	assert.Equal(t, 1.5, m.Value.At(14, 0))
	assert.Equal(t, -1.0, m.Value.At(7, 1))
}

func TestGridParametersDefaults(t *testing.T) {
	var gp GridParameters
	require.NoError(t, gp.Parse([]byte("XAxis: {Min: 0, Max: 1, N: 1}\n")))
	m, err := gp.Build()
	require.NoError(t, err)
	assert.Equal(t, msh.EuclideanGrid, m.Kind)
	assert.Equal(t, []float64{0}, m.XGrid)
	assert.Nil(t, m.Value)
}

func TestGridParametersErrors(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"mesh kind", "Kind: euclidean-mesh\n", "need a grid kind"},
		{"unknown kind", "Kind: torus\n", "unknown mesh kind"},
		{"zero nodes", "XAxis: {Min: 0, Max: 1, N: 0}\n", "XAxis: N must be at least 1"},
		{"flat axis", "XAxis: {Min: 0, Max: 1, N: 2}\nYAxis: {Min: 2, Max: 2, N: 4}\n", "YAxis: Min and Max must differ"},
		{"z without y", "XAxis: {Min: 0, Max: 1, N: 2}\nZAxis: {Min: 0, Max: 1, N: 2}\n", "ZGRID is present but YGRID is not"},
		{"bad radii", "Kind: ellipsoid-grid\nRadii: [1, 2]\n", "RADII must have 3 entries"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gp GridParameters
			require.NoError(t, gp.Parse([]byte(tc.input)))
			_, err := gp.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
	_, err := (&GridParameters{Kind: "plane-mesh"}).Build()
	assert.True(t, errors.Is(err, msh.ErrInvalidArgument))
}
