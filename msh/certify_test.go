package msh

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestCertify(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(m *Mesh)
		target error
		errMsg string
	}{
		{
			name:   "valid",
			mutate: func(m *Mesh) {},
		},
		{
			name:   "nil mesh",
			target: ErrInvalidArgument,
			errMsg: "nil mesh",
		},
		{
			name:   "unknown kind",
			mutate: func(m *Mesh) { m.Kind = Kind(9) },
			target: ErrInvalidArgument,
			errMsg: "unknown mesh kind",
		},
		{
			name:   "four coordinate columns",
			mutate: func(m *Mesh) { m.Point.Coord = mat.NewDense(8, 4, nil) },
			target: ErrContractViolation,
			errMsg: "2 or 3 columns",
		},
		{
			name:   "one coordinate column",
			mutate: func(m *Mesh) { m.Point.Coord = mat.NewDense(8, 1, nil) },
			target: ErrContractViolation,
			errMsg: "2 or 3 columns",
		},
		{
			name:   "short point tags",
			mutate: func(m *Mesh) { m.Point.IDtag = m.Point.IDtag[:7] },
			target: ErrContractViolation,
			errMsg: "POINT.IDTAG",
		},
		{
			name:   "non finite coordinate",
			mutate: func(m *Mesh) { m.Point.Coord.Set(2, 1, math.NaN()) },
			target: ErrContractViolation,
			errMsg: "not finite",
		},
		{
			name:   "misaligned power",
			mutate: func(m *Mesh) { m.Power = mat.NewDense(7, 1, nil) },
			target: ErrContractViolation,
			errMsg: "POWER has 7 rows",
		},
		{
			name:   "misaligned value",
			mutate: func(m *Mesh) { m.Value = mat.NewDense(9, 2, nil) },
			target: ErrContractViolation,
			errMsg: "VALUE has 9 rows",
		},
		{
			name:   "index out of range",
			mutate: func(m *Mesh) { m.Hexa8.Index.Set(0, 7, 8) },
			target: ErrContractViolation,
			errMsg: "HEXA8.INDEX[0,7] = 8",
		},
		{
			name:   "negative index",
			mutate: func(m *Mesh) { m.Edge2.Index.Set(2, 0, -1) },
			target: ErrContractViolation,
			errMsg: "EDGE2.INDEX[2,0] = -1",
		},
		{
			name:   "wrong topology width",
			mutate: func(m *Mesh) { m.Tria3 = NewCell(NewIndexTable(1, 4), []int{0}) },
			target: ErrContractViolation,
			errMsg: "TRIA3.INDEX must have 3 columns",
		},
		{
			name:   "cell tags missing",
			mutate: func(m *Mesh) { m.Wedg6.IDtag = nil },
			target: ErrContractViolation,
			errMsg: "WEDG6.IDTAG",
		},
		{
			name:   "cells without points",
			mutate: func(m *Mesh) { m.Point = nil; m.Power = nil; m.Value = nil },
			target: ErrContractViolation,
			errMsg: "out of range [0,0)",
		},
		{
			name:   "bound unknown tag",
			mutate: func(m *Mesh) { m.Bound.Set(0, 2, 99) },
			target: ErrContractViolation,
			errMsg: "not an element kind tag",
		},
		{
			name:   "bound index past table",
			mutate: func(m *Mesh) { m.Bound.Set(2, 1, 2) },
			target: ErrContractViolation,
			errMsg: "out of range for TRIA3 with 2 cells",
		},
		{
			name:   "bound width",
			mutate: func(m *Mesh) { m.Bound = NewIndexTable(1, 2) },
			target: ErrContractViolation,
			errMsg: "BOUND.INDEX must have 3 columns",
		},
		{
			name:   "two radii",
			mutate: func(m *Mesh) { m.Kind = EllipsoidMesh; m.Radii = []float64{1, 2} },
			target: ErrContractViolation,
			errMsg: "RADII must have 3 entries",
		},
		{
			name:   "negative radius",
			mutate: func(m *Mesh) { m.Kind = EllipsoidMesh; m.Radii = []float64{1, -2, 1} },
			target: ErrContractViolation,
			errMsg: "RADII[1]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var m *Mesh
			if tc.mutate != nil {
				m = newCubeMesh()
				tc.mutate(m)
			}
			err := Certify(m)
			if tc.target == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestCertifyGrid(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(m *Mesh)
		errMsg string
	}{
		{name: "valid", mutate: func(m *Mesh) {}},
		{name: "no axes", mutate: func(m *Mesh) { m.XGrid, m.YGrid, m.Value = nil, nil, nil }},
		{name: "single node axis", mutate: func(m *Mesh) { m.YGrid = []float64{1}; m.Value = mat.NewDense(3, 1, nil) }},
		{
			name:   "non monotone axis",
			mutate: func(m *Mesh) { m.XGrid = []float64{0, 1, 0.5} },
			errMsg: "XGRID must increase or decrease monotonically",
		},
		{
			name:   "repeated axis value",
			mutate: func(m *Mesh) { m.YGrid = []float64{5, 5} },
			errMsg: "YGRID must increase or decrease monotonically",
		},
		{
			name:   "z without y",
			mutate: func(m *Mesh) { m.YGrid = nil; m.ZGrid = []float64{0, 1} },
			errMsg: "ZGRID is present but YGRID is not",
		},
		{
			name:   "value count",
			mutate: func(m *Mesh) { m.ZGrid = []float64{0, 1} },
			errMsg: "VALUE has 6 rows, want 12",
		},
		{
			name:   "value without axes",
			mutate: func(m *Mesh) { m.XGrid, m.YGrid = nil, nil },
			errMsg: "VALUE is present on a grid without axes",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newGridMesh()
			tc.mutate(m)
			err := Certify(m)
			if tc.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrContractViolation), "got %v", err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}
