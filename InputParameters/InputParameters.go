package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gomsh/msh"
)

// Axis is N evenly spaced grid coordinates from Min to Max inclusive
type Axis struct {
	Min float64 `json:"Min"`
	Max float64 `json:"Max"`
	N   int     `json:"N"`
}

// Parameters obtained from the YAML grid file
type GridParameters struct {
	Title  string    `json:"Title"`
	Kind   string    `json:"Kind"`
	Radii  []float64 `json:"Radii"`
	XAxis  *Axis     `json:"XAxis"`
	YAxis  *Axis     `json:"YAxis"`
	ZAxis  *Axis     `json:"ZAxis"`
	Values []float64 `json:"Values"` // One constant per VALUE column, at every grid node
}

func (gp *GridParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, gp)
}

func (gp *GridParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", gp.Title)
	fmt.Printf("[%s]\t= Kind\n", gp.Kind)
	if len(gp.Radii) != 0 {
		fmt.Printf("%v\t= Radii\n", gp.Radii)
	}
	for _, ax := range []struct {
		name string
		axis *Axis
	}{{"XAxis", gp.XAxis}, {"YAxis", gp.YAxis}, {"ZAxis", gp.ZAxis}} {
		if ax.axis != nil {
			fmt.Printf("[%8.5f,%8.5f] x %d\t= %s\n", ax.axis.Min, ax.axis.Max, ax.axis.N, ax.name)
		}
	}
	if len(gp.Values) != 0 {
		fmt.Printf("%v\t= Values\n", gp.Values)
	}
}

func (ax *Axis) coordinates(name string) ([]float64, error) {
	if ax == nil {
		return nil, nil
	}
	switch {
	case ax.N < 1:
		return nil, fmt.Errorf("%s: N must be at least 1, got %d", name, ax.N)
	case ax.N == 1:
		return []float64{ax.Min}, nil
	case ax.Min == ax.Max:
		return nil, fmt.Errorf("%s: Min and Max must differ when N > 1", name)
	}
	return floats.Span(make([]float64, ax.N), ax.Min, ax.Max), nil
}

// Build returns the grid described by the parameters. The result has passed
// msh.Certify.
func (gp *GridParameters) Build() (m *msh.Mesh, err error) {
	kind := msh.EuclideanGrid
	if gp.Kind != "" {
		if kind, err = msh.ParseKind(gp.Kind); err != nil {
			return
		}
	}
	if !kind.IsGrid() {
		return nil, fmt.Errorf("%w: grid parameters need a grid kind, got %s", msh.ErrInvalidArgument, kind)
	}
	m = msh.NewMesh(kind)
	m.Radii = gp.Radii
	if m.XGrid, err = gp.XAxis.coordinates("XAxis"); err != nil {
		return nil, err
	}
	if m.YGrid, err = gp.YAxis.coordinates("YAxis"); err != nil {
		return nil, err
	}
	if m.ZGrid, err = gp.ZAxis.coordinates("ZAxis"); err != nil {
		return nil, err
	}
	if axes := m.Axes(); len(axes) != 0 && len(gp.Values) != 0 {
		nnode := 1
		for _, ax := range axes {
			nnode *= len(ax)
		}
		nval := len(gp.Values)
		data := make([]float64, nnode*nval)
		for i := 0; i < nnode; i++ {
			copy(data[i*nval:], gp.Values)
		}
		m.Value = mat.NewDense(nnode, nval, data)
	}
	if err = msh.Certify(m); err != nil {
		return nil, err
	}
	return
}
