package readers

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gomsh/msh"
)

// Options control how a foreign mesh is mapped onto the MSH model
type Options struct {
	// Dims is the coordinate width written to POINT, 0 picks 2 when the mesh
	// is planar (every z is zero and no volume elements) and 3 otherwise
	Dims int
	// Kind of the resulting mesh, euclidean-mesh unless set
	Kind msh.Kind
}

type Option func(o *Options)

func WithDims(ndims int) Option {
	return func(o *Options) { o.Dims = ndims }
}

func WithKind(kind msh.Kind) Option {
	return func(o *Options) { o.Kind = kind }
}

func newOptions(opts []Option) (o Options) {
	for _, opt := range opts {
		opt(&o)
	}
	return
}

type cellBucket struct {
	index []int
	idtag []int
}

// meshBuilder collects nodes and elements as they are read from a file,
// keyed by the file's own node IDs, and assembles the MSH mesh at the end
type meshBuilder struct {
	coords    [][3]float64
	nodeIndex map[int]int // file node ID -> POINT row
	cells     map[msh.Topology]*cellBucket
	hasVolume bool
}

func newMeshBuilder() *meshBuilder {
	return &meshBuilder{
		nodeIndex: make(map[int]int),
		cells:     make(map[msh.Topology]*cellBucket),
	}
}

func (b *meshBuilder) addNode(nodeID int, xyz []float64) error {
	if _, exists := b.nodeIndex[nodeID]; exists {
		return fmt.Errorf("duplicate node ID %d", nodeID)
	}
	var c [3]float64
	copy(c[:], xyz)
	b.nodeIndex[nodeID] = len(b.coords)
	b.coords = append(b.coords, c)
	return nil
}

// addElement appends one element, nodeIDs are file node IDs
func (b *meshBuilder) addElement(t msh.Topology, nodeIDs []int, tag int) error {
	if len(nodeIDs) != t.Vertices() {
		return fmt.Errorf("%s element needs %d nodes, got %d", t.Name(), t.Vertices(), len(nodeIDs))
	}
	bucket, ok := b.cells[t]
	if !ok {
		bucket = &cellBucket{}
		b.cells[t] = bucket
	}
	for _, id := range nodeIDs {
		idx, ok := b.nodeIndex[id]
		if !ok {
			return fmt.Errorf("%s element references unknown node %d", t.Name(), id)
		}
		bucket.index = append(bucket.index, idx)
	}
	bucket.idtag = append(bucket.idtag, tag)
	switch t {
	case msh.Tria4, msh.Hexa8, msh.Wedg6, msh.Pyra5:
		b.hasVolume = true
	}
	return nil
}

// numElements is the count already added for topology t
func (b *meshBuilder) numElements(t msh.Topology) int {
	if bucket, ok := b.cells[t]; ok {
		return len(bucket.idtag)
	}
	return 0
}

func (b *meshBuilder) setTag(t msh.Topology, i, tag int) {
	b.cells[t].idtag[i] = tag
}

func (b *meshBuilder) planar() bool {
	if b.hasVolume {
		return false
	}
	for _, c := range b.coords {
		if c[2] != 0 {
			return false
		}
	}
	return true
}

func (b *meshBuilder) build(o Options) (m *msh.Mesh, err error) {
	ndims := o.Dims
	switch ndims {
	case 0:
		ndims = 3
		if b.planar() {
			ndims = 2
		}
	case 2:
		for i, c := range b.coords {
			if c[2] != 0 {
				return nil, fmt.Errorf("node %d has z = %v, cannot write a 2D mesh", i, c[2])
			}
		}
	case 3:
	default:
		return nil, fmt.Errorf("%w: dims must be 2 or 3, got %d", msh.ErrInvalidArgument, ndims)
	}

	m = msh.NewMesh(o.Kind)
	if npoint := len(b.coords); npoint != 0 {
		data := make([]float64, 0, npoint*ndims)
		for _, c := range b.coords {
			data = append(data, c[:ndims]...)
		}
		m.Point = &msh.Point{
			Coord: mat.NewDense(npoint, ndims, data),
			IDtag: make([]int, npoint),
		}
	}
	for _, t := range msh.Topologies {
		bucket, ok := b.cells[t]
		if !ok || len(bucket.idtag) == 0 {
			continue
		}
		index := msh.NewIndexTable(len(bucket.idtag), t.Vertices(), bucket.index)
		m.SetCell(t, msh.NewCell(index, bucket.idtag))
	}
	if err = msh.Certify(m); err != nil {
		return nil, err
	}
	return
}
