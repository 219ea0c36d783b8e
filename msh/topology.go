package msh

import "fmt"

// Topology is a fixed arity element shape
type Topology int

const (
	Edge2 Topology = iota
	Tria3
	Quad4
	Tria4
	Hexa8
	Wedg6
	Pyra5
)

// Topologies lists every element topology in document order
var Topologies = []Topology{Edge2, Tria3, Quad4, Tria4, Hexa8, Wedg6, Pyra5}

var topologyInfo = [...]struct {
	name     string
	vertices int
	tag      int
}{
	{"EDGE2", 2, 10},
	{"TRIA3", 3, 20},
	{"QUAD4", 4, 30},
	{"TRIA4", 4, 40},
	{"HEXA8", 8, 50},
	{"WEDG6", 6, 60},
	{"PYRA5", 5, 70},
}

// Name is the section name written in the document
func (t Topology) Name() string { return topologyInfo[t].name }

// Vertices is the number of point indices per element row
func (t Topology) Vertices() int { return topologyInfo[t].vertices }

// Tag is the element kind code used in column 2 of the BOUND table
func (t Topology) Tag() int { return topologyInfo[t].tag }

func (t Topology) String() string {
	if t < 0 || int(t) >= len(topologyInfo) {
		return fmt.Sprintf("Topology(%d)", int(t))
	}
	return t.Name()
}

// TopologyByName maps a section name like "TRIA3" to its topology
func TopologyByName(name string) (Topology, bool) {
	for _, t := range Topologies {
		if t.Name() == name {
			return t, true
		}
	}
	return 0, false
}

// TopologyByTag maps a BOUND element kind code to its topology
func TopologyByTag(tag int) (Topology, bool) {
	for _, t := range Topologies {
		if t.Tag() == tag {
			return t, true
		}
	}
	return 0, false
}
