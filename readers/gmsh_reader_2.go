package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gomsh/msh"
)

// gmshElementType22 maps Gmsh element type numbers to MSH topologies. Higher
// order and point elements have no MSH counterpart and are skipped.
var gmshElementType22 = map[int]msh.Topology{
	1: msh.Edge2,
	2: msh.Tria3,
	3: msh.Quad4,
	4: msh.Tria4,
	5: msh.Hexa8,
	6: msh.Wedg6,
	7: msh.Pyra5,
}

// ReadGmsh22 reads a Gmsh MSH file format version 2.2 (ASCII). The first
// element tag (the physical group) becomes the MSH ID-tag.
func ReadGmsh22(filename string, opts ...Option) (*msh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := DecodeGmsh22(file, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

func DecodeGmsh22(r io.Reader, opts ...Option) (*msh.Mesh, error) {
	scanner := bufio.NewScanner(r)
	b := newMeshBuilder()
	seenFormat := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if err := readMeshFormat22(scanner); err != nil {
				return nil, err
			}
			seenFormat = true

		case "$Nodes":
			if err := readNodes22(scanner, b); err != nil {
				return nil, err
			}

		case "$Elements":
			if err := readElements22(scanner, b); err != nil {
				return nil, err
			}

		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				// PhysicalNames, Periodic, NodeData... carry nothing MSH can hold
				skipSection(scanner, "$End"+line[1:])
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	if !seenFormat {
		return nil, fmt.Errorf("could not find $MeshFormat section")
	}
	return b.build(newOptions(opts))
}

func skipSection(scanner *bufio.Scanner, endMarker string) {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endMarker {
			break
		}
	}
}

func readMeshFormat22(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}

	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2.") {
		return fmt.Errorf("unsupported Gmsh format version: %s", parts[0])
	}
	if parts[1] != "0" {
		return fmt.Errorf("binary Gmsh files are not supported")
	}

	skipSection(scanner, "$EndMeshFormat")
	return nil
}

func readNodes22(scanner *bufio.Scanner, b *meshBuilder) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}

	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || numNodes < 0 {
		return fmt.Errorf("invalid node count: %s", scanner.Text())
	}

	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}

		nodeID, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid node ID: %s", parts[0])
		}
		xyz, err := parseFloats(parts[1:4])
		if err != nil {
			return fmt.Errorf("node %d: %v", nodeID, err)
		}
		if err = b.addNode(nodeID, xyz); err != nil {
			return err
		}
	}

	skipSection(scanner, "$EndNodes")
	return nil
}

func readElements22(scanner *bufio.Scanner, b *meshBuilder) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}

	numElements, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || numElements < 0 {
		return fmt.Errorf("invalid element count: %s", scanner.Text())
	}

	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return fmt.Errorf("invalid element line")
		}

		fields, err := parseInts(parts)
		if err != nil {
			return fmt.Errorf("element line %q: %v", scanner.Text(), err)
		}
		elemID, elemType, numTags := fields[0], fields[1], fields[2]
		if numTags < 0 || len(fields) < 3+numTags {
			return fmt.Errorf("invalid element tags")
		}

		topo, ok := gmshElementType22[elemType]
		if !ok {
			continue
		}

		var physicalTag int
		if numTags > 0 {
			physicalTag = fields[3]
		}

		nodeStart := 3 + numTags
		if len(fields)-nodeStart != topo.Vertices() {
			return fmt.Errorf("element %d: expected %d nodes, got %d",
				elemID, topo.Vertices(), len(fields)-nodeStart)
		}
		if err = b.addElement(topo, fields[nodeStart:], physicalTag); err != nil {
			return fmt.Errorf("element %d: %v", elemID, err)
		}
	}

	skipSection(scanner, "$EndElements")
	return nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", f)
		}
		out[i] = v
	}
	return out, nil
}
