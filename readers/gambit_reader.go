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

// gambitElementType maps Gambit NTYPE codes to MSH topologies
var gambitElementType = map[int]msh.Topology{
	1: msh.Edge2,
	2: msh.Quad4,
	3: msh.Tria3,
	4: msh.Hexa8,
	5: msh.Wedg6,
	6: msh.Tria4,
	7: msh.Pyra5,
}

// gambitBrickOrder reorders Gambit's lexicographic brick nodes into the
// cyclic bottom-then-top order used for HEXA8
var gambitBrickOrder = [8]int{0, 1, 3, 2, 4, 5, 7, 6}

type gambitElement struct {
	topo msh.Topology
	row  int // row within its topology table
}

// ReadGambitNeutral reads a Gambit neutral file (.neu). Elements take the ID
// of their element group as ID-tag.
func ReadGambitNeutral(filename string, opts ...Option) (*msh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := DecodeGambitNeutral(file, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

func DecodeGambitNeutral(r io.Reader, opts ...Option) (*msh.Mesh, error) {
	var (
		scanner  = bufio.NewScanner(r)
		b        = newMeshBuilder()
		elements = make(map[int]gambitElement) // Gambit element ID -> element
		numnp    int
		nelem    int
		ngrps    int
		ndfcd    int
		sawCtl   bool
	)

	// Read control info section
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "NUMNP") && strings.Contains(line, "NELEM") {
			// Next line contains the actual values
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected EOF after control header")
			}
			values, err := parseInts(strings.Fields(scanner.Text()))
			if err != nil || len(values) < 6 {
				return nil, fmt.Errorf("invalid control info line: %s", scanner.Text())
			}
			numnp, nelem, ngrps, ndfcd = values[0], values[1], values[2], values[4]
			sawCtl = true
			break
		}
	}
	if !sawCtl {
		return nil, fmt.Errorf("missing NUMNP/NELEM control info")
	}
	if ndfcd != 2 && ndfcd != 3 {
		return nil, fmt.Errorf("unsupported coordinate dimension NDFCD=%d", ndfcd)
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "ENDOFSECTION" {
			continue
		}

		if strings.Contains(line, "NODAL COORDINATES") {
			for i := 0; i < numnp; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) < 1+ndfcd {
					return nil, fmt.Errorf("invalid node line: %s", scanner.Text())
				}
				nodeID, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, fmt.Errorf("invalid node ID: %s", fields[0])
				}
				xyz, err := parseFloats(fields[1 : 1+ndfcd])
				if err != nil {
					return nil, fmt.Errorf("node %d: %v", nodeID, err)
				}
				if err = b.addNode(nodeID, xyz); err != nil {
					return nil, err
				}
			}

		} else if strings.Contains(line, "ELEMENTS/CELLS") {
			for i := 0; i < nelem; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
				fields, err := parseInts(strings.Fields(scanner.Text()))
				if err != nil || len(fields) < 3 {
					return nil, fmt.Errorf("invalid element line: %s", scanner.Text())
				}
				elemID, gambitType, numNodes := fields[0], fields[1], fields[2]
				nodes := fields[3:]
				// Long node lists continue on the following lines
				for len(nodes) < numNodes {
					if !scanner.Scan() {
						return nil, fmt.Errorf("unexpected EOF reading element %d", elemID)
					}
					more, err := parseInts(strings.Fields(scanner.Text()))
					if err != nil {
						return nil, fmt.Errorf("element %d: %v", elemID, err)
					}
					nodes = append(nodes, more...)
				}

				topo, ok := gambitElementType[gambitType]
				if !ok {
					return nil, fmt.Errorf("element %d: unsupported Gambit element type %d", elemID, gambitType)
				}
				if topo == msh.Hexa8 && len(nodes) == 8 {
					ordered := make([]int, 8)
					for j, k := range gambitBrickOrder {
						ordered[j] = nodes[k]
					}
					nodes = ordered
				}
				elements[elemID] = gambitElement{topo: topo, row: b.numElements(topo)}
				if err = b.addElement(topo, nodes, 0); err != nil {
					return nil, fmt.Errorf("element %d: %v", elemID, err)
				}
			}

		} else if strings.Contains(line, "ELEMENT GROUP") {
			if err := readGambitGroup(scanner, b, elements); err != nil {
				return nil, err
			}
			ngrps--
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	if ngrps > 0 {
		return nil, fmt.Errorf("expected %d more element groups", ngrps)
	}
	o := newOptions(opts)
	if o.Dims == 0 {
		o.Dims = ndfcd
	}
	return b.build(o)
}

// readGambitGroup reads one ELEMENT GROUP section and tags its elements
func readGambitGroup(scanner *bufio.Scanner, b *meshBuilder, elements map[int]gambitElement) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in element group")
	}
	groupLine := strings.TrimSpace(scanner.Text())
	if !strings.HasPrefix(groupLine, "GROUP:") {
		return fmt.Errorf("invalid element group line: %s", groupLine)
	}

	var groupID, numElems, nflags int
	parts := strings.Fields(groupLine)
	for i := 0; i < len(parts)-1; i++ {
		switch parts[i] {
		case "GROUP:":
			groupID, _ = strconv.Atoi(parts[i+1])
		case "ELEMENTS:":
			numElems, _ = strconv.Atoi(parts[i+1])
		case "NFLAGS:":
			nflags, _ = strconv.Atoi(parts[i+1])
		}
	}

	// Entity name, then the solver flags
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF reading group %d name", groupID)
	}
	if nflags > 0 && !scanner.Scan() {
		return fmt.Errorf("unexpected EOF reading group %d flags", groupID)
	}

	for read := 0; read < numElems; {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading group %d elements", groupID)
		}
		ids, err := parseInts(strings.Fields(scanner.Text()))
		if err != nil {
			return fmt.Errorf("group %d: %v", groupID, err)
		}
		for _, id := range ids {
			e, ok := elements[id]
			if !ok {
				return fmt.Errorf("group %d references unknown element %d", groupID, id)
			}
			b.setTag(e.topo, e.row, groupID)
			read++
		}
	}
	return nil
}
