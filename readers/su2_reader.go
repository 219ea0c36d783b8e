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

// su2ElementType maps SU2 (VTK) element type numbers to MSH topologies
var su2ElementType = map[int]msh.Topology{
	3:  msh.Edge2,
	5:  msh.Tria3,
	9:  msh.Quad4,
	10: msh.Tria4,
	12: msh.Hexa8,
	13: msh.Wedg6,
	14: msh.Pyra5,
}

type su2Element struct {
	topo  msh.Topology
	nodes []int
	tag   int
}

// ReadSU2 reads an SU2 native format file. Volume elements get ID-tag 0,
// elements of the i-th boundary marker get ID-tag i+1.
func ReadSU2(filename string, opts ...Option) (*msh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := DecodeSU2(file, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

func DecodeSU2(r io.Reader, opts ...Option) (*msh.Mesh, error) {
	var (
		scanner  = bufio.NewScanner(r)
		ndime    int
		points   [][]float64
		elements []su2Element
	)

	// nextLine skips comments and blank lines
	nextLine := func() (string, bool) {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if strings.HasPrefix(line, "%") || line == "" {
				continue
			}
			return line, true
		}
		return "", false
	}

	readElements := func(count, tag int) error {
		for i := 0; i < count; i++ {
			line, ok := nextLine()
			if !ok {
				return fmt.Errorf("unexpected EOF reading elements")
			}
			fields, err := parseInts(strings.Fields(line))
			if err != nil {
				return err
			}
			topo, ok := su2ElementType[fields[0]]
			if !ok {
				return fmt.Errorf("unsupported SU2 element type %d", fields[0])
			}
			nv := topo.Vertices()
			if len(fields) < nv+1 {
				return fmt.Errorf("%s element needs %d nodes, got %d", topo.Name(), nv, len(fields)-1)
			}
			elements = append(elements, su2Element{topo: topo, nodes: fields[1 : nv+1], tag: tag})
		}
		return nil
	}

	for {
		line, ok := nextLine()
		if !ok {
			break
		}

		if strings.HasPrefix(line, "NDIME=") {
			fmt.Sscanf(line, "NDIME=%d", &ndime)
			if ndime != 2 && ndime != 3 {
				return nil, fmt.Errorf("unsupported dimension NDIME=%d", ndime)
			}

		} else if strings.HasPrefix(line, "NELEM=") {
			nelem, err := su2Count(line, "NELEM=")
			if err != nil {
				return nil, err
			}
			if err := readElements(nelem, 0); err != nil {
				return nil, err
			}

		} else if strings.HasPrefix(line, "NPOIN=") {
			if ndime == 0 {
				return nil, fmt.Errorf("NPOIN before NDIME")
			}
			npoin, err := su2Count(line, "NPOIN=")
			if err != nil {
				return nil, err
			}
			read := make(map[int][]float64)
			for i := 0; i < npoin; i++ {
				line, ok := nextLine()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading points")
				}
				fields := strings.Fields(line)
				if len(fields) < ndime {
					return nil, fmt.Errorf("point %d: expected %d coordinates, got %d", i, ndime, len(fields))
				}
				coords, err := parseFloats(fields[:ndime])
				if err != nil {
					return nil, fmt.Errorf("point %d: %v", i, err)
				}
				// An optional trailing field carries the point index
				ptID := i
				if len(fields) > ndime {
					if ptID, err = strconv.Atoi(fields[len(fields)-1]); err != nil || ptID < 0 || ptID >= npoin {
						return nil, fmt.Errorf("point %d: invalid index %q", i, fields[len(fields)-1])
					}
				}
				read[ptID] = coords
			}
			points = make([][]float64, npoin)
			for ptID, coords := range read {
				points[ptID] = coords
			}

		} else if strings.HasPrefix(line, "NMARK=") {
			nmark, err := su2Count(line, "NMARK=")
			if err != nil {
				return nil, err
			}

			for i := 0; i < nmark; i++ {
				markerLine, ok := nextLine()
				if !ok || !strings.HasPrefix(markerLine, "MARKER_TAG=") {
					return nil, fmt.Errorf("expected MARKER_TAG for marker %d", i)
				}
				elemLine, ok := nextLine()
				if !ok || !strings.HasPrefix(elemLine, "MARKER_ELEMS=") {
					return nil, fmt.Errorf("expected MARKER_ELEMS for marker %d", i)
				}
				nMarkerElems, err := su2Count(elemLine, "MARKER_ELEMS=")
				if err != nil {
					return nil, err
				}
				if err := readElements(nMarkerElems, i+1); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	if ndime == 0 {
		return nil, fmt.Errorf("missing NDIME")
	}

	b := newMeshBuilder()
	for i, p := range points {
		if p == nil {
			return nil, fmt.Errorf("point %d is missing", i)
		}
		if err := b.addNode(i, p); err != nil {
			return nil, err
		}
	}
	for _, e := range elements {
		if err := b.addElement(e.topo, e.nodes, e.tag); err != nil {
			return nil, err
		}
	}
	o := newOptions(opts)
	if o.Dims == 0 {
		o.Dims = ndime
	}
	return b.build(o)
}

// su2Count parses the non-negative count of a "KEY= n" header line. A
// second count, as in "NPOIN= 100 80", is ignored.
func su2Count(line, key string) (int, error) {
	fields := strings.Fields(strings.TrimPrefix(line, key))
	if len(fields) == 0 {
		return 0, fmt.Errorf("invalid %s count %q", strings.TrimSuffix(key, "="), line)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s count %q", strings.TrimSuffix(key, "="), line)
	}
	return n, nil
}
