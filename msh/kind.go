package msh

import (
	"fmt"
	"strings"
)

// Kind selects the mesh variant and which assembler path runs
type Kind uint8

const (
	EuclideanMesh Kind = iota
	EllipsoidMesh
	EuclideanGrid
	EllipsoidGrid
)

var kindNames = [...]string{"euclidean-mesh", "ellipsoid-mesh", "euclidean-grid", "ellipsoid-grid"}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

func (k Kind) Valid() bool { return int(k) < len(kindNames) }

func (k Kind) IsGrid() bool { return k == EuclideanGrid || k == EllipsoidGrid }

func (k Kind) IsEllipsoid() bool { return k == EllipsoidMesh || k == EllipsoidGrid }

// ParseKind accepts the kind names in any case, e.g. "EUCLIDEAN-MESH"
func ParseKind(s string) (Kind, error) {
	label := strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if label == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mesh kind %q", ErrInvalidArgument, s)
}
