package readers

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/notargets/gomsh/msh"
)

// ReadMeshFile reads a mesh file based on extension. A ".msh" file is either
// Gmsh or native MSH, told apart by its first line.
func ReadMeshFile(filename string, opts ...Option) (*msh.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".neu":
		return ReadGambitNeutral(filename, opts...)
	case ".su2":
		return ReadSU2(filename, opts...)
	case ".msh":
		isGmsh, err := isGmshFile(filename)
		if err != nil {
			return nil, err
		}
		if isGmsh {
			return ReadGmsh22(filename, opts...)
		}
		return msh.Load(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

func isGmshFile(filename string) (bool, error) {
	file, err := os.Open(filename)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		return line == "$MeshFormat", nil
	}
	return false, scanner.Err()
}
