package msh

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ext is the file extension of MSH documents
const Ext = ".msh"

// NormalizeName appends ".msh" unless name already ends in exactly ".msh"
func NormalizeName(name string) string {
	if strings.TrimSpace(filepath.Ext(name)) != Ext {
		name += Ext
	}
	return name
}

func checkName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty file name", ErrInvalidArgument)
	case strings.HasSuffix(name, "/") || strings.HasSuffix(name, string(filepath.Separator)):
		return fmt.Errorf("%w: %q names a directory", ErrInvalidArgument, name)
	}
	return nil
}

// Save certifies m and writes it to name (extension normalized to .msh),
// returning the path written. The document is written to a temporary file
// next to the target and renamed into place. A failed save leaves nothing
// under the target name.
func Save(name string, m *Mesh, opts ...EncoderOption) (path string, err error) {
	if err = checkName(name); err != nil {
		return
	}
	if err = Certify(m); err != nil {
		return
	}
	path = NormalizeName(name)
	if fi, statErr := os.Stat(path); statErr == nil && fi.IsDir() {
		return "", fmt.Errorf("%w: %q is a directory", ErrInvalidArgument, path)
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	var file *os.File
	if file, err = os.CreateTemp(dir, "."+base+".*"); err != nil {
		return "", err
	}
	tmpName := file.Name()
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpName)
			path = ""
		}
	}()

	opts = append([]EncoderOption{WithComment(path + "; created by gomsh")}, opts...)
	opts = append(opts, Certified())
	if err = NewEncoder(file, opts...).Encode(m); err != nil {
		return
	}
	if err = file.Close(); err != nil {
		return
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return
	}
	err = os.Rename(tmpName, path)
	return
}

// Load reads and decodes the MSH document at name
func Load(name string) (*Mesh, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}
