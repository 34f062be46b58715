// Package fixtures resolves request file names to fixture files in a base directory.
package fixtures

import (
	"fixtured/schema"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	HeaderNumEntries = "X-Num-Entries"

	DefaultMarker     = ".protobuf"
	DefaultNumEntries = 3
)

// Dir is a directory of fixture files.
type Dir struct {
	root       string
	marker     string
	numEntries int
}

type Option func(d *Dir)

// WithMarker sets the extension which adds the X-Num-Entries header.
func WithMarker(marker string) Option {
	return func(d *Dir) { d.marker = marker }
}

// WithNumEntries sets the X-Num-Entries header value.
func WithNumEntries(n int) Option {
	return func(d *Dir) { d.numEntries = n }
}

func NewDir(root string, opts ...Option) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	d := &Dir{
		root:       abs,
		marker:     DefaultMarker,
		numEntries: DefaultNumEntries,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Dir) Root() string {
	return d.root
}

// File is an open fixture file. The caller must close it.
type File struct {
	*os.File
	Name   string
	Path   string
	Info   os.FileInfo
	Header map[string]string
}

// Open opens a single path segment as a regular file in the directory.
// The file is stat'ed on every call, so changed fixtures are picked up.
// Any failure is reported as schema.ErrNotFound.
func (d *Dir) Open(name string) (*File, error) {
	if !validName(name) {
		return nil, schema.NewNotFoundError("Not Found")
	}

	path := filepath.Join(d.root, name)
	file, err := os.Open(path)
	if err != nil {
		return nil, schema.NewNotFoundError("Not Found")
	}
	info, err := file.Stat()
	if err != nil || !info.Mode().IsRegular() {
		file.Close()
		return nil, schema.NewNotFoundError("Not Found")
	}

	f := &File{
		File:   file,
		Name:   name,
		Path:   path,
		Info:   info,
		Header: map[string]string{},
	}
	if d.HasMarker(name) {
		f.Header[HeaderNumEntries] = strconv.Itoa(d.numEntries)
	}
	return f, nil
}

// HasMarker reports whether the marker is one of the name suffixes.
func (d *Dir) HasMarker(name string) bool {
	for _, suffix := range Suffixes(name) {
		if suffix == d.marker {
			return true
		}
	}
	return false
}

func validName(name string) bool {
	switch name {
	case "", ".", "..":
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}

// Suffixes returns the extension chain of a file name,
// "data.ver.protobuf" has [".ver", ".protobuf"].
// Leading dots belong to the stem, and a name ending with a dot has no suffixes.
func Suffixes(name string) []string {
	if strings.HasSuffix(name, ".") {
		return nil
	}

	parts := strings.Split(strings.TrimLeft(name, "."), ".")
	if len(parts) < 2 {
		return nil
	}

	suffixes := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		suffixes = append(suffixes, "."+part)
	}
	return suffixes
}
