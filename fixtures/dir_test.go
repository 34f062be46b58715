package fixtures

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fixtured/schema"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func TestSuffixes(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"foo.txt", []string{".txt"}},
		{"data.protobuf", []string{".protobuf"}},
		{"data.ver.protobuf", []string{".ver", ".protobuf"}},
		{"data.protobuf.gz", []string{".protobuf", ".gz"}},
		{"README", nil},
		{".protobuf", nil},
		{".hidden.txt", []string{".txt"}},
		{"data.", nil},
		{"a..b", []string{".", ".b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Suffixes(tt.name)); diff != "" {
				t.Errorf("Suffixes(%q) mismatch (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func newTestDir(t *testing.T, opts ...Option) *Dir {
	t.Helper()

	root := t.TempDir()
	for _, name := range []string{"foo.txt", "data.protobuf", "data.ver.protobuf", "data.txt", ".protobuf"} {
		assert.NilError(t, os.WriteFile(filepath.Join(root, name), []byte(name), 0o644))
	}
	assert.NilError(t, os.Mkdir(filepath.Join(root, "sub.protobuf"), 0o755))
	assert.NilError(t, os.WriteFile(filepath.Join(root, "sub.protobuf", "inner.txt"), nil, 0o644))

	d, err := NewDir(root, opts...)
	assert.NilError(t, err)
	return d
}

func TestDir_Open(t *testing.T) {
	d := newTestDir(t)

	f, err := d.Open("foo.txt")
	assert.NilError(t, err)
	defer f.Close()
	assert.Equal(t, f.Name, "foo.txt")
	assert.Equal(t, f.Path, filepath.Join(d.Root(), "foo.txt"))
	assert.Equal(t, f.Info.Size(), int64(len("foo.txt")))
	assert.Equal(t, len(f.Header), 0)

	data, err := io.ReadAll(f)
	assert.NilError(t, err)
	assert.Equal(t, string(data), "foo.txt")
}

func TestDir_Open_Changed(t *testing.T) {
	d := newTestDir(t)
	path := filepath.Join(d.Root(), "foo.txt")

	f, err := d.Open("foo.txt")
	assert.NilError(t, err)
	f.Close()

	mtime := time.Date(2021, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.NilError(t, os.WriteFile(path, []byte("rewritten fixture"), 0o644))
	assert.NilError(t, os.Chtimes(path, mtime, mtime))

	f, err = d.Open("foo.txt")
	assert.NilError(t, err)
	defer f.Close()
	assert.Equal(t, f.Info.Size(), int64(len("rewritten fixture")))
	assert.Assert(t, f.Info.ModTime().Equal(mtime))
}

func TestDir_Open_Marker(t *testing.T) {
	d := newTestDir(t)

	for _, name := range []string{"data.protobuf", "data.ver.protobuf"} {
		f, err := d.Open(name)
		assert.NilError(t, err)
		f.Close()
		assert.DeepEqual(t, f.Header, map[string]string{HeaderNumEntries: "3"})
	}

	f, err := d.Open(".protobuf")
	assert.NilError(t, err)
	f.Close()
	assert.Equal(t, len(f.Header), 0)
}

func TestDir_Open_Options(t *testing.T) {
	d := newTestDir(t, WithMarker(".txt"), WithNumEntries(10))

	f, err := d.Open("data.txt")
	assert.NilError(t, err)
	f.Close()
	assert.Equal(t, f.Header[HeaderNumEntries], "10")

	f, err = d.Open("data.protobuf")
	assert.NilError(t, err)
	f.Close()
	assert.Equal(t, len(f.Header), 0)
}

func TestDir_Open_NotFound(t *testing.T) {
	d := newTestDir(t)

	names := []string{
		"missing.txt",
		"sub.protobuf",
		"sub.protobuf/inner.txt",
		"",
		".",
		"..",
		"../" + filepath.Base(d.Root()) + "/foo.txt",
		"foo\x00.txt",
		`sub.protobuf\inner.txt`,
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			_, err := d.Open(name)
			assert.Assert(t, errors.Is(err, schema.ErrNotFound), "got %v", err)
		})
	}
}

func TestDir_Open_Symlink(t *testing.T) {
	d := newTestDir(t)
	assert.NilError(t, os.Symlink(filepath.Join(d.Root(), "foo.txt"), filepath.Join(d.Root(), "link.protobuf")))
	assert.NilError(t, os.Symlink(filepath.Join(d.Root(), "gone.txt"), filepath.Join(d.Root(), "dangling.txt")))

	f, err := d.Open("link.protobuf")
	assert.NilError(t, err)
	f.Close()
	assert.Equal(t, f.Header[HeaderNumEntries], "3")

	_, err = d.Open("dangling.txt")
	assert.Assert(t, errors.Is(err, schema.ErrNotFound))
}
