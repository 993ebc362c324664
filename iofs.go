package fat16

import (
	"io"
	"io/fs"
)

// GoFs adapts a Volume to io/fs.FS, for callers that want the standard
// library's filesystem abstraction rather than afero's.
type GoFs struct {
	volume *Volume
}

// NewGoFs wraps volume as an fs.FS.
func NewGoFs(volume *Volume) *GoFs {
	return &GoFs{volume: volume}
}

// Open implements fs.FS.
func (g *GoFs) Open(name string) (fs.File, error) {
	entry, err := resolvePath(g.volume, name)
	if err != nil {
		return nil, toFsPathError("open", name, err)
	}
	if entry.IsDir() {
		d, err := OpenDir(g.volume, name)
		if err != nil {
			return nil, toFsPathError("open", name, err)
		}
		return goDir{d}, nil
	}
	f, err := OpenFile(g.volume, name)
	if err != nil {
		return nil, toFsPathError("open", name, err)
	}
	return goFile{f}, nil
}

// goFile narrows *FileHandle down to fs.File's three methods.
type goFile struct {
	*FileHandle
}

func (g goFile) Stat() (fs.FileInfo, error) { return g.FileHandle.Stat() }

// goDir additionally implements fs.ReadDirFile.
type goDir struct {
	*DirHandle
}

func (g goDir) Stat() (fs.FileInfo, error) { return g.DirHandle.Stat() }

func (g goDir) ReadDir(n int) ([]fs.DirEntry, error) {
	infos, err := g.DirHandle.Readdir(n)
	if err != nil {
		return nil, err
	}
	out := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		out[i] = goDirEntry{info}
	}
	if n > 0 && len(out) == 0 {
		return out, io.EOF
	}
	return out, nil
}

type goDirEntry struct {
	fs.FileInfo
}

func (e goDirEntry) Type() fs.FileMode          { return e.FileInfo.Mode().Type() }
func (e goDirEntry) Info() (fs.FileInfo, error) { return e.FileInfo, nil }

// toFsPathError wraps one of this package's sentinel errors as an
// *fs.PathError, matching what io/fs consumers (fstest.TestFS among
// them) expect an fs.FS to report.
func toFsPathError(op, path string, err error) error {
	return &fs.PathError{Op: op, Path: path, Err: err}
}
