package fat16

import (
	"os"

	"github.com/gofat16/fat16/checkpoint"
)

// DirHandle is an open directory: a cursor over the already-decoded
// entries of one directory region (root or sub). It exclusively owns
// its entry list and the long-name strings already reassembled into
// it (§5).
type DirHandle struct {
	self    DecodedEntry
	entries []DecodedEntry
	pos     int
}

// OpenDir resolves path against cr's root and returns a DirHandle over
// its entries. It fails with ErrNotADirectory if path names a regular
// file rather than a directory.
func OpenDir(cr clusterReader, path string) (*DirHandle, error) {
	entry, err := resolvePath(cr, path)
	if err != nil {
		return nil, err
	}
	if !entry.IsDir() {
		return nil, checkpoint.From(ErrNotADirectory)
	}

	var entries []DecodedEntry
	if entry.ShortName == "" && !entry.HasLongName {
		entries, err = listDirectory(cr, true, 0)
	} else {
		entries, err = listDirectory(cr, false, entry.FirstCluster)
	}
	if err != nil {
		return nil, err
	}

	return &DirHandle{self: entry, entries: entries}, nil
}

// Next returns the next entry in the directory, or ok == false once
// every entry has been returned (§4.7's dir_read end-of-directory
// case). It never returns an error on its own; a directory, once
// opened, cannot fail to enumerate further.
func (d *DirHandle) Next() (DecodedEntry, bool) {
	if d.pos >= len(d.entries) {
		return DecodedEntry{}, false
	}
	e := d.entries[d.pos]
	d.pos++
	return e, true
}

// Rewind resets the cursor to the first entry.
func (d *DirHandle) Rewind() {
	d.pos = 0
}

// Close releases the handle's decoded entry list.
func (d *DirHandle) Close() error {
	d.entries = nil
	return nil
}

// Readdir returns up to count remaining entries as os.FileInfo,
// advancing the cursor. count <= 0 returns every remaining entry.
func (d *DirHandle) Readdir(count int) ([]os.FileInfo, error) {
	var out []os.FileInfo
	for count <= 0 || len(out) < count {
		e, ok := d.Next()
		if !ok {
			break
		}
		out = append(out, e.FileInfo())
	}
	return out, nil
}

// Readdirnames is Readdir reduced to names.
func (d *DirHandle) Readdirnames(count int) ([]string, error) {
	infos, err := d.Readdir(count)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(infos))
	for i, fi := range infos {
		names[i] = fi.Name()
	}
	return names, nil
}

// Name returns the directory's display name ("" for the root).
func (d *DirHandle) Name() string {
	return d.self.Name()
}

// Stat returns the directory's own entry as an os.FileInfo.
func (d *DirHandle) Stat() (os.FileInfo, error) {
	return d.self.FileInfo(), nil
}

func (d *DirHandle) Read([]byte) (int, error)           { return 0, checkpoint.From(ErrIsADirectory) }
func (d *DirHandle) ReadAt([]byte, int64) (int, error)  { return 0, checkpoint.From(ErrIsADirectory) }
func (d *DirHandle) Seek(int64, int) (int64, error)     { return 0, checkpoint.From(ErrIsADirectory) }
func (d *DirHandle) Write([]byte) (int, error)          { return 0, ErrNotSupported }
func (d *DirHandle) WriteAt([]byte, int64) (int, error) { return 0, ErrNotSupported }
func (d *DirHandle) WriteString(string) (int, error)    { return 0, ErrNotSupported }
func (d *DirHandle) Truncate(int64) error               { return ErrNotSupported }
func (d *DirHandle) Sync() error                        { return nil }
