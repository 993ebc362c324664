package fat16

import (
	"os"
	"time"

	"github.com/spf13/afero"
)

// Fs adapts a Volume to afero.Fs, so any code already written against
// afero can browse a FAT16 image read-only. Every mutating method
// reports ErrNotSupported: this reader never writes to the backing
// image (spec's Non-goals exclude a writable filesystem).
type Fs struct {
	volume *Volume
}

// NewFs wraps volume as an afero.Fs.
func NewFs(volume *Volume) *Fs {
	return &Fs{volume: volume}
}

// Open opens name for reading, returning an afero.File usable for
// either Read (regular file) or Readdir (directory).
func (f *Fs) Open(name string) (afero.File, error) {
	entry, err := resolvePath(f.volume, name)
	if err != nil {
		return nil, err
	}
	if entry.IsDir() {
		return OpenDir(f.volume, name)
	}
	return OpenFile(f.volume, name)
}

// OpenFile ignores flag and perm beyond requiring a read-only open;
// any write flag is rejected with ErrNotSupported.
func (f *Fs) OpenFile(name string, flag int, _ os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) != 0 {
		return nil, ErrNotSupported
	}
	return f.Open(name)
}

// Stat resolves name and returns its os.FileInfo without opening it.
func (f *Fs) Stat(name string) (os.FileInfo, error) {
	entry, err := resolvePath(f.volume, name)
	if err != nil {
		return nil, err
	}
	return entry.FileInfo(), nil
}

// Name identifies the afero.Fs implementation.
func (f *Fs) Name() string {
	return "fat16.Fs(" + f.volume.Label() + ")"
}

func (f *Fs) Create(string) (afero.File, error)          { return nil, ErrNotSupported }
func (f *Fs) Mkdir(string, os.FileMode) error            { return ErrNotSupported }
func (f *Fs) MkdirAll(string, os.FileMode) error         { return ErrNotSupported }
func (f *Fs) Remove(string) error                        { return ErrNotSupported }
func (f *Fs) RemoveAll(string) error                     { return ErrNotSupported }
func (f *Fs) Rename(string, string) error                { return ErrNotSupported }
func (f *Fs) Chmod(string, os.FileMode) error            { return ErrNotSupported }
func (f *Fs) Chown(string, int, int) error               { return ErrNotSupported }
func (f *Fs) Chtimes(string, time.Time, time.Time) error { return ErrNotSupported }
