package fat16

import (
	"io"
	"os"

	"github.com/gofat16/fat16/checkpoint"
)

// FileHandle is an open regular file: a read-only, seekable stream
// over one cluster chain's worth of bytes. It exclusively owns its
// copy of the backing cluster chain and the directory entry it was
// opened from; nothing about it is shared with other handles (§5).
type FileHandle struct {
	cr     clusterReader
	entry  DecodedEntry
	chain  ClusterChain
	data   []byte // entire chain materialized once, at open time
	offset int64
}

// OpenFile resolves path against cr's root and returns a FileHandle
// positioned at offset 0. It fails with ErrIsADirectory if path names
// a directory rather than a regular file.
func OpenFile(cr clusterReader, path string) (*FileHandle, error) {
	entry, err := resolvePath(cr, path)
	if err != nil {
		return nil, err
	}
	if entry.IsDir() {
		return nil, checkpoint.From(ErrIsADirectory)
	}

	var chain ClusterChain
	var data []byte
	if entry.Size > 0 {
		chain, err = cr.ResolveChain(entry.FirstCluster)
		if err != nil {
			return nil, err
		}
		data, err = cr.readChain(chain)
		if err != nil {
			return nil, err
		}
	}

	return &FileHandle{cr: cr, entry: entry, chain: chain, data: data}, nil
}

// Close releases the handle. FileHandle holds no OS resources of its
// own (the backing Device is owned elsewhere), so Close never fails.
func (f *FileHandle) Close() error {
	f.data = nil
	return nil
}

// Name returns the entry's display name (long name if present, else
// the short name).
func (f *FileHandle) Name() string {
	return f.entry.Name()
}

// Stat returns the file's directory entry as an os.FileInfo.
func (f *FileHandle) Stat() (os.FileInfo, error) {
	return f.entry.FileInfo(), nil
}

// Read implements io.Reader, honoring the file's recorded size as a
// hard EOF bound regardless of how much cluster data backs it (§4.6
// step 1 and 4): a read that starts at or past size returns io.EOF
// immediately, and a read is always truncated to size.
func (f *FileHandle) Read(p []byte) (int, error) {
	if f.offset >= int64(f.entry.Size) {
		return 0, io.EOF
	}

	remaining := int64(f.entry.Size) - f.offset
	n := copy(p, f.sliceAt(f.offset, remaining))
	f.offset += int64(n)
	return n, nil
}

// ReadAt implements io.ReaderAt without disturbing the handle's
// current offset.
func (f *FileHandle) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, checkpoint.From(ErrInvalidArgument)
	}
	if off >= int64(f.entry.Size) {
		return 0, io.EOF
	}

	remaining := int64(f.entry.Size) - off
	n := copy(p, f.sliceAt(off, remaining))
	var err error
	if n < len(p) {
		err = io.EOF
	}
	return n, err
}

// sliceAt returns up to want bytes of file content starting at
// byte-offset off, clamped to what data actually holds (a cluster
// chain is always allocated in whole clusters, so size may fall short
// of len(data)).
func (f *FileHandle) sliceAt(off, want int64) []byte {
	if off >= int64(len(f.data)) {
		return nil
	}
	end := off + want
	if end > int64(len(f.data)) {
		end = int64(len(f.data))
	}
	return f.data[off:end]
}

// Seek implements io.Seeker per §4.6's file_seek: SEEK_SET and
// SEEK_CUR accept any resulting offset in [0, size]; SEEK_END accepts
// only offset <= 0, i.e. no seeking past end-of-file. Any other
// whence is ErrInvalidArgument; a result outside that range is
// ErrNoSuchAddress.
func (f *FileHandle) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = f.offset + offset
	case io.SeekEnd:
		if offset > 0 {
			return 0, checkpoint.From(ErrNoSuchAddress)
		}
		next = int64(f.entry.Size) + offset
	default:
		return 0, checkpoint.From(ErrInvalidArgument)
	}

	if next < 0 || next > int64(f.entry.Size) {
		return 0, checkpoint.From(ErrNoSuchAddress)
	}
	f.offset = next
	return next, nil
}

// Readdir satisfies afero.File for a handle that was opened on a
// regular file; this reader never mounts a volume for writing, and a
// file is never a directory, so it always fails.
func (f *FileHandle) Readdir(int) ([]os.FileInfo, error) {
	return nil, checkpoint.From(ErrNotADirectory)
}

// Readdirnames mirrors Readdir's restriction.
func (f *FileHandle) Readdirnames(int) ([]string, error) {
	return nil, checkpoint.From(ErrNotADirectory)
}

func (f *FileHandle) Write(p []byte) (int, error)              { return 0, ErrNotSupported }
func (f *FileHandle) WriteAt(p []byte, off int64) (int, error) { return 0, ErrNotSupported }
func (f *FileHandle) WriteString(s string) (int, error)        { return 0, ErrNotSupported }
func (f *FileHandle) Truncate(size int64) error                { return ErrNotSupported }
func (f *FileHandle) Sync() error                              { return nil }
