package fat16

import (
	"os"
	"time"
)

// FileInfo adapts a DecodedEntry to os.FileInfo, for callers that want
// the standard library's view of a directory entry rather than the
// richer DecodedEntry directly.
func (e DecodedEntry) FileInfo() os.FileInfo {
	return fileInfo{e}
}

type fileInfo struct {
	entry DecodedEntry
}

func (fi fileInfo) Name() string {
	return fi.entry.Name()
}

func (fi fileInfo) Size() int64 {
	return int64(fi.entry.Size)
}

func (fi fileInfo) Mode() os.FileMode {
	mode := os.FileMode(0o444)
	if !fi.entry.IsReadOnly {
		mode = 0o644
	}
	if fi.entry.IsDir() {
		mode |= os.ModeDir
	}
	return mode
}

func (fi fileInfo) ModTime() time.Time {
	return fi.entry.ModTime
}

func (fi fileInfo) IsDir() bool {
	return fi.entry.IsDir()
}

func (fi fileInfo) Sys() interface{} {
	return fi.entry
}
