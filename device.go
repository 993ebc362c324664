package fat16

import (
	"io"
	"os"

	"github.com/gofat16/fat16/checkpoint"
)

// SectorSize is the logical sector size this reader understands. FAT16
// volumes may declare 1024, 2048 or 4096 bytes per sector in their BPB,
// but every sector-addressed read in this package is hard-coded to 512 —
// OpenVolume rejects any other declared size explicitly (see DESIGN.md
// for the rationale).
const SectorSize = 512

// Device is a fixed-512-byte-sector random-access reader over a raw
// volume image. It performs no caching: every ReadSectors call issues a
// fresh positioned read against the backing image.
type Device struct {
	r       io.ReaderAt
	closer  io.Closer
	sectors uint32
}

// OpenDevice opens the regular file at path as a sector-addressable
// device, sized from the file's length.
func OpenDevice(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrNotFound)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, checkpoint.Wrap(err, ErrInvalidArgument)
	}

	return &Device{
		r:       f,
		closer:  f,
		sectors: uint32(info.Size() / SectorSize),
	}, nil
}

// NewDevice wraps an already-open random-access reader (typically a
// *bytes.Reader over a synthetic in-memory image in tests) as a Device.
// sizeBytes is the total addressable size of r; it is truncated down to
// a whole number of sectors.
func NewDevice(r io.ReaderAt, sizeBytes int64) *Device {
	return &Device{
		r:       r,
		sectors: uint32(sizeBytes / SectorSize),
	}
}

// Close releases the underlying file, if this Device owns one.
func (d *Device) Close() error {
	if d.closer == nil {
		return nil
	}
	return checkpoint.Wrap(d.closer.Close(), ErrInvalidArgument)
}

// ReadSectors reads sectorsToRead whole sectors starting at firstSector
// into out, which must be at least sectorsToRead*SectorSize bytes long.
// It returns the number of sectors actually read. No sector is cached;
// every call performs a fresh positioned read.
func (d *Device) ReadSectors(firstSector uint32, out []byte, sectorsToRead uint32) (uint32, error) {
	if d == nil || d.r == nil || out == nil {
		return 0, checkpoint.From(ErrInvalidArgument)
	}
	if sectorsToRead < 1 {
		return 0, checkpoint.From(ErrOutOfRange)
	}
	if uint64(firstSector)+uint64(sectorsToRead) > uint64(d.sectors) {
		return 0, checkpoint.From(ErrOutOfRange)
	}
	if uint64(len(out)) < uint64(sectorsToRead)*SectorSize {
		return 0, checkpoint.From(ErrInvalidArgument)
	}

	need := int(sectorsToRead) * SectorSize
	n, err := d.r.ReadAt(out[:need], int64(firstSector)*SectorSize)
	if err != nil && err != io.EOF {
		return uint32(n / SectorSize), checkpoint.Wrap(err, ErrOutOfRange)
	}
	if n < need {
		return uint32(n / SectorSize), checkpoint.From(ErrOutOfRange)
	}
	return sectorsToRead, nil
}

// Sectors reports the total number of addressable sectors in the image.
func (d *Device) Sectors() uint32 {
	return d.sectors
}
