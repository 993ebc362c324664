package fat16

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/gofat16/fat16/checkpoint"
)

// Volume is an opened, validated FAT16 volume. It is immutable after
// OpenVolume returns and may be shared read-only by any number of
// FileHandles and DirHandles derived from it; the Device it was opened
// over must outlive the Volume.
type Volume struct {
	device      *Device
	firstSector uint32
	bpb         BootParams

	fat []byte // in-memory copy of FAT #1

	fatStart     uint32
	rootDirStart uint32
	dataStart    uint32
	numClusters  uint32
}

// Option configures OpenVolume.
type Option func(*openConfig)

type openConfig struct {
	skipChecks bool
}

// WithSkipValidation bypasses the non-essential structural checks (jump
// boot instruction, media byte, boot-sector signature) so that
// not-quite-conformant images can still be mounted. It never bypasses
// the two-FAT byte-equality check or the 512-byte sector size
// restriction, since the read path's arithmetic depends on both.
func WithSkipValidation() Option {
	return func(c *openConfig) {
		c.skipChecks = true
	}
}

// OpenVolume reads the boot sector at firstSector from device, validates
// it, loads the FAT (cross-checking both copies when two are present),
// and returns a ready-to-use Volume.
func OpenVolume(device *Device, firstSector uint32, opts ...Option) (*Volume, error) {
	if device == nil {
		return nil, checkpoint.From(ErrInvalidArgument)
	}

	cfg := openConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	sector := make([]byte, SectorSize)
	if _, err := device.ReadSectors(firstSector, sector, 1); err != nil {
		return nil, checkpoint.Wrap(err, ErrInvalidFormat)
	}

	bpb, err := decodeBPB(sector, cfg.skipChecks)
	if err != nil {
		return nil, err
	}

	fatStart := firstSector + uint32(bpb.ReservedSectorCount)
	fatSizeSectors := uint32(bpb.FATSizeSectors)
	if fatSizeSectors == 0 {
		return nil, checkpoint.From(ErrInvalidFormat)
	}

	fat1 := make([]byte, fatSizeSectors*SectorSize)
	if _, err := device.ReadSectors(fatStart, fat1, fatSizeSectors); err != nil {
		return nil, checkpoint.Wrap(err, ErrInvalidFormat)
	}

	if bpb.NumberOfFATs == 2 {
		fat2 := make([]byte, fatSizeSectors*SectorSize)
		if _, err := device.ReadSectors(fatStart+fatSizeSectors, fat2, fatSizeSectors); err != nil {
			return nil, checkpoint.Wrap(err, ErrInvalidFormat)
		}
		if !bytes.Equal(fat1, fat2) {
			return nil, checkpoint.From(ErrInvalidFormat)
		}
	}

	rootDirStart := fatStart + uint32(bpb.NumberOfFATs)*fatSizeSectors
	dataStart := firstSector + uint32(bpb.HiddenSectorCount) + uint32(bpb.ReservedSectorCount) +
		uint32(bpb.NumberOfFATs)*fatSizeSectors + bpb.rootDirSectors()

	dataSectors := bpb.TotalSectors - (dataStart - firstSector)
	numClusters := dataSectors / uint32(bpb.SectorsPerCluster)

	return &Volume{
		device:       device,
		firstSector:  firstSector,
		bpb:          bpb,
		fat:          fat1,
		fatStart:     fatStart,
		rootDirStart: rootDirStart,
		dataStart:    dataStart,
		numClusters:  numClusters,
	}, nil
}

// Close releases the in-memory FAT copy. It does not close the
// underlying Device, which the caller owns.
func (v *Volume) Close() error {
	v.fat = nil
	return nil
}

// Label returns the volume label recorded in the extended BPB.
func (v *Volume) Label() string {
	return v.bpb.volumeLabel
}

// String renders a short human-readable summary of the volume's
// geometry, suitable for diagnostics or logging by a caller.
func (v *Volume) String() string {
	totalBytes := uint64(v.bpb.TotalSectors) * uint64(v.bpb.BytesPerSector)
	fatBytes := uint64(len(v.fat))
	label := v.bpb.volumeLabel
	if label == "" {
		label = "(no label)"
	}
	return fmt.Sprintf("FAT16 volume %q: %s total, %d FAT(s) of %s, %d clusters of %d bytes",
		label, humanize.Bytes(totalBytes), v.bpb.NumberOfFATs, humanize.Bytes(fatBytes),
		v.numClusters, v.bpb.bytesPerCluster())
}

// bytesPerCluster is sectorsPerCluster * bytesPerSector, used to size
// the buffer readChain reads a cluster chain into.
func (v *Volume) bytesPerCluster() uint32 {
	return v.bpb.bytesPerCluster()
}

// sectorsPerCluster is how many sectors readChain reads per cluster.
func (v *Volume) sectorsPerCluster() uint32 {
	return uint32(v.bpb.SectorsPerCluster)
}

// readRootDir reads the fixed-size root directory region as a
// contiguous byte buffer of RootEntryCount 32-byte entries.
func (v *Volume) readRootDir() ([]byte, error) {
	n := v.bpb.rootDirSectors()
	buf := make([]byte, n*SectorSize)
	if _, err := v.device.ReadSectors(v.rootDirStart, buf, n); err != nil {
		return nil, checkpoint.Wrap(err, ErrInvalidFormat)
	}
	return buf, nil
}

// readChain reads every cluster in chain into one contiguous buffer, in
// chain order. Guards against a corrupt chain implying an allocation
// larger than the volume itself.
func (v *Volume) readChain(chain ClusterChain) ([]byte, error) {
	bpc := v.bytesPerCluster()
	total := uint64(len(chain)) * uint64(bpc)
	if total > uint64(v.bpb.TotalSectors)*uint64(v.bpb.BytesPerSector) {
		return nil, checkpoint.From(ErrNoMemory)
	}

	buf := make([]byte, total)
	spc := v.sectorsPerCluster()
	for i, cluster := range chain {
		sector := v.clusterFirstSector(cluster)
		dst := buf[uint64(i)*uint64(bpc) : uint64(i+1)*uint64(bpc)]
		if _, err := v.device.ReadSectors(sector, dst, spc); err != nil {
			return nil, checkpoint.Wrap(err, ErrInvalidFormat)
		}
	}
	return buf, nil
}
