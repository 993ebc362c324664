package fat16

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/gofat16/fat16/checkpoint"
)

// rawBPB mirrors the 512-byte FAT12/16 boot sector field-for-field, in
// on-disk order. Decoded with encoding/binary rather than relied on for
// its Go memory layout — see bpbFAT16Specific below for the 26 bytes
// that sit at the same offset as FAT32's extended BPB and mean something
// different here.
type rawBPB struct {
	BSJumpBoot          [3]byte
	BSOEMName           [8]byte
	BytesPerSector      uint16
	SectorsPerCluster   uint8
	ReservedSectorCount uint16
	NumFATs             uint8
	RootEntryCount      uint16
	TotalSectors16      uint16
	Media               byte
	FATSize16           uint16
	SectorsPerTrack     uint16
	NumberOfHeads       uint16
	HiddenSectorCount   uint32
	TotalSectors32      uint32
	FAT16Specific       bpbFAT16Specific
	_                   [448]byte
	Signature           uint16
}

// bpbFAT16Specific is the FAT12/16 extended BPB: the 26 bytes immediately
// following the common fields. None of it is load-bearing for the read
// path; it is decoded purely to surface Volume.Label and the filesystem
// type string for diagnostics.
type bpbFAT16Specific struct {
	DriveNumber    byte
	Reserved1      byte
	BootSignature  byte
	VolumeID       uint32
	VolumeLabel    [11]byte
	FileSystemType [8]byte
}

// BootParams is the decoded subset of the BPB this reader consumes,
// plus the informational fields it validates but never acts on.
type BootParams struct {
	BytesPerSector      uint16
	SectorsPerCluster   uint8
	ReservedSectorCount uint16
	NumberOfFATs        uint8
	RootEntryCount      uint16
	FATSizeSectors      uint16
	HiddenSectorCount   uint32
	TotalSectors        uint32

	oemName        string
	jumpBoot       [3]byte
	media          byte
	bootSignature  byte
	volumeLabel    string
	fileSystemType string
}

var validSectorsPerCluster = map[uint8]bool{
	1: true, 2: true, 4: true, 8: true, 16: true, 32: true, 64: true, 128: true,
}

// decodeBPB reads a 512-byte boot sector and extracts the fields this
// reader relies on, rejecting structurally impossible BPBs. skipChecks
// bypasses only the jump-boot, media-byte and signature checks; the
// sectors-per-cluster, FAT count, sector size, reserved-sector and
// root-directory alignment checks always apply.
func decodeBPB(sector []byte, skipChecks bool) (BootParams, error) {
	var raw rawBPB
	if err := binary.Read(bytes.NewReader(sector), binary.LittleEndian, &raw); err != nil {
		return BootParams{}, checkpoint.Wrap(err, ErrInvalidFormat)
	}

	if !validSectorsPerCluster[raw.SectorsPerCluster] {
		return BootParams{}, checkpoint.From(ErrInvalidFormat)
	}
	if raw.NumFATs != 1 && raw.NumFATs != 2 {
		return BootParams{}, checkpoint.From(ErrInvalidFormat)
	}

	if !skipChecks {
		jumpOK := (raw.BSJumpBoot[0] == 0xEB && raw.BSJumpBoot[2] == 0x90) || raw.BSJumpBoot[0] == 0xE9
		if !jumpOK {
			return BootParams{}, checkpoint.From(ErrInvalidFormat)
		}
		if raw.Media != 0xF0 && !(raw.Media >= 0xF8 && raw.Media <= 0xFF) {
			return BootParams{}, checkpoint.From(ErrInvalidFormat)
		}
		if raw.Signature != 0xAA55 {
			return BootParams{}, checkpoint.From(ErrInvalidFormat)
		}
	}

	if raw.BytesPerSector != SectorSize {
		// Open Question 5: the BPB permits 1024/2048/4096, but every
		// sector calculation in this package is hard-coded to 512.
		// Reject rather than silently mis-address sectors.
		return BootParams{}, checkpoint.From(ErrInvalidFormat)
	}
	if raw.ReservedSectorCount == 0 {
		return BootParams{}, checkpoint.From(ErrInvalidFormat)
	}
	if (uint32(raw.RootEntryCount)*32)%uint32(raw.BytesPerSector) != 0 {
		return BootParams{}, checkpoint.From(ErrInvalidFormat)
	}

	totalSectors := uint32(raw.TotalSectors16)
	if totalSectors == 0 {
		totalSectors = raw.TotalSectors32
	}

	return BootParams{
		BytesPerSector:      raw.BytesPerSector,
		SectorsPerCluster:   raw.SectorsPerCluster,
		ReservedSectorCount: raw.ReservedSectorCount,
		NumberOfFATs:        raw.NumFATs,
		RootEntryCount:      raw.RootEntryCount,
		FATSizeSectors:      raw.FATSize16,
		HiddenSectorCount:   raw.HiddenSectorCount,
		TotalSectors:        totalSectors,

		oemName:        trimPadded(raw.BSOEMName[:]),
		jumpBoot:       raw.BSJumpBoot,
		media:          raw.Media,
		bootSignature:  raw.FAT16Specific.BootSignature,
		volumeLabel:    trimPadded(raw.FAT16Specific.VolumeLabel[:]),
		fileSystemType: trimPadded(raw.FAT16Specific.FileSystemType[:]),
	}, nil
}

func trimPadded(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}

// rootDirSectors is the number of sectors occupied by the fixed-size
// root directory region.
func (b BootParams) rootDirSectors() uint32 {
	return (uint32(b.RootEntryCount)*32 + uint32(b.BytesPerSector) - 1) / uint32(b.BytesPerSector)
}

// bytesPerCluster is sectorsPerCluster * bytesPerSector.
func (b BootParams) bytesPerCluster() uint32 {
	return uint32(b.SectorsPerCluster) * uint32(b.BytesPerSector)
}
