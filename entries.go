package fat16

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/gofat16/fat16/checkpoint"
)

// Directory entry attribute bits (spec.md §3).
const (
	AttrReadOnly  = 0x01
	AttrHidden    = 0x02
	AttrSystem    = 0x04
	AttrVolumeID  = 0x08
	AttrDirectory = 0x10
	AttrArchive   = 0x20
	// AttrLFN is the sentinel attribute value (all four low bits set)
	// that marks a 32-byte slot as an LFN fragment rather than an SFN.
	AttrLFN = AttrReadOnly | AttrHidden | AttrSystem | AttrVolumeID
)

// sfnRaw is the 32-byte packed short-name directory entry, field order
// exactly as spec.md §3 and the original boot_sector_fat/SFN layout
// describe it.
type sfnRaw struct {
	Name           [11]byte
	Attr           byte
	Reserved       byte
	CreateTimeFine byte
	CreateTime     uint16
	CreateDate     uint16
	LastAccessDate uint16
	FirstClusterHi uint16
	ModTime        uint16
	ModDate        uint16
	FirstClusterLo uint16
	Size           uint32
}

// lfnRaw is the 32-byte packed long-name fragment slot: sequence byte,
// three UTF-16 fragments (5+6+2 code units), checksum, attribute.
type lfnRaw struct {
	Sequence       byte
	Name1          [5]uint16
	Attr           byte
	Type           byte
	Checksum       byte
	Name2          [6]uint16
	FirstClusterLo uint16
	Name3          [2]uint16
}

// sequenceLast marks the LFN slot holding the final (highest-sequence)
// fragment of a long name — the logical first slot written on disk.
// sequenceOrdinalMask isolates the 1-based ordinal (low 5 bits) from
// the rest of the sequence byte.
const (
	sequenceLast        = 0x40
	sequenceOrdinalMask = 0x1F
)

// DecodedEntry is the logical result of walking one directory slot run:
// an SFN, optionally preceded by a reassembled long name.
type DecodedEntry struct {
	ShortName    string // normalized NAME.EXT, no padding
	LongName     string // reassembled long name, case preserved; "" if none
	HasLongName  bool
	Size         uint32
	FirstCluster uint16
	ModTime      time.Time

	IsReadOnly bool
	IsHidden   bool
	IsSystem   bool
	IsArchived bool

	attr byte
}

// IsDir reports whether the entry is a directory, testing the directory
// attribute bit. This resolves Open Question 1: the original reader
// tested size==0, which misclassifies any zero-byte regular file (and
// some volume-label entries) as a directory. See legacySizeIsDirBug.
func (e DecodedEntry) IsDir() bool {
	return e.attr&AttrDirectory != 0
}

// IsVolumeLabel reports whether the entry is the volume label, not a
// real file or directory.
func (e DecodedEntry) IsVolumeLabel() bool {
	return e.attr&AttrVolumeID != 0
}

// legacySizeIsDirBug reproduces the original reader's is_directory test
// (entry.size == 0). It exists only so a regression test can demonstrate
// why IsDir no longer uses it; nothing in this package calls it.
func (e DecodedEntry) legacySizeIsDirBug() bool {
	return e.Size == 0
}

// Name returns the long name when present, else the short name.
func (e DecodedEntry) Name() string {
	if e.HasLongName {
		return e.LongName
	}
	return e.ShortName
}

// decodeShortName normalizes an 11-byte packed 8.3 name into NAME.EXT
// form: space-padding and non-printable bytes are stripped, and the dot
// is omitted entirely when there is no extension.
func decodeShortName(raw [11]byte) string {
	var buf bytes.Buffer
	for _, b := range raw[:8] {
		if isPrintableNonSpace(b) {
			buf.WriteByte(b)
		}
	}
	dotWritten := false
	for _, b := range raw[8:11] {
		if !isPrintableNonSpace(b) {
			continue
		}
		if !dotWritten {
			buf.WriteByte('.')
			dotWritten = true
		}
		buf.WriteByte(b)
	}
	return buf.String()
}

func isPrintableNonSpace(b byte) bool {
	return b > 0x20 && b < 0x7F
}

// lfnRunValid reports whether slots is a complete, well-formed LFN run
// immediately preceding an SFN whose 11-byte packed name is sfnName.
// slots must be in disk (forward-scan) order, i.e. slots[0] is the
// fragment furthest from the SFN and slots[len(slots)-1] is the one
// immediately before it. This mirrors the teacher's parseDir
// (aligator-GoFAT/fs.go): the earliest slot must carry the 0x40
// logical-first bit, every slot's checksum must match the SFN's, and
// the ordinals (low 5 bits of the sequence byte) must count down from
// len(slots) to 1 without a gap. Any violation means the run is
// orphaned or corrupt and must not be attached to the SFN that
// follows it.
func lfnRunValid(slots []lfnRaw, sfnName [11]byte) bool {
	if len(slots) == 0 {
		return false
	}
	if slots[0].Sequence&sequenceLast == 0 {
		return false
	}

	checksum := sfnChecksum(sfnName)
	for i, s := range slots {
		if s.Checksum != checksum {
			return false
		}
		if int(s.Sequence&sequenceOrdinalMask) != len(slots)-i {
			return false
		}
	}
	return true
}

// sfnChecksum computes the LFN checksum of an 11-byte packed SFN name,
// the same rotate-and-add algorithm the FAT spec (and the teacher's
// parseDir) uses to bind LFN slots to the short entry they precede.
func sfnChecksum(name [11]byte) byte {
	var sum byte
	for _, b := range name {
		sum = ((sum & 1) << 7) + (sum >> 1) + b
	}
	return sum
}

// reassembleLFN concatenates the printable low bytes of an already
// validated run of LFN slots (see lfnRunValid) into the long name they
// encode. slots must be in disk (forward-scan) order, i.e.
// slots[len(slots)-1] is the fragment immediately preceding the SFN
// (sequence number 1, the first 13 characters of the name) and
// slots[0] is the fragment carrying the sequenceLast bit (the last
// characters). Walking the slice backward therefore yields the name in
// reading order.
func reassembleLFN(slots []lfnRaw) string {
	var buf bytes.Buffer
	for i := len(slots) - 1; i >= 0; i-- {
		s := slots[i]
		for _, unit := range s.Name1 {
			appendLFNChar(&buf, unit)
		}
		for _, unit := range s.Name2 {
			appendLFNChar(&buf, unit)
		}
		for _, unit := range s.Name3 {
			appendLFNChar(&buf, unit)
		}
	}
	return buf.String()
}

// appendLFNChar drops the high byte of a UTF-16 code unit (non-ASCII
// LFN decoding is an explicit non-goal) and appends it if printable.
func appendLFNChar(buf *bytes.Buffer, unit uint16) {
	b := byte(unit)
	if isPrintableNonSpace(b) || b == ' ' {
		buf.WriteByte(b)
	}
}

// combineDateTime merges a packed FAT date and time field into a single
// time.Time, preferring the zero value when the date is unset (see
// ParseDate) since a zero date makes the time component meaningless.
func combineDateTime(date, clock uint16) time.Time {
	d := ParseDate(date)
	if d.IsZero() {
		return time.Time{}
	}
	t := ParseTime(clock)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// parseDirectory walks a flat buffer of 32-byte directory slots,
// reassembling LFN runs and producing one DecodedEntry per SFN. It is a
// small state machine over {expectingAnything, inLFNRun}: an attribute
// byte of AttrLFN buffers a fragment, resetting the run if the
// fragment is a logical-first (0x40) slot, and stays in inLFNRun; any
// other non-deleted, non-end slot terminates the run and emits an
// entry, attaching the buffered run as a long name only if
// lfnRunValid accepts it.
func parseDirectory(data []byte) ([]DecodedEntry, error) {
	if len(data)%32 != 0 {
		return nil, checkpoint.From(ErrInvalidFormat)
	}

	var entries []DecodedEntry
	var lfnRun []lfnRaw

	count := len(data) / 32
	for i := 0; i < count; i++ {
		slot := data[i*32 : i*32+32]

		switch slot[0] {
		case 0x00:
			return entries, nil
		case 0xE5, 0x05:
			lfnRun = lfnRun[:0]
			continue
		}

		if slot[11] == AttrLFN {
			var frag lfnRaw
			if err := binary.Read(bytes.NewReader(slot), binary.LittleEndian, &frag); err != nil {
				return nil, checkpoint.Wrap(err, ErrInvalidFormat)
			}
			if frag.Sequence&sequenceLast != 0 {
				// Logical-first slot: whatever was buffered before it
				// belongs to no run that reached its start, so discard it.
				lfnRun = lfnRun[:0]
			} else if len(lfnRun) == 0 {
				// An interior slot with no logical-first slot seen yet is
				// orphaned; it can never validate, so don't bother buffering it.
				continue
			}
			lfnRun = append(lfnRun, frag)
			continue
		}

		var sfn sfnRaw
		if err := binary.Read(bytes.NewReader(slot), binary.LittleEndian, &sfn); err != nil {
			return nil, checkpoint.Wrap(err, ErrInvalidFormat)
		}

		entry := DecodedEntry{
			ShortName:    decodeShortName(sfn.Name),
			Size:         sfn.Size,
			FirstCluster: sfn.FirstClusterLo,
			IsReadOnly:   sfn.Attr&AttrReadOnly != 0,
			IsHidden:     sfn.Attr&AttrHidden != 0,
			IsSystem:     sfn.Attr&AttrSystem != 0,
			IsArchived:   sfn.Attr&AttrArchive != 0,
			ModTime:      combineDateTime(sfn.ModDate, sfn.ModTime),
			attr:         sfn.Attr,
		}

		if lfnRunValid(lfnRun, sfn.Name) {
			entry.LongName = reassembleLFN(lfnRun)
			entry.HasLongName = true
		}
		lfnRun = lfnRun[:0]

		entries = append(entries, entry)
	}

	return entries, nil
}
