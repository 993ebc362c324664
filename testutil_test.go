package fat16

import (
	"encoding/binary"
)

// image is a small synthetic FAT16 volume assembled entirely in
// memory, used to exercise the reader without a real disk image.
// Layout: 1 reserved sector, two 1-sector FATs, a 1-sector root
// directory (16 entries), then eight 1-sector clusters.
type image struct {
	buf []byte
}

const (
	imgSectors   = 12
	imgReserved  = 1
	imgNumFATs   = 2
	imgFATSize   = 1
	imgRootCount = 16 // -> 1 sector of root dir
)

func newImage() *image {
	img := &image{buf: make([]byte, imgSectors*SectorSize)}
	img.putBPB()
	return img
}

func (img *image) sector(n uint32) []byte {
	return img.buf[n*SectorSize : (n+1)*SectorSize]
}

func (img *image) putBPB() {
	b := img.sector(0)
	b[0], b[1], b[2] = 0xEB, 0x3C, 0x90
	copy(b[3:11], "MSDOS5.0")
	binary.LittleEndian.PutUint16(b[11:13], SectorSize)
	b[13] = 1 // sectors per cluster
	binary.LittleEndian.PutUint16(b[14:16], imgReserved)
	b[16] = imgNumFATs
	binary.LittleEndian.PutUint16(b[17:19], imgRootCount)
	binary.LittleEndian.PutUint16(b[19:21], imgSectors)
	b[21] = 0xF8
	binary.LittleEndian.PutUint16(b[22:24], imgFATSize)
	binary.LittleEndian.PutUint16(b[24:26], 0)
	binary.LittleEndian.PutUint16(b[26:28], 0)
	binary.LittleEndian.PutUint32(b[28:32], 0)
	binary.LittleEndian.PutUint32(b[32:36], 0)
	b[36] = 0x80 // drive number
	b[38] = 0x29 // extended boot signature
	binary.LittleEndian.PutUint32(b[39:43], 0xDEADBEEF)
	copy(b[43:54], "NO NAME    ")
	copy(b[54:62], "FAT16   ")
	binary.LittleEndian.PutUint16(b[510:512], 0xAA55)
}

func (img *image) fatStart() uint32  { return imgReserved }
func (img *image) rootStart() uint32 { return img.fatStart() + imgNumFATs*imgFATSize }
func (img *image) dataStart() uint32 { return img.rootStart() + 1 }

// setFAT writes the same 16-bit entry into both FAT copies.
func (img *image) setFAT(cluster uint16, value uint16) {
	for fatIdx := uint32(0); fatIdx < imgNumFATs; fatIdx++ {
		sec := img.sector(img.fatStart() + fatIdx*imgFATSize)
		binary.LittleEndian.PutUint16(sec[int(cluster)*2:int(cluster)*2+2], value)
	}
}

// cluster returns the sector backing data cluster c (c >= 2).
func (img *image) cluster(c uint16) []byte {
	return img.sector(img.dataStart() + uint32(c) - 2)
}

// putShortEntry writes one 32-byte SFN slot at byte offset off within
// a directory sector.
func putShortEntry(buf []byte, off int, name string, attr byte, firstCluster uint16, size uint32) {
	e := buf[off : off+32]
	copy(e[0:11], encode83(name))
	e[11] = attr
	binary.LittleEndian.PutUint16(e[26:28], firstCluster)
	binary.LittleEndian.PutUint32(e[28:32], size)
}

// encode83 turns "HELLO.TXT" into the padded 11-byte on-disk form.
func encode83(name string) [11]byte {
	var out [11]byte
	for i := range out {
		out[i] = ' '
	}
	base, ext := name, ""
	for i, c := range name {
		if c == '.' {
			base, ext = name[:i], name[i+1:]
			break
		}
	}
	copy(out[0:8], base)
	copy(out[8:11], ext)
	return out
}

func (img *image) toDevice() *Device {
	return NewDevice(sliceReaderAt(img.buf), int64(len(img.buf)))
}

// sliceReaderAt adapts a []byte to io.ReaderAt.
type sliceReaderAt []byte

func (s sliceReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(s)) {
		return 0, nil
	}
	n := copy(p, s[off:])
	return n, nil
}

// newTestVolume builds a ready-to-use Volume over a small synthetic
// image containing:
//
//	/HELLO.TXT   (cluster 2, "HELLO")
//	/SUBDIR/     (cluster 3, directory)
//	/SUBDIR/NESTED.TXT (cluster 4, "World")
func newTestVolume() (*Volume, *image) {
	img := newImage()

	img.setFAT(0, 0xFFF8)
	img.setFAT(1, 0xFFFF)
	img.setFAT(2, 0xFFFF) // HELLO.TXT: single cluster, EOF
	img.setFAT(3, 0xFFFF) // SUBDIR: single cluster, EOF
	img.setFAT(4, 0xFFFF) // NESTED.TXT: single cluster, EOF

	root := img.sector(img.rootStart())
	putShortEntry(root, 0, "HELLO.TXT", AttrArchive, 2, 5)
	putShortEntry(root, 32, "SUBDIR", AttrDirectory, 3, 0)

	copy(img.cluster(2), "HELLO")

	sub := img.cluster(3)
	putShortEntry(sub, 0, ".", AttrDirectory, 3, 0)
	putShortEntry(sub, 32, "..", AttrDirectory, 0, 0)
	putShortEntry(sub, 64, "NESTED.TXT", AttrArchive, 4, 5)

	copy(img.cluster(4), "World")

	dev := img.toDevice()
	vol, err := OpenVolume(dev, 0)
	if err != nil {
		panic(err)
	}
	return vol, img
}
