package fat16

import "testing"

func TestDeviceReadSectors(t *testing.T) {
	img := newImage()
	dev := img.toDevice()

	buf := make([]byte, SectorSize)
	n, err := dev.ReadSectors(0, buf, 1)
	if err != nil {
		t.Fatalf("ReadSectors: %v", err)
	}
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
	if buf[510] != 0x55 || buf[511] != 0xAA {
		t.Errorf("boot sector signature not read back correctly")
	}
}

func TestDeviceReadSectorsOutOfRange(t *testing.T) {
	img := newImage()
	dev := img.toDevice()

	buf := make([]byte, SectorSize)
	if _, err := dev.ReadSectors(imgSectors, buf, 1); err == nil {
		t.Error("expected an out-of-range read to fail")
	}
}

func TestDeviceReadSectorsShortBuffer(t *testing.T) {
	img := newImage()
	dev := img.toDevice()

	buf := make([]byte, 10)
	if _, err := dev.ReadSectors(0, buf, 1); err == nil {
		t.Error("expected a too-small output buffer to fail")
	}
}
