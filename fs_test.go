package fat16

import "testing"

func TestAferoFsOpenFile(t *testing.T) {
	vol, _ := newTestVolume()
	defer vol.Close()

	afs := NewFs(vol)
	f, err := afs.Open(`\HELLO.TXT`)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != 5 {
		t.Errorf("Size() = %d, want 5", info.Size())
	}
}

func TestAferoFsOpenDir(t *testing.T) {
	vol, _ := newTestVolume()
	defer vol.Close()

	afs := NewFs(vol)
	f, err := afs.Open(`\SUBDIR`)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	infos, err := f.Readdir(-1)
	if err != nil {
		t.Fatalf("Readdir: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("len(infos) = %d, want 1", len(infos))
	}
}

func TestAferoFsMutationsNotSupported(t *testing.T) {
	vol, _ := newTestVolume()
	defer vol.Close()

	afs := NewFs(vol)
	if _, err := afs.Create("NEW.TXT"); err != ErrNotSupported {
		t.Errorf("Create err = %v, want ErrNotSupported", err)
	}
	if err := afs.Mkdir("NEW", 0); err != ErrNotSupported {
		t.Errorf("Mkdir err = %v, want ErrNotSupported", err)
	}
}
