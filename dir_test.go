package fat16

import "testing"

func TestDirHandleEnumeratesRoot(t *testing.T) {
	vol, _ := newTestVolume()
	defer vol.Close()

	d, err := OpenDir(vol, `\`)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	defer d.Close()

	var names []string
	for {
		e, ok := d.Next()
		if !ok {
			break
		}
		names = append(names, e.Name())
	}

	if len(names) != 2 {
		t.Fatalf("names = %v, want 2 entries", names)
	}
}

func TestDirHandleSubdirExcludesDotEntries(t *testing.T) {
	vol, _ := newTestVolume()
	defer vol.Close()

	d, err := OpenDir(vol, `\SUBDIR`)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	defer d.Close()

	count := 0
	for {
		e, ok := d.Next()
		if !ok {
			break
		}
		if e.ShortName == "." || e.ShortName == ".." {
			t.Errorf("dot entry %q leaked into enumeration", e.ShortName)
		}
		count++
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 (NESTED.TXT only)", count)
	}
}

func TestOpenDirOnFileFails(t *testing.T) {
	vol, _ := newTestVolume()
	defer vol.Close()

	if _, err := OpenDir(vol, `\HELLO.TXT`); err == nil {
		t.Fatal("expected ErrNotADirectory when opening a file as a directory")
	}
}
