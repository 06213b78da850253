package vfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	fs := NewFileSystem()
	fs.Create("foo")
	k := fs.Open("foo")
	fs.Write(k, 'z', 100)
	fs.Close(k)

	decoded, err := Decode(Encode(fs))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var wantDisk, gotDisk [BlockCount]Block
	for i := 0; i < BlockCount; i++ {
		fs.disk.ReadBlock(i, &wantDisk[i])
		decoded.disk.ReadBlock(i, &gotDisk[i])
	}
	if diff := cmp.Diff(wantDisk, gotDisk); diff != "" {
		t.Errorf("disk mismatch after round trip (-want +got):\n%s", diff)
	}

	for i := 0; i < OFTSlots; i++ {
		if diff := cmp.Diff(fs.oft.Get(i), decoded.oft.Get(i)); diff != "" {
			t.Errorf("OFT slot %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	if _, err := Decode([]byte{1, 2, 3, 4}); err == nil {
		t.Fatal("expected an error for non-snapshot data")
	}
}

func TestSaveLoadRoundTripThroughDisk(t *testing.T) {
	fs := NewFileSystem()
	fs.Create("bar")
	k := fs.Open("bar")
	fs.Write(k, 'q', 5)

	path := filepath.Join(t.TempDir(), "snapshot.vfsim")
	if err := fs.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}

	restored := NewFileSystem()
	if err := restored.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := restored.Directory(); len(got) != 1 || got[0] != "bar" {
		t.Fatalf("directory after restore = %v, want [bar]", got)
	}
}
