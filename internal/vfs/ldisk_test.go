package vfs

import "testing"

func TestNewLDiskInitialBitmap(t *testing.T) {
	d := NewLDisk()
	var bm Block
	d.ReadBlock(BitmapBlock, &bm)
	for b := 0; b < DataBlockStart; b++ {
		if !bitmapTest(&bm, b) {
			t.Errorf("block %d should be marked used in a fresh disk", b)
		}
	}
	for b := DataBlockStart; b < BlockCount; b++ {
		if bitmapTest(&bm, b) {
			t.Errorf("block %d should be free in a fresh disk", b)
		}
	}
}

func TestLDiskReadWriteBlockRoundTrip(t *testing.T) {
	d := NewLDisk()
	in := Block{1, 2, 3, 4, 5}
	d.WriteBlock(20, in)

	var out Block
	d.ReadBlock(20, &out)
	if out != in {
		t.Fatalf("got %v, want %v", out, in)
	}
}

func TestDescriptorReferences(t *testing.T) {
	d := NewLDisk()
	d.writeDescriptor(5, Descriptor{Length: 10, Refs: [3]int32{3, -1, -1}})
	got := d.DescriptorReferences(5)
	want := [3]int32{3, -1, -1}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestReadDescriptorsAndDirectoryRoundTrip(t *testing.T) {
	d := NewLDisk()
	d.writeDescriptor(2, Descriptor{Length: 7, Refs: [3]int32{0, -1, -1}})
	d.writeDirEntry(3, DirEntry{NamePacked: 0x61626364, DescriptorIndex: 2})

	descs := d.ReadDescriptors()
	if descs[2].Length != 7 || descs[2].Refs[0] != 0 {
		t.Fatalf("descriptor 2 = %+v, want length 7 ref0 0", descs[2])
	}
	for i, desc := range descs {
		if i == 2 {
			continue
		}
		if desc.Length != -1 {
			t.Errorf("descriptor %d should be free, got length %d", i, desc.Length)
		}
	}

	dir := d.ReadDirectory()
	if dir[3].DescriptorIndex != 2 || dir[3].NamePacked != 0x61626364 {
		t.Fatalf("directory entry 3 = %+v", dir[3])
	}
}
