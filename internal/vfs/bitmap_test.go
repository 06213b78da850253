package vfs

import "testing"

func TestBitmapSetClearTest(t *testing.T) {
	var bm Block
	if bitmapTest(&bm, 40) {
		t.Fatal("block 40 should start free")
	}
	bitmapSet(&bm, 40)
	if !bitmapTest(&bm, 40) {
		t.Fatal("block 40 should be set")
	}
	bitmapClear(&bm, 40)
	if bitmapTest(&bm, 40) {
		t.Fatal("block 40 should be cleared")
	}
}

func TestBitmapCellBoundary(t *testing.T) {
	var bm Block
	bitmapSet(&bm, 31)
	bitmapSet(&bm, 32)
	if bm[0] != 1 {
		t.Fatalf("cell 0 = %#x, want bit 0 (block 31) set", bm[0])
	}
	if bm[1] != int32(-1)<<31 {
		t.Fatalf("cell 1 = %#x, want bit 31 (block 32) set", bm[1])
	}
}

func TestFindFreeBlockScansMSBFirst(t *testing.T) {
	var bm Block
	bm[0] = loMask(32) // every bit in cell 0 used
	if got := findFreeBlock(&bm); got != 32 {
		t.Fatalf("got %d, want 32 (first free bit of cell 1)", got)
	}
}

func TestFindFreeBlockDiskFull(t *testing.T) {
	var bm Block
	bm[0] = -1
	bm[1] = -1
	if got := findFreeBlock(&bm); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}
