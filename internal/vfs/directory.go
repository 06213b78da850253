package vfs

// DirEntry is the two-cell on-disk record pairing a packed name with the
// descriptor index it names. DescriptorIndex == -1 marks the slot free;
// otherwise it is 1..DescriptorCount-1 (never 0 — that index is reserved
// for the directory itself).
type DirEntry struct {
	NamePacked      int32
	DescriptorIndex int32
}

// FreeDirEntry returns the canonical representation of an unused slot.
func FreeDirEntry() DirEntry {
	return DirEntry{NamePacked: -1, DescriptorIndex: -1}
}

func dirEntryLocation(i int) (block, cellOffset int) {
	return DirectoryBlockStart + i/DirEntriesPerBlock, (i % DirEntriesPerBlock) * 2
}

func (d *LDisk) readDirEntry(i int) DirEntry {
	block, off := dirEntryLocation(i)
	var b Block
	d.ReadBlock(block, &b)
	return DirEntry{NamePacked: b[off], DescriptorIndex: b[off+1]}
}

func (d *LDisk) writeDirEntry(i int, e DirEntry) {
	block, off := dirEntryLocation(i)
	var b Block
	d.ReadBlock(block, &b)
	b[off] = e.NamePacked
	b[off+1] = e.DescriptorIndex
	d.WriteBlock(block, b)
}

// PackName encodes a 1-4 character ASCII name as a big-endian 32-bit value:
// ((c0)<<24)|((c1)<<16)|((c2)<<8)|c3, with shorter names packed into the
// low bytes (so a 1-char name occupies only the lowest byte).
func PackName(name string) (int32, error) {
	if len(name) == 0 || len(name) > 4 {
		return 0, newError(StatusInvalidName, "name length must be 1..4, got %d", len(name))
	}
	var packed uint32
	for i := 0; i < len(name); i++ {
		packed = (packed << 8) | uint32(name[i])
	}
	return int32(packed), nil
}

// UnpackName is the inverse of PackName: it strips trailing zero bytes by
// right-shifting until the low byte is non-zero, then reassembles the
// original character order.
func UnpackName(packed int32) string {
	v := uint32(packed)
	if v == 0 {
		return ""
	}
	for v&0xFF == 0 {
		v >>= 8
	}
	var buf [4]byte
	n := 0
	for v != 0 {
		buf[n] = byte(v & 0xFF)
		v >>= 8
		n++
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = buf[n-1-i]
	}
	return string(out)
}
