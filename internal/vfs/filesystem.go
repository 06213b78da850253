package vfs

// FileSystem owns an LDisk and an OFT and implements allocation, descriptor
// and directory mutation, and the file-level operations. It is single
// threaded: callers must not invoke it concurrently from multiple
// goroutines.
type FileSystem struct {
	disk *LDisk
	oft  *OFT
}

// NewFileSystem returns a freshly initialized file system: a directory
// descriptor pointing at blocks 7-9, and OFT slot 0 bound to it.
func NewFileSystem() *FileSystem {
	fs := &FileSystem{disk: NewLDisk(), oft: NewOFT()}
	fs.resetToFresh()
	return fs
}

func (fs *FileSystem) resetToFresh() {
	fs.disk = NewLDisk()
	fs.oft = NewOFT()
	fs.disk.writeDescriptor(DirectoryDescriptor, Descriptor{
		Length: 48,
		Refs:   [3]int32{0, 1, 2},
	})
	fs.oft.Set(0, OFTEntry{
		CurrentPos:      0,
		DescriptorIndex: DirectoryDescriptor,
		FileLength:      int32(MaxFileBytes),
	})
}

// Initialize resets the file system to the freshly-formatted state
// described above. Restoring from a snapshot is handled by Restore, kept
// separate so the snapshot code (snapshot.go) can own decode failure
// handling.
func (fs *FileSystem) Initialize() {
	fs.resetToFresh()
}

// Restore replaces the disk and OFT wholesale, as loaded from a snapshot.
func (fs *FileSystem) Restore(disk *LDisk, oft *OFT) {
	fs.disk = disk
	fs.oft = oft
}

// Disk exposes the underlying LDisk for snapshotting. Callers must treat
// it as read-only outside of the snapshot code.
func (fs *FileSystem) Disk() *LDisk { return fs.disk }

// OFT exposes the underlying OFT for snapshotting, under the same
// read-only contract as Disk.
func (fs *FileSystem) OFT() *OFT { return fs.oft }

// --- allocation primitives ------------------------------------------------

func (fs *FileSystem) findFreeDescriptor() int {
	descs := fs.disk.ReadDescriptors()
	for i := 1; i < DescriptorCount; i++ {
		if descs[i].Length == -1 {
			return i
		}
	}
	return -1
}

func (fs *FileSystem) findFreeDirectory() int {
	dir := fs.disk.ReadDirectory()
	for i := 0; i < DirEntryCount; i++ {
		if dir[i].DescriptorIndex == -1 {
			return i
		}
	}
	return -1
}

// allocateBlockAt finds a free block, marks it used in the bitmap, links it
// into descriptor descIdx's reference slot slotIdx, zero-fills it, and
// returns the resulting data-block index, or -1 if the disk is full.
func (fs *FileSystem) allocateBlockAt(descIdx int32, slotIdx int) int32 {
	var bm Block
	fs.disk.ReadBlock(BitmapBlock, &bm)
	diskBlock := findFreeBlock(&bm)
	if diskBlock == -1 {
		return -1
	}
	bitmapSet(&bm, diskBlock)
	fs.disk.WriteBlock(BitmapBlock, bm)

	dataIdx := int32(diskBlock - DataBlockOffset)
	desc := fs.disk.readDescriptor(int(descIdx))
	desc.Refs[slotIdx] = dataIdx
	fs.disk.writeDescriptor(int(descIdx), desc)
	fs.disk.WriteBlock(diskBlock, Block{})
	return dataIdx
}

func (fs *FileSystem) nameIndexOf(packed int32) (dirIdx, descIdx int) {
	dir := fs.disk.ReadDirectory()
	for i, e := range dir {
		if e.DescriptorIndex != -1 && e.NamePacked == packed {
			return i, int(e.DescriptorIndex)
		}
	}
	return -1, -1
}

// --- file operations -------------------------------------------------------

// Create allocates a descriptor and directory slot for name and writes an
// empty (length-0) file. It returns false if the name already exists, the
// name is not 1..4 ASCII characters, or either table is full.
func (fs *FileSystem) Create(name string) bool {
	packed, err := PackName(name)
	if err != nil {
		return false
	}
	if dirIdx, _ := fs.nameIndexOf(packed); dirIdx != -1 {
		return false
	}
	descIdx := fs.findFreeDescriptor()
	dirIdx := fs.findFreeDirectory()
	if descIdx == -1 || dirIdx == -1 {
		return false
	}
	fs.disk.writeDescriptor(descIdx, Descriptor{Length: 0, Refs: [3]int32{-1, -1, -1}})
	fs.disk.writeDirEntry(dirIdx, DirEntry{NamePacked: packed, DescriptorIndex: int32(descIdx)})
	return true
}

// Destroy frees name's descriptor, directory slot, and allocated data
// blocks. It returns false if name is not found.
func (fs *FileSystem) Destroy(name string) bool {
	packed, err := PackName(name)
	if err != nil {
		return false
	}
	dirIdx, descIdx := fs.nameIndexOf(packed)
	if dirIdx == -1 {
		return false
	}
	desc := fs.disk.readDescriptor(descIdx)

	var bm Block
	fs.disk.ReadBlock(BitmapBlock, &bm)
	for _, ref := range desc.Refs {
		if ref != -1 {
			bitmapClear(&bm, int(ref)+DataBlockOffset)
		}
	}
	fs.disk.WriteBlock(BitmapBlock, bm)

	fs.disk.writeDescriptor(descIdx, FreeDescriptor())
	fs.disk.writeDirEntry(dirIdx, FreeDirEntry())
	return true
}

// Open locates name's descriptor, loads its first data block (or a
// zero-filled buffer if none is allocated yet), and binds it to a free OFT
// slot. It returns the slot index, or -1 if name is unknown or the OFT is
// full.
func (fs *FileSystem) Open(name string) int {
	packed, err := PackName(name)
	if err != nil {
		return -1
	}
	_, descIdx := fs.nameIndexOf(packed)
	if descIdx == -1 {
		return -1
	}
	slot := fs.oft.FindFree()
	if slot == -1 {
		return -1
	}
	desc := fs.disk.readDescriptor(descIdx)
	var buf Block
	if desc.Refs[0] != -1 {
		fs.disk.ReadBlock(int(desc.Refs[0])+DataBlockOffset, &buf)
	}
	fs.oft.Set(slot, OFTEntry{
		Buffer:          buf,
		CurrentPos:      0,
		DescriptorIndex: int32(descIdx),
		FileLength:      desc.Length,
	})
	return slot
}

// Close is a no-op success for slot 0 (the permanently-open directory).
// Otherwise it flushes the cached buffer, persists the grown file length
// to the descriptor, and frees the slot. It returns false if k is out of
// range or not currently open.
func (fs *FileSystem) Close(k int) bool {
	if k == 0 {
		return true
	}
	if !fs.oft.IsOpen(k) {
		return false
	}
	e := fs.oft.Get(k)
	fs.flushToSlot(e, int(e.CurrentPos)/BlockBytes)
	desc := fs.disk.readDescriptor(int(e.DescriptorIndex))
	if e.FileLength > desc.Length {
		desc.Length = e.FileLength
		fs.disk.writeDescriptor(int(e.DescriptorIndex), desc)
	}
	fs.oft.Free(k)
	return true
}

// flushToSlot writes e.Buffer to the disk block referenced by descriptor
// slot slotIdx, allocating that block first if it has none yet. Out-of-range
// slot indices (the 192-byte end-of-file cursor) are a no-op.
func (fs *FileSystem) flushToSlot(e OFTEntry, slotIdx int) {
	if slotIdx < 0 || slotIdx >= DataBlockRefs {
		return
	}
	ref := fs.disk.DescriptorReferences(int(e.DescriptorIndex))[slotIdx]
	if ref == -1 {
		ref = fs.allocateBlockAt(e.DescriptorIndex, slotIdx)
		if ref == -1 {
			return
		}
	}
	fs.disk.WriteBlock(int(ref)+DataBlockOffset, e.Buffer)
}

// advance moves e.CurrentPos forward by one byte, flushing and reloading
// across 64-byte block boundaries. In a write context it allocates the
// next block on demand; in a read context it reports false once no next
// block exists, signalling the caller to stop.
func (fs *FileSystem) advance(e *OFTEntry, isWrite bool) bool {
	oldSlot := int(e.CurrentPos) / BlockBytes
	e.CurrentPos++
	if int(e.CurrentPos)%BlockBytes != 0 {
		return true
	}
	fs.flushToSlot(*e, oldSlot)

	newSlot := int(e.CurrentPos) / BlockBytes
	if newSlot >= DataBlockRefs {
		return true
	}
	ref := fs.disk.DescriptorReferences(int(e.DescriptorIndex))[newSlot]
	if ref == -1 {
		if !isWrite {
			return false
		}
		ref = fs.allocateBlockAt(e.DescriptorIndex, newSlot)
		if ref == -1 {
			return false
		}
	}
	var buf Block
	fs.disk.ReadBlock(int(ref)+DataBlockOffset, &buf)
	e.Buffer = buf
	return true
}

// Read copies up to count bytes from OFT slot k starting at current_pos,
// advancing position as it goes, and stops early at file_length. It
// returns the bytes actually produced.
func (fs *FileSystem) Read(k int, count int) []byte {
	if !fs.oft.IsOpen(k) || count <= 0 {
		return nil
	}
	e := fs.oft.Get(k)
	out := make([]byte, 0, count)
	for len(out) < count && e.CurrentPos < e.FileLength {
		out = append(out, readByte(&e.Buffer, int(e.CurrentPos)%BlockBytes))
		if !fs.advance(&e, false) {
			break
		}
		if e.CurrentPos == e.FileLength {
			break
		}
	}
	fs.oft.Set(k, e)
	return out
}

// Write repeats byte b count times into OFT slot k starting at
// current_pos, allocating blocks lazily as position crosses into
// descriptor slots that have none yet. Position never advances past
// MaxFileBytes (192, one past the last addressable byte). It returns the
// number of bytes actually written, and updates file_length to
// max(file_length, current_pos).
func (fs *FileSystem) Write(k int, b byte, count int) int {
	if !fs.oft.IsOpen(k) {
		return 0
	}
	e := fs.oft.Get(k)
	written := 0
	for written < count && e.CurrentPos < int32(MaxFileBytes) {
		writeByte(&e.Buffer, int(e.CurrentPos)%BlockBytes, b)
		written++
		if !fs.advance(&e, true) {
			break
		}
	}
	if e.CurrentPos > e.FileLength {
		e.FileLength = e.CurrentPos
	}
	fs.oft.Set(k, e)
	return written
}

// Lseek flushes the current buffer, rejects pos >= file_length, loads the
// block containing pos, and sets current_pos = pos. It returns false on
// an invalid seek or an unopened slot.
func (fs *FileSystem) Lseek(k int, pos int) bool {
	if !fs.oft.IsOpen(k) || pos < 0 {
		return false
	}
	e := fs.oft.Get(k)
	if int32(pos) >= e.FileLength {
		return false
	}
	fs.flushToSlot(e, int(e.CurrentPos)/BlockBytes)

	slotIdx := pos / BlockBytes
	ref := fs.disk.DescriptorReferences(int(e.DescriptorIndex))[slotIdx]
	if ref == -1 {
		return false
	}
	var buf Block
	fs.disk.ReadBlock(int(ref)+DataBlockOffset, &buf)
	e.Buffer = buf
	e.CurrentPos = int32(pos)
	fs.oft.Set(k, e)
	return true
}

// Directory returns the unpacked names of all non-free directory entries,
// in slot order.
func (fs *FileSystem) Directory() []string {
	dir := fs.disk.ReadDirectory()
	var names []string
	for _, e := range dir {
		if e.DescriptorIndex != -1 {
			names = append(names, UnpackName(e.NamePacked))
		}
	}
	return names
}

// FlushAll closes OFT slots 1..OFTSlots-1 (slot 0 is left bound to the
// directory), used before serializing a snapshot.
func (fs *FileSystem) FlushAll() {
	for k := 1; k < OFTSlots; k++ {
		fs.Close(k)
	}
}
