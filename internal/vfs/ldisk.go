// Package vfs implements a pedagogical two-level virtual file system over a
// simulated raw block device held in memory: a bitmap-managed free-block
// pool, fixed-size file descriptors, a single-level directory, and an
// open-file table that translates byte-granular I/O into block-granular
// reads and writes.
package vfs

const (
	// BlockCells is the number of 32-bit cells per block.
	BlockCells = 16
	// BlockCount is the total number of blocks on the simulated disk.
	BlockCount = 64
	// BlockBytes is the size of one block in bytes.
	BlockBytes = BlockCells * 4

	// BitmapBlock holds the free/used bitmap.
	BitmapBlock = 0
	// DescriptorBlockStart/End bound the descriptor region (inclusive).
	DescriptorBlockStart = 1
	DescriptorBlockEnd   = 6
	// DirectoryBlockStart/End bound the directory data region (inclusive).
	DirectoryBlockStart = 7
	DirectoryBlockEnd   = 9
	// DataBlockStart is the first block index usable for file content.
	DataBlockStart = 10
	// DataBlockOffset converts a descriptor's data-block index (0-based,
	// counted from DirectoryBlockStart, so the directory's own blocks are
	// data indices 0-2) to an absolute disk block:
	// diskBlock = dataIndex + DataBlockOffset.
	DataBlockOffset = DataBlockStart - 3
	// DataBlockRefs is the number of data-block references a descriptor holds.
	DataBlockRefs = 3

	// DescriptorCount is the number of descriptor slots (0 reserved for the directory).
	DescriptorCount = 24
	// DescriptorsPerBlock is the number of descriptors packed into one block.
	DescriptorsPerBlock = 4
	// DirEntryCount is the number of directory slots.
	DirEntryCount = 24
	// DirEntriesPerBlock is the number of directory entries packed into one block.
	DirEntriesPerBlock = 8

	// DirectoryDescriptor is the reserved descriptor index for the directory file.
	DirectoryDescriptor = 0
	// MaxFileBytes is the largest file size a 3-reference descriptor can address.
	MaxFileBytes = 3 * BlockBytes
)

// Block is one 64-byte, 16-cell unit of the simulated disk.
type Block [BlockCells]int32

// LDisk is a flat array of BlockCount blocks with no semantics beyond
// block-granular read/write. All decoded views it returns are copies;
// mutating them does not mutate the disk.
type LDisk struct {
	blocks [BlockCount]Block
}

// NewLDisk returns a disk with every cell outside the bitmap block set to
// -1 (the free sentinel shared by descriptors and directory entries) and
// the initial bitmap pattern set: blocks 0-9 (bitmap, descriptor region,
// and the three directory data blocks) marked used, everything else free.
func NewLDisk() *LDisk {
	d := &LDisk{}
	for i := 1; i < BlockCount; i++ {
		for c := 0; c < BlockCells; c++ {
			d.blocks[i][c] = -1
		}
	}
	var bm Block
	bm[0] = loMask(DataBlockStart) // blocks 0-9 used, MSB-first within cell 0
	d.blocks[BitmapBlock] = bm
	return d
}

// loMask returns the top n bits set, MSB-first, within a 32-bit cell —
// i.e. bits 31 down to 31-n+1.
func loMask(n int) int32 {
	if n <= 0 {
		return 0
	}
	if n >= 32 {
		return -1
	}
	return int32(uint32(0xFFFFFFFF) << (32 - n))
}

// ReadBlock copies block i into out. i must be in [0, BlockCount).
func (d *LDisk) ReadBlock(i int, out *Block) {
	*out = d.blocks[i]
}

// WriteBlock overwrites block i wholesale. i must be in [0, BlockCount).
func (d *LDisk) WriteBlock(i int, in Block) {
	d.blocks[i] = in
}

// DescriptorReferences returns the three reference cells of descriptor k.
func (d *LDisk) DescriptorReferences(k int) [3]int32 {
	desc := d.readDescriptor(k)
	return [3]int32{desc.Refs[0], desc.Refs[1], desc.Refs[2]}
}

// ReadDescriptors returns a snapshot of all DescriptorCount descriptors,
// decoded from blocks DescriptorBlockStart..DescriptorBlockEnd in order.
func (d *LDisk) ReadDescriptors() [DescriptorCount]Descriptor {
	var out [DescriptorCount]Descriptor
	for i := 0; i < DescriptorCount; i++ {
		out[i] = d.readDescriptor(i)
	}
	return out
}

// ReadDirectory returns all DirEntryCount decoded directory entries from
// blocks DirectoryBlockStart..DirectoryBlockEnd in order.
func (d *LDisk) ReadDirectory() [DirEntryCount]DirEntry {
	var out [DirEntryCount]DirEntry
	for i := 0; i < DirEntryCount; i++ {
		out[i] = d.readDirEntry(i)
	}
	return out
}
