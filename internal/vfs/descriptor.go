package vfs

// Descriptor is the four-cell on-disk record describing one file: its
// length in bytes plus up to three data-block references. Length == -1
// marks the slot free. A reference of -1 means no block allocated in that
// slot. References are data-block indices (disk block minus
// DataBlockOffset, i.e. disk block minus 7).
type Descriptor struct {
	Length int32
	Refs   [3]int32
}

// FreeDescriptor returns the canonical representation of an unused slot.
func FreeDescriptor() Descriptor {
	return Descriptor{Length: -1, Refs: [3]int32{-1, -1, -1}}
}

func descriptorLocation(k int) (block, cellOffset int) {
	return DescriptorBlockStart + k/DescriptorsPerBlock, (k % DescriptorsPerBlock) * 4
}

func (d *LDisk) readDescriptor(k int) Descriptor {
	block, off := descriptorLocation(k)
	var b Block
	d.ReadBlock(block, &b)
	return Descriptor{
		Length: b[off],
		Refs:   [3]int32{b[off+1], b[off+2], b[off+3]},
	}
}

func (d *LDisk) writeDescriptor(k int, desc Descriptor) {
	block, off := descriptorLocation(k)
	var b Block
	d.ReadBlock(block, &b)
	b[off] = desc.Length
	b[off+1] = desc.Refs[0]
	b[off+2] = desc.Refs[1]
	b[off+3] = desc.Refs[2]
	d.WriteBlock(block, b)
}
