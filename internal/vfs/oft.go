package vfs

// OFTSlots is the fixed number of open-file-table entries. Slot 0 is
// permanently bound to the directory (descriptor DirectoryDescriptor) and
// is never freed by Close from user-facing operations.
const OFTSlots = 4

// OFTEntry caches one block worth of data plus the current byte position,
// descriptor index, and cached file length for one open file.
type OFTEntry struct {
	Buffer          Block
	CurrentPos      int32
	DescriptorIndex int32
	FileLength      int32
}

func freeOFTEntry() OFTEntry {
	return OFTEntry{CurrentPos: -1, DescriptorIndex: -1, FileLength: -1}
}

// OFT is the four-slot open-file table.
type OFT struct {
	slots [OFTSlots]OFTEntry
}

// NewOFT returns an OFT with all slots free.
func NewOFT() *OFT {
	o := &OFT{}
	for i := range o.slots {
		o.slots[i] = freeOFTEntry()
	}
	return o
}

// Get returns a copy of slot i's entry.
func (o *OFT) Get(i int) OFTEntry { return o.slots[i] }

// Set overwrites slot i's entry wholesale.
func (o *OFT) Set(i int, e OFTEntry) { o.slots[i] = e }

// Free resets slot i to the free sentinel.
func (o *OFT) Free(i int) { o.slots[i] = freeOFTEntry() }

// FindFree returns the index of a free slot, or -1 if none remain.
func (o *OFT) FindFree() int {
	for i, e := range o.slots {
		if e.DescriptorIndex == -1 {
			return i
		}
	}
	return -1
}

// IsOpen reports whether slot i currently holds an open file.
func (o *OFT) IsOpen(i int) bool {
	if i < 0 || i >= OFTSlots {
		return false
	}
	return o.slots[i].DescriptorIndex != -1
}
