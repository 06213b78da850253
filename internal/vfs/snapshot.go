package vfs

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/google/renameio"
	"github.com/klauspost/pgzip"
	"golang.org/x/xerrors"
)

// snapshotMagic tags the on-disk format so Load can reject foreign files
// instead of decoding garbage.
const snapshotMagic uint32 = 0x76667331 // "vfs1"

// Decoder reads little-endian primitives out of a byte slice.
type Decoder struct {
	b []byte
	o int
}

func NewDecoder(b []byte) *Decoder { return &Decoder{b: b} }

func (d *Decoder) remaining() int { return len(d.b) - d.o }

func (d *Decoder) ReadU32() (uint32, error) {
	if d.remaining() < 4 {
		return 0, xerrors.New("vfs: snapshot truncated reading u32")
	}
	v := binary.LittleEndian.Uint32(d.b[d.o : d.o+4])
	d.o += 4
	return v, nil
}

func (d *Decoder) ReadI32() (int32, error) {
	v, err := d.ReadU32()
	return int32(v), err
}

// Encoder builds a little-endian byte stream.
type Encoder struct {
	b []byte
}

func NewEncoder(capacity int) *Encoder {
	return &Encoder{b: make([]byte, 0, capacity)}
}

func (e *Encoder) Bytes() []byte { return e.b }

func (e *Encoder) WriteU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	e.b = append(e.b, tmp[:]...)
}

func (e *Encoder) WriteI32(v int32) { e.WriteU32(uint32(v)) }

// Encode serializes the disk and the OFT (including slot 0's cached
// directory buffer) into a flat little-endian byte stream: a magic header,
// every disk block's cells in order, then every OFT slot's fields.
func Encode(fs *FileSystem) []byte {
	enc := NewEncoder(4 + BlockCount*BlockBytes + OFTSlots*(BlockBytes+12))
	enc.WriteU32(snapshotMagic)
	for i := 0; i < BlockCount; i++ {
		var b Block
		fs.disk.ReadBlock(i, &b)
		for _, cell := range b {
			enc.WriteI32(cell)
		}
	}
	for i := 0; i < OFTSlots; i++ {
		e := fs.oft.Get(i)
		for _, cell := range e.Buffer {
			enc.WriteI32(cell)
		}
		enc.WriteI32(e.CurrentPos)
		enc.WriteI32(e.DescriptorIndex)
		enc.WriteI32(e.FileLength)
	}
	return enc.Bytes()
}

// Decode is the inverse of Encode. It returns a *FileSystem wired to a
// freshly decoded LDisk and OFT, or an error if data is truncated or does
// not carry the snapshot magic.
func Decode(data []byte) (*FileSystem, error) {
	dec := NewDecoder(data)
	magic, err := dec.ReadU32()
	if err != nil {
		return nil, wrapError(StatusInternal, err, "reading snapshot header")
	}
	if magic != snapshotMagic {
		return nil, newError(StatusInternal, "not a vfsim snapshot (bad magic)")
	}

	disk := &LDisk{}
	for i := 0; i < BlockCount; i++ {
		var b Block
		for c := 0; c < BlockCells; c++ {
			v, err := dec.ReadI32()
			if err != nil {
				return nil, wrapError(StatusInternal, err, "reading disk block")
			}
			b[c] = v
		}
		disk.WriteBlock(i, b)
	}

	oft := NewOFT()
	for i := 0; i < OFTSlots; i++ {
		var e OFTEntry
		for c := 0; c < BlockCells; c++ {
			v, err := dec.ReadI32()
			if err != nil {
				return nil, wrapError(StatusInternal, err, "reading OFT buffer")
			}
			e.Buffer[c] = v
		}
		pos, err := dec.ReadI32()
		if err != nil {
			return nil, wrapError(StatusInternal, err, "reading OFT current_pos")
		}
		desc, err := dec.ReadI32()
		if err != nil {
			return nil, wrapError(StatusInternal, err, "reading OFT descriptor_index")
		}
		length, err := dec.ReadI32()
		if err != nil {
			return nil, wrapError(StatusInternal, err, "reading OFT file_length")
		}
		e.CurrentPos, e.DescriptorIndex, e.FileLength = pos, desc, length
		oft.Set(i, e)
	}

	fs := &FileSystem{disk: disk, oft: oft}
	return fs, nil
}

// Save closes all open user files (slots 1-3, flushing their buffers),
// encodes the snapshot, gzips it, and
// writes it to path atomically (temp file + rename), the same pattern the
// examples use for their own image outputs.
func (fs *FileSystem) Save(path string) error {
	fs.FlushAll()
	raw := Encode(fs)

	out, err := renameio.TempFile("", path)
	if err != nil {
		return wrapError(StatusInternal, err, "creating snapshot temp file")
	}
	defer out.Cleanup()

	zw := pgzip.NewWriter(out)
	if _, err := zw.Write(raw); err != nil {
		return wrapError(StatusInternal, err, "writing compressed snapshot")
	}
	if err := zw.Close(); err != nil {
		return wrapError(StatusInternal, err, "closing compressed snapshot")
	}
	if err := out.CloseAtomicallyReplace(); err != nil {
		return wrapError(StatusInternal, err, "committing snapshot file")
	}
	return nil
}

// Load reads and decompresses path, decodes it, and replaces fs's disk and
// OFT with the result. On error fs is left unmodified.
func (fs *FileSystem) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return wrapError(StatusInternal, err, "opening snapshot file")
	}
	defer f.Close()

	zr, err := pgzip.NewReader(f)
	if err != nil {
		return wrapError(StatusInternal, err, "opening compressed snapshot")
	}
	defer zr.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, zr); err != nil {
		return wrapError(StatusInternal, err, "decompressing snapshot")
	}

	loaded, err := Decode(buf.Bytes())
	if err != nil {
		return err
	}
	fs.Restore(loaded.disk, loaded.oft)
	return nil
}
