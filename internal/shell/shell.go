// Package shell implements the line-oriented command surface: a thin
// parser that maps whitespace-delimited tokens onto vfs.FileSystem
// operations and renders their results as the fixed-format strings the
// CLI contract specifies.
package shell

import (
	"strconv"
	"strings"

	"vfsim/internal/vfs"
)

// Shell dispatches one line of input at a time against a single
// FileSystem. It holds no state of its own beyond that reference.
type Shell struct {
	fs *vfs.FileSystem
}

// New returns a Shell bound to fs.
func New(fs *vfs.FileSystem) *Shell {
	return &Shell{fs: fs}
}

// Execute runs one command line and returns its output, without a
// trailing newline. A blank line yields an empty string. Any failure —
// unknown command, bad argument, or a false/-1 result from the
// FileSystem — yields the literal string "error".
func (s *Shell) Execute(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	out, ok := s.dispatch(fields)
	if !ok {
		return "error"
	}
	return out
}

func (s *Shell) dispatch(f []string) (string, bool) {
	switch f[0] {
	case "cr":
		return s.create(f)
	case "de":
		return s.destroy(f)
	case "op":
		return s.open(f)
	case "cl":
		return s.close(f)
	case "rd":
		return s.read(f)
	case "wr":
		return s.write(f)
	case "sk":
		return s.seek(f)
	case "dr":
		return s.directory(f)
	case "in":
		return s.initialize(f)
	case "sv":
		return s.save(f)
	default:
		return "", false
	}
}

func (s *Shell) create(f []string) (string, bool) {
	if len(f) != 2 {
		return "", false
	}
	if !s.fs.Create(f[1]) {
		return "", false
	}
	return f[1] + " created", true
}

func (s *Shell) destroy(f []string) (string, bool) {
	if len(f) != 2 {
		return "", false
	}
	if !s.fs.Destroy(f[1]) {
		return "", false
	}
	return f[1] + " destroyed", true
}

func (s *Shell) open(f []string) (string, bool) {
	if len(f) != 2 {
		return "", false
	}
	k := s.fs.Open(f[1])
	if k == -1 {
		return "", false
	}
	return f[1] + " opened " + strconv.Itoa(k), true
}

func (s *Shell) close(f []string) (string, bool) {
	if len(f) != 2 {
		return "", false
	}
	k, err := strconv.Atoi(f[1])
	if err != nil {
		return "", false
	}
	if !s.fs.Close(k) {
		return "", false
	}
	return f[1] + " closed", true
}

func (s *Shell) read(f []string) (string, bool) {
	if len(f) != 3 {
		return "", false
	}
	k, err := strconv.Atoi(f[1])
	if err != nil {
		return "", false
	}
	n, err := strconv.Atoi(f[2])
	if err != nil || n < 0 {
		return "", false
	}
	if !s.fs.OFT().IsOpen(k) {
		return "", false
	}
	return string(s.fs.Read(k, n)), true
}

func (s *Shell) write(f []string) (string, bool) {
	if len(f) != 4 {
		return "", false
	}
	k, err := strconv.Atoi(f[1])
	if err != nil {
		return "", false
	}
	if len(f[2]) != 1 {
		return "", false
	}
	n, err := strconv.Atoi(f[3])
	if err != nil || n < 0 {
		return "", false
	}
	if !s.fs.OFT().IsOpen(k) {
		return "", false
	}
	written := s.fs.Write(k, f[2][0], n)
	return strconv.Itoa(written) + " bytes written", true
}

func (s *Shell) seek(f []string) (string, bool) {
	if len(f) != 3 {
		return "", false
	}
	k, err := strconv.Atoi(f[1])
	if err != nil {
		return "", false
	}
	pos, err := strconv.Atoi(f[2])
	if err != nil {
		return "", false
	}
	if !s.fs.Lseek(k, pos) {
		return "", false
	}
	return "position is " + f[2], true
}

func (s *Shell) directory(f []string) (string, bool) {
	if len(f) != 1 {
		return "", false
	}
	var b strings.Builder
	for _, name := range s.fs.Directory() {
		b.WriteString(name)
		b.WriteByte(' ')
	}
	return b.String(), true
}

func (s *Shell) initialize(f []string) (string, bool) {
	switch len(f) {
	case 1:
		s.fs.Initialize()
		return "disk initialized", true
	case 2:
		if err := s.fs.Load(f[1]); err != nil {
			return "", false
		}
		return "disk restored", true
	default:
		return "", false
	}
}

func (s *Shell) save(f []string) (string, bool) {
	if len(f) != 2 {
		return "", false
	}
	if err := s.fs.Save(f[1]); err != nil {
		return "", false
	}
	return "disk saved", true
}
