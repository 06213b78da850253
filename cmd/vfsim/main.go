package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"vfsim/internal/shell"
	"vfsim/internal/vfs"
	"vfsim/internal/version"
)

func main() {
	var (
		inFile      string
		scriptFile  string
		showVersion bool
	)
	flag.StringVar(&inFile, "in", "", "load a snapshot file at startup instead of formatting a fresh disk")
	flag.StringVar(&scriptFile, "script", "", "read commands from a file instead of stdin, one per line")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version.String())
		return
	}

	fs := vfs.NewFileSystem()
	if inFile != "" {
		if err := fs.Load(inFile); err != nil {
			log.Fatalf("vfsim: loading %s: %v", inFile, err)
		}
	}
	sh := shell.New(fs)

	in := io.Reader(os.Stdin)
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			log.Fatalf("vfsim: opening script %s: %v", scriptFile, err)
		}
		defer f.Close()
		in = f
	}

	run(sh, in, os.Stdout)
}

// run executes one command per line of in, writing one line of output per
// command to out. It never returns an error: per-command failures are
// rendered as the literal string "error" and execution continues.
func run(sh *shell.Shell, in io.Reader, out io.Writer) {
	w := bufio.NewWriter(out)
	defer w.Flush()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fmt.Fprintln(w, sh.Execute(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		log.Printf("vfsim: reading input: %v", err)
	}
}
