package main

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/zeebo/errs"
	"golang.org/x/sys/unix"
)

// readInput returns the first line of the file at path, or of stdin when path
// is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		return readLine(os.Stdin)
	}

	fh, err := os.Open(path)
	if err != nil {
		return "", errs.Wrap(err)
	}
	defer fh.Close()

	fi, err := fh.Stat()
	if err != nil {
		return "", errs.Wrap(err)
	}
	if !fi.Mode().IsRegular() {
		return readLine(fh)
	}
	if fi.Size() == 0 {
		return "", errs.New("%s: empty input", path)
	}

	return mapLine(fh, int(fi.Size()))
}

// mapLine maps the first size bytes of fh and copies out the first line.
func mapLine(fh *os.File, size int) (line string, err error) {
	buf, err := unix.Mmap(int(fh.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return "", errs.Wrap(err)
	}
	defer func() {
		if merr := unix.Munmap(buf); err == nil {
			err = errs.Wrap(merr)
		}
	}()

	first := buf
	if i := bytes.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	return string(first), nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errs.Wrap(err)
	}
	return line, nil
}
