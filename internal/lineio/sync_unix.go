//go:build linux || freebsd

package lineio

import (
	"os"

	"golang.org/x/sys/unix"
)

// datasync performs a data-only sync of the file.
//
// On Linux/FreeBSD, fdatasync() provides sufficient guarantees for an
// append-only stream: the data reaches the platter without forcing a
// metadata flush.
func datasync(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
