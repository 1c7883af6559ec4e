//go:build unix

package fs

import (
	"io/fs"
	"syscall"
	"time"
)

// changeTime extracts the inode change time from a FileInfo. True birth time
// is not available on most Unix filesystems, so this is the closest stand-in
// for a creation timestamp.
func changeTime(info fs.FileInfo) time.Time {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec)
	}
	return info.ModTime()
}
