//go:build !unix

package fs

import (
	"io/fs"
	"time"
)

// changeTime falls back to the modification time on platforms without
// syscall.Stat_t change-time data.
func changeTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
