//go:build !linux && !darwin

package files

import (
	"os"
	"time"
)

// creationTime falls back to the modification time where the platform's stat
// structure is not known.
func creationTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
