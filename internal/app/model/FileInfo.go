package model

import "time"

type FileInfo struct {
	FullPath  string
	Name      string
	ModTime   time.Time
	CreatedAt time.Time
	Size      int64
}
