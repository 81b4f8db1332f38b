package models

import "time"

// File describes one stored upload.
type File struct {
	ID           int64     `json:"-"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"size"`
	Path         string    `json:"path"`
	UploadedAt   time.Time `json:"-"`
}
