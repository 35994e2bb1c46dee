package models

import (
	"time"
)

// Document holds one stored binary attachment (deed, survey plan, ID
// document, passport photo). Records reference documents by the opaque
// uuid, never by row id.
type Document struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Filename    string `gorm:"not null" json:"filename"`
	ContentType string `gorm:"not null" json:"contentType"`
	Size        int64  `gorm:"not null" json:"size"`
	Data        []byte `gorm:"not null" json:"-"`
	CreatedAt   time.Time
}
