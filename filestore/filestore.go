// Package filestore stores binary attachments as uuid-keyed rows, the
// GridFS role in the original deployment: records hold the opaque id,
// never the bytes.
package filestore

import (
	"github.com/LeinadCybre1024/LandRegistry/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Put stores one attachment and returns its opaque reference.
func Put(db *gorm.DB, filename, contentType string, data []byte) (string, error) {
	doc := models.Document{
		ID:          uuid.NewString(),
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}

	if err := db.Create(&doc).Error; err != nil {
		return "", err
	}

	return doc.ID, nil
}

// Get loads an attachment by reference. Returns gorm.ErrRecordNotFound
// when the reference does not resolve.
func Get(db *gorm.DB, id string) (*models.Document, error) {
	var doc models.Document
	if err := db.First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes an attachment. Deleting an empty or unknown reference
// is a no-op so callers can clean up optional documents unconditionally.
func Delete(db *gorm.DB, id string) error {
	if id == "" {
		return nil
	}
	return db.Delete(&models.Document{}, "id = ?", id).Error
}
