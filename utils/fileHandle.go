package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/LeinadCybre1024/LandRegistry/config"
	"github.com/LeinadCybre1024/LandRegistry/filestore"

	"gorm.io/gorm"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// AllowedFile reports whether the upload's extension is permitted.
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ContentTypeFor prefers the client-declared content type and falls back
// to the extension when the client sent nothing useful.
func ContentTypeFor(file *multipart.FileHeader) string {
	declared := file.Header.Get("Content-Type")
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(file.Filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// StoreUpload validates an uploaded document and writes it to the blob
// store under storedName, returning the opaque reference.
func StoreUpload(db *gorm.DB, file *multipart.FileHeader, storedName string) (string, error) {
	if !AllowedFile(file.Filename) {
		return "", fmt.Errorf("invalid file type: %s", file.Filename)
	}
	if file.Size > config.AppConfig.MaxFileSize {
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", config.AppConfig.MaxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	return filestore.Put(db, storedName, ContentTypeFor(file), data)
}

// StoredName builds the blob filename from the owning wallet and the
// upload's extension, e.g. "0xabc_deed.pdf".
func StoredName(wallet, kind, originalName string) string {
	return fmt.Sprintf("%s_%s%s", wallet, kind, strings.ToLower(filepath.Ext(originalName)))
}
