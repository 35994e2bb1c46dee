package filestore_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/LeinadCybre1024/LandRegistry/filestore"
	"github.com/LeinadCybre1024/LandRegistry/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDb(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Document{}))
	return db
}

func TestPutGetRoundtrip(t *testing.T) {
	db := setupDb(t)

	id, err := filestore.Put(db, "0xaaa_deed.pdf", "application/pdf", []byte("deed-bytes"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := filestore.Get(db, id)
	require.NoError(t, err)
	assert.Equal(t, "0xaaa_deed.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.EqualValues(t, len("deed-bytes"), doc.Size)
	assert.Equal(t, []byte("deed-bytes"), doc.Data)
}

func TestGetUnknownReference(t *testing.T) {
	db := setupDb(t)

	_, err := filestore.Get(db, "no-such-id")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDelete(t *testing.T) {
	db := setupDb(t)

	id, err := filestore.Put(db, "photo.jpg", "image/jpeg", []byte("photo"))
	require.NoError(t, err)

	require.NoError(t, filestore.Delete(db, id))
	_, err = filestore.Get(db, id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Empty and unknown references are no-ops
	assert.NoError(t, filestore.Delete(db, ""))
	assert.NoError(t, filestore.Delete(db, "no-such-id"))
}
