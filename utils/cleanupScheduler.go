package utils

import (
	"log"
	"time"

	"github.com/LeinadCybre1024/LandRegistry/database"
	"github.com/LeinadCybre1024/LandRegistry/models"

	"github.com/robfig/cron/v3"
)

// InitializeCleanupScheduler sets up the orphaned-document sweeper.
// Blob and metadata writes are separate statements, so a crash between
// them can leave documents no record references; the sweep reclaims them.
func InitializeCleanupScheduler() {
	log.Println("[CLEANUP-SCHEDULER] Initializing document cleanup scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[CLEANUP-SCHEDULER] Running daily orphaned document sweep...")
		SweepOrphanedDocuments()
	})

	c.Start()
	log.Println("[CLEANUP-SCHEDULER] Document cleanup scheduler started - runs daily at 3 AM")
}

// SweepOrphanedDocuments deletes stored documents that no user or
// property references. Documents younger than an hour are skipped so
// in-flight registrations and submissions are never swept.
func SweepOrphanedDocuments() {
	db := database.Database.Db
	cutoff := time.Now().Add(-1 * time.Hour)

	referenced := make(map[string]bool)

	var users []models.User
	if err := db.Select("passport_photo_id", "id_document_id").Find(&users).Error; err != nil {
		log.Printf("[CLEANUP-SCHEDULER] Error fetching user document references: %v", err)
		return
	}
	for _, u := range users {
		referenced[u.PassportPhotoID] = true
		referenced[u.IDDocumentID] = true
	}

	// Unscoped: soft-deleted properties had their blobs removed already,
	// but any that still hold a reference must not be swept out from
	// under a restore.
	var properties []models.Property
	if err := db.Unscoped().Select("deed_document_id", "survey_plan_id").Find(&properties).Error; err != nil {
		log.Printf("[CLEANUP-SCHEDULER] Error fetching property document references: %v", err)
		return
	}
	for _, p := range properties {
		referenced[p.DeedDocumentID] = true
		referenced[p.SurveyPlanID] = true
	}

	var docs []models.Document
	if err := db.Select("id").Where("created_at < ?", cutoff).Find(&docs).Error; err != nil {
		log.Printf("[CLEANUP-SCHEDULER] Error listing documents: %v", err)
		return
	}

	removed := 0
	for _, doc := range docs {
		if referenced[doc.ID] {
			continue
		}
		if err := db.Delete(&models.Document{}, "id = ?", doc.ID).Error; err != nil {
			log.Printf("[CLEANUP-SCHEDULER] Error deleting orphaned document %s: %v", doc.ID, err)
			continue
		}
		removed++
	}

	log.Printf("[CLEANUP-SCHEDULER] Sweep complete, removed %d orphaned documents", removed)
}
