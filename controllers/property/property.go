package propertyController

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/LeinadCybre1024/LandRegistry/database"
	"github.com/LeinadCybre1024/LandRegistry/filestore"
	"github.com/LeinadCybre1024/LandRegistry/middleware"
	"github.com/LeinadCybre1024/LandRegistry/models"
	"github.com/LeinadCybre1024/LandRegistry/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var errOwnerMismatch = errors.New("current owner does not match property records")

// serializeProperty flattens a property for the JSON envelope, adding
// passthrough URLs for whichever documents exist.
func serializeProperty(p models.Property) fiber.Map {
	out := fiber.Map{
		"id":             p.ID,
		"title":          p.Title,
		"streetAddress":  p.StreetAddress,
		"postalCode":     p.PostalCode,
		"county":         p.County,
		"plotNumber":     p.PlotNumber,
		"owner":          p.Owner,
		"status":         p.Status,
		"createdAt":      p.CreatedAt,
		"updatedAt":      p.UpdatedAt,
		"previousOwners": p.PreviousOwners,
	}

	if p.VerifiedBy != "" {
		out["verifiedBy"] = p.VerifiedBy
		out["verificationDate"] = p.VerificationDate
	}
	if p.RejectionReason != "" {
		out["rejectionReason"] = p.RejectionReason
	}
	if p.DeedDocumentID != "" {
		out["deedDocumentUrl"] = fmt.Sprintf("/properties/%d/deed", p.ID)
	}
	if p.SurveyPlanID != "" {
		out["surveyPlanUrl"] = fmt.Sprintf("/properties/%d/survey", p.ID)
	}

	return out
}

// List returns the properties owned by the requested wallet.
func List(c *fiber.Ctx) error {
	owner := models.NormalizeWallet(c.Query("owner"))

	var properties []models.Property
	if err := database.Database.Db.
		Preload("PreviousOwners").
		Where("owner = ?", owner).
		Find(&properties).Error; err != nil {
		log.Printf("Error listing properties for %s: %v", owner, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch properties!")
	}

	serialized := make([]fiber.Map, 0, len(properties))
	for _, p := range properties {
		serialized = append(serialized, serializeProperty(p))
	}

	payload := fiber.Map{"properties": serialized}
	if len(serialized) == 0 {
		payload["message"] = "No properties found for this owner"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, payload)
}

// Submit registers a new property for verification. Expects a multipart
// form with the field values plus deedDocument (required) and surveyPlan
// (optional).
func Submit(c *fiber.Ctx) error {
	owner := models.NormalizeWallet(c.FormValue("owner"))
	db := database.Database.Db

	deed, err := c.FormFile("deedDocument")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Deed document is required")
	}
	if !utils.AllowedFile(deed.Filename) {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid file type")
	}

	survey, _ := c.FormFile("surveyPlan")
	if survey != nil && !utils.AllowedFile(survey.Filename) {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid file type")
	}

	deedID, err := utils.StoreUpload(db, deed, utils.StoredName(owner, "deed", deed.Filename))
	if err != nil {
		log.Printf("Error storing deed document: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	var surveyID string
	if survey != nil {
		surveyID, err = utils.StoreUpload(db, survey, utils.StoredName(owner, "survey", survey.Filename))
		if err != nil {
			log.Printf("Error storing survey plan: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		}
	}

	property := models.Property{
		Title:          strings.TrimSpace(c.FormValue("title")),
		StreetAddress:  strings.TrimSpace(c.FormValue("streetAddress")),
		PostalCode:     strings.TrimSpace(c.FormValue("postalCode")),
		County:         strings.TrimSpace(c.FormValue("county")),
		PlotNumber:     strings.TrimSpace(c.FormValue("plotNumber")),
		Owner:          owner,
		Status:         models.PropertyStatusPending,
		DeedDocumentID: deedID,
		SurveyPlanID:   surveyID,
	}

	if err := db.Create(&property).Error; err != nil {
		log.Printf("Error saving property: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to submit property!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, fiber.Map{
		"message":  "Property submitted for verification.",
		"property": serializeProperty(property),
	})
}

// Get returns one property with its transfer history.
func Get(c *fiber.Ctx) error {
	var property models.Property
	if err := database.Database.Db.
		Preload("PreviousOwners").
		First(&property, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Property not found")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{
		"property": serializeProperty(property),
	})
}

// Update changes the descriptive fields of a property. Owner and status
// are workflow-managed and cannot be set here.
func Update(c *fiber.Ctx) error {
	reqData := new(struct {
		Title         *string `json:"title"`
		StreetAddress *string `json:"streetAddress"`
		PostalCode    *string `json:"postalCode"`
		County        *string `json:"county"`
		PlotNumber    *string `json:"plotNumber"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	db := database.Database.Db

	var property models.Property
	if err := db.First(&property, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Property not found")
	}

	updates := make(map[string]interface{})
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.StreetAddress != nil {
		updates["street_address"] = *reqData.StreetAddress
	}
	if reqData.PostalCode != nil {
		updates["postal_code"] = *reqData.PostalCode
	}
	if reqData.County != nil {
		updates["county"] = *reqData.County
	}
	if reqData.PlotNumber != nil {
		updates["plot_number"] = *reqData.PlotNumber
	}

	if len(updates) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := db.Model(&property).Updates(updates).Error; err != nil {
		log.Printf("Error updating property %d: %v", property.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update property!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Property updated",
	})
}

// Delete removes a property, its attachments and its transfer history in
// one transaction. The transaction log is append-only and survives.
func Delete(c *fiber.Ctx) error {
	db := database.Database.Db

	var property models.Property
	if err := db.First(&property, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Property not found")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := filestore.Delete(tx, property.DeedDocumentID); err != nil {
			return err
		}
		if err := filestore.Delete(tx, property.SurveyPlanID); err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", property.ID).Delete(&models.PropertyTransfer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&property).Error
	})
	if err != nil {
		log.Printf("Error deleting property %d: %v", property.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete property!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Property deleted",
	})
}

// Search looks up properties by plot number. Plot numbers should be
// unique per registry but uniqueness is not enforced, so this returns a
// list.
func Search(c *fiber.Ctx) error {
	plotNumber := strings.TrimSpace(c.Query("plotNumber"))

	var properties []models.Property
	if err := database.Database.Db.
		Preload("PreviousOwners").
		Where("plot_number = ?", plotNumber).
		Find(&properties).Error; err != nil {
		log.Printf("Error searching plot number %s: %v", plotNumber, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to search properties!")
	}

	if len(properties) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No property found with this plot number")
	}

	serialized := make([]fiber.Map, 0, len(properties))
	for _, p := range properties {
		serialized = append(serialized, serializeProperty(p))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{
		"properties": serialized,
	})
}

// Transfer moves ownership to a registered user. The owner update, the
// history entry and the transaction record commit atomically; the owner
// comparison is a compare-and-swap in the UPDATE itself, so concurrent
// transfers of the same property serialize on the database.
func Transfer(c *fiber.Ctx) error {
	reqData := new(struct {
		CurrentOwner string `json:"currentOwner"`
		NewOwner     string `json:"newOwner"`
		TxHash       string `json:"txHash"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	db := database.Database.Db

	var property models.Property
	if err := db.First(&property, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Property not found")
	}

	newOwner := models.NormalizeWallet(reqData.NewOwner)
	if err := db.Where("wallet_address = ?", newOwner).First(&models.User{}).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "New owner is not a registered user")
	}

	currentOwner := models.NormalizeWallet(reqData.CurrentOwner)

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Property{}).
			Where("id = ? AND lower(owner) = ?", property.ID, currentOwner).
			Update("owner", newOwner)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errOwnerMismatch
		}

		if err := tx.Create(&models.PropertyTransfer{
			PropertyID:    property.ID,
			WalletAddress: currentOwner,
			TxHash:        reqData.TxHash,
		}).Error; err != nil {
			return err
		}

		return tx.Create(&models.Transaction{
			PropertyID: property.ID,
			FromWallet: currentOwner,
			ToWallet:   newOwner,
			TxHash:     reqData.TxHash,
		}).Error
	})
	if errors.Is(err, errOwnerMismatch) {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Current owner does not match property records")
	}
	if err != nil {
		log.Printf("Error transferring property %d: %v", property.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to transfer property!")
	}

	go utils.NotifyTransfer(utils.TransferEvent{
		PropertyID: property.ID,
		PlotNumber: property.PlotNumber,
		FromWallet: currentOwner,
		ToWallet:   newOwner,
		TxHash:     reqData.TxHash,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Ownership transferred",
		"owner":   newOwner,
	})
}

// GetDocument streams a stored attachment. Deed and survey resolve on
// the property itself; id and photo resolve through the owning user's
// identity documents.
func GetDocument(c *fiber.Ctx) error {
	db := database.Database.Db

	var property models.Property
	if err := db.First(&property, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Property not found")
	}

	var ref string
	switch c.Params("docType") {
	case "deed":
		ref = property.DeedDocumentID
	case "survey":
		ref = property.SurveyPlanID
	case "id", "photo":
		var owner models.User
		if err := db.Where("wallet_address = ?", property.Owner).First(&owner).Error; err != nil {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Document not found")
		}
		if c.Params("docType") == "id" {
			ref = owner.IDDocumentID
		} else {
			ref = owner.PassportPhotoID
		}
	default:
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Invalid document type")
	}

	if ref == "" {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Document not found")
	}

	doc, err := filestore.Get(db, ref)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Document not found")
	}

	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", doc.Filename))
	return c.Send(doc.Data)
}
