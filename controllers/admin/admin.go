package adminController

import (
	"errors"
	"log"
	"time"

	"github.com/LeinadCybre1024/LandRegistry/config"
	"github.com/LeinadCybre1024/LandRegistry/database"
	"github.com/LeinadCybre1024/LandRegistry/middleware"
	"github.com/LeinadCybre1024/LandRegistry/models"
	"github.com/LeinadCybre1024/LandRegistry/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserList returns all accounts, optionally filtered by role. Unknown
// role filters are ignored rather than rejected.
func UserList(c *fiber.Ctx) error {
	query := database.Database.Db.Model(&models.User{})

	if role := c.Query("role"); models.ValidRole(role) {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		log.Printf("Error fetching user list: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch user list!")
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{
		"users": users,
	})
}

// CreateUser provisions a staff or admin account. Accounts created here
// skip the approval workflow and start active.
func CreateUser(c *fiber.Ctx) error {
	reqData := new(struct {
		Name          string `json:"name"`
		WalletAddress string `json:"walletAddress"`
		Password      string `json:"password"`
		UserRole      string `json:"userRole"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	db := database.Database.Db
	wallet := models.NormalizeWallet(reqData.WalletAddress)

	// Check if wallet address already exists
	if err := db.Where("wallet_address = ?", wallet).First(&models.User{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "User already exists")
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process your request!")
	}

	createdBy, _ := c.Locals("walletAddress").(string)

	newUser := models.User{
		Name:          reqData.Name,
		WalletAddress: wallet,
		Password:      string(hashedPassword),
		Role:          reqData.UserRole,
		Status:        models.UserStatusActive,
		CreatedBy:     createdBy,
	}

	if err := db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "User already exists")
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create user!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, fiber.Map{
		"message": "User created successfully",
		"userId":  newUser.ID,
	})
}

// ApproveUser activates a pending account and marks KYC verified. The
// transition is terminal: approving a missing or already-active user
// reports NotFound so repeated approvals never double-count.
func ApproveUser(c *fiber.Ctx) error {
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found")
	}

	if user.Status != models.UserStatusPending {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found or already active")
	}

	updates := map[string]interface{}{
		"status":       models.UserStatusActive,
		"kyc_verified": true,
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Error approving user %d: %v", user.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to approve user!")
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{
		"message": "User approved",
		"user":    user,
	})
}

// PropertyList returns properties by verification status (default
// pending), each with the owner's name and wallet attached.
func PropertyList(c *fiber.Ctx) error {
	status := c.Query("status", models.PropertyStatusPending)
	db := database.Database.Db

	var properties []models.Property
	if err := db.Where("status = ?", status).Find(&properties).Error; err != nil {
		log.Printf("Error fetching properties with status %s: %v", status, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch properties!")
	}

	serialized := make([]fiber.Map, 0, len(properties))
	for _, p := range properties {
		entry := fiber.Map{
			"id":            p.ID,
			"title":         p.Title,
			"streetAddress": p.StreetAddress,
			"postalCode":    p.PostalCode,
			"county":        p.County,
			"plotNumber":    p.PlotNumber,
			"owner":         p.Owner,
			"status":        p.Status,
			"createdAt":     p.CreatedAt,
			"updatedAt":     p.UpdatedAt,
		}

		var owner models.User
		if err := db.Where("wallet_address = ?", p.Owner).First(&owner).Error; err == nil {
			entry["ownerDetails"] = fiber.Map{
				"name":          owner.Name,
				"walletAddress": owner.WalletAddress,
			}
		}

		serialized = append(serialized, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{
		"properties": serialized,
	})
}

// VerifyProperty applies an admin decision to a pending property. The
// wallet path parameter names the deciding admin and is recorded as the
// verifier. pending -> verified|rejected is terminal.
func VerifyProperty(c *fiber.Ctx) error {
	db := database.Database.Db

	var property models.Property
	if err := db.First(&property, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Property not found")
	}

	adminWallet := models.NormalizeWallet(c.Params("wallet"))

	var admin models.User
	if err := db.Where("wallet_address = ?", adminWallet).First(&admin).Error; err != nil || admin.Role != models.RoleAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Unauthorized")
	}

	reqData := new(struct {
		Action string `json:"action"`
		Reason string `json:"reason"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	var newStatus string
	switch reqData.Action {
	case "approve":
		newStatus = models.PropertyStatusVerified
	case "reject":
		newStatus = models.PropertyStatusRejected
	default:
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid action")
	}

	if property.Status != models.PropertyStatusPending {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Property has already been verified")
	}

	verificationDate := time.Now().UTC()
	updates := map[string]interface{}{
		"status":            newStatus,
		"verified_by":       adminWallet,
		"verification_date": verificationDate,
	}
	if reqData.Action == "reject" {
		updates["rejection_reason"] = reqData.Reason
	}

	if err := db.Model(&property).Updates(updates).Error; err != nil {
		log.Printf("Error verifying property %d: %v", property.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to verify property!")
	}

	go utils.NotifyVerification(utils.VerificationEvent{
		PropertyID: property.ID,
		PlotNumber: property.PlotNumber,
		Status:     newStatus,
		VerifiedBy: adminWallet,
	})

	message := "Property verified successfully"
	if newStatus == models.PropertyStatusRejected {
		message = "Property rejected successfully"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{
		"message": message,
	})
}

// Dashboard aggregates the counters the revenue department dashboard
// renders: accounts by status, properties by status, transfer volume for
// the current month.
func Dashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var pendingUsers, activeUsers int64
	db.Model(&models.User{}).Where("status = ?", models.UserStatusPending).Count(&pendingUsers)
	db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).Count(&activeUsers)

	propertyCounts := make(map[string]int64)
	for _, status := range []string{
		models.PropertyStatusPending,
		models.PropertyStatusVerified,
		models.PropertyStatusRejected,
	} {
		var count int64
		db.Model(&models.Property{}).Where("status = ?", status).Count(&count)
		propertyCounts[status] = count
	}

	var transfersThisMonth int64
	db.Model(&models.Transaction{}).
		Where("created_at >= ?", now.BeginningOfMonth()).
		Count(&transfersThisMonth)

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{
		"users": fiber.Map{
			"pending": pendingUsers,
			"active":  activeUsers,
		},
		"properties":         propertyCounts,
		"transfersThisMonth": transfersThisMonth,
	})
}
