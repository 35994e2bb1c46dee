package authController

import (
	"errors"
	"log"
	"strings"

	"github.com/LeinadCybre1024/LandRegistry/config"
	"github.com/LeinadCybre1024/LandRegistry/database"
	"github.com/LeinadCybre1024/LandRegistry/middleware"
	"github.com/LeinadCybre1024/LandRegistry/models"
	"github.com/LeinadCybre1024/LandRegistry/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates a CLIENT account awaiting admin approval. Expects a
// multipart form with the text fields plus passportPhoto and idDocument.
func Register(c *fiber.Ctx) error {
	firstName := strings.TrimSpace(c.FormValue("firstName"))
	lastName := strings.TrimSpace(c.FormValue("lastName"))
	wallet := models.NormalizeWallet(c.FormValue("walletAddress"))
	password := c.FormValue("password")
	idNumber := strings.TrimSpace(c.FormValue("idNumber"))

	db := database.Database.Db

	// Check if wallet address already exists
	if err := db.Where("wallet_address = ?", wallet).First(&models.User{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "User already exists")
	}

	// Check if ID number is already registered
	if err := db.Where("id_number = ?", idNumber).First(&models.User{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "ID number already registered")
	}

	passportPhoto, err := c.FormFile("passportPhoto")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Both passport photo and ID document are required")
	}
	idDocument, err := c.FormFile("idDocument")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Both passport photo and ID document are required")
	}

	if !utils.AllowedFile(passportPhoto.Filename) || !utils.AllowedFile(idDocument.Filename) {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid file type")
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process your request!")
	}

	passportID, err := utils.StoreUpload(db, passportPhoto, utils.StoredName(wallet, "passport", passportPhoto.Filename))
	if err != nil {
		log.Printf("Error storing passport photo: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	idDocID, err := utils.StoreUpload(db, idDocument, utils.StoredName(wallet, "id", idDocument.Filename))
	if err != nil {
		log.Printf("Error storing ID document: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	newUser := models.User{
		FirstName:       firstName,
		LastName:        lastName,
		Name:            firstName + " " + lastName,
		WalletAddress:   wallet,
		Password:        string(hashedPassword),
		IDNumber:        &idNumber,
		Role:            models.RoleClient,
		Status:          models.UserStatusPending, // new users need admin approval
		PassportPhotoID: passportID,
		IDDocumentID:    idDocID,
	}

	if err := db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "User already exists")
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to register user!")
	}

	if err := middleware.SetSession(c, newUser.ID, newUser.WalletAddress, newUser.Role); err != nil {
		log.Printf("Error establishing session: %v", err)
	}

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, fiber.Map{
		"message": "Registration successful. Awaiting admin approval.",
		"user": fiber.Map{
			"firstName":     newUser.FirstName,
			"lastName":      newUser.LastName,
			"walletAddress": newUser.WalletAddress,
			"role":          newUser.Role,
		},
	})
}

// Login authenticates by wallet address and password, binds the session
// and returns the profile plus a signed token.
func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		WalletAddress string `json:"walletAddress"`
		Password      string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Failed to parse request body!")
	}

	var user models.User
	result := database.Database.Db.
		Where("wallet_address = ?", models.NormalizeWallet(reqData.WalletAddress)).
		First(&user)
	if result.Error != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid password")
	}

	if err := middleware.SetSession(c, user.ID, user.WalletAddress, user.Role); err != nil {
		log.Printf("Error establishing session: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.WalletAddress, user.Role)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{
		"user": fiber.Map{
			"name":          user.Name,
			"walletAddress": user.WalletAddress,
			"role":          user.Role,
			"status":        user.Status,
			"kycVerified":   user.KycVerified,
		},
		"token": token,
	})
}

// Logout destroys the session bound to the request.
func Logout(c *fiber.Ctx) error {
	if err := middleware.ClearSession(c); err != nil {
		log.Printf("Error clearing session: %v", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, nil)
}

// CheckSession reports whether the request carries a live session and
// echoes the bound identity.
func CheckSession(c *fiber.Ctx) error {
	sess, err := middleware.Store.Get(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"authenticated": false})
	}

	wallet, ok := sess.Get("walletAddress").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"authenticated": false})
	}

	var user models.User
	if err := database.Database.Db.Where("wallet_address = ?", wallet).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"authenticated": false})
	}

	return c.JSON(fiber.Map{
		"authenticated": true,
		"user": fiber.Map{
			"name":          user.Name,
			"walletAddress": user.WalletAddress,
			"role":          user.Role,
		},
	})
}

// ChangePassword verifies the current password and overwrites the hash.
func ChangePassword(c *fiber.Ctx) error {
	reqData := new(struct {
		CurrentWalletAddress string `json:"currentWalletAddress"`
		CurrentPassword      string `json:"currentPassword"`
		NewPassword          string `json:"newPassword"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Failed to parse request body!")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("wallet_address = ?", models.NormalizeWallet(reqData.CurrentWalletAddress)).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.CurrentPassword)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process your request!")
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Printf("Error updating password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to change password!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Password changed successfully",
	})
}
