package authController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/LeinadCybre1024/LandRegistry/config"
	"github.com/LeinadCybre1024/LandRegistry/database"
	"github.com/LeinadCybre1024/LandRegistry/models"
	authRoutes "github.com/LeinadCybre1024/LandRegistry/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	os.Setenv("SALT_ROUND", "4") // keep bcrypt cheap in tests
	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyTransfer{},
		&models.Transaction{},
		&models.Document{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func validRegisterFields(wallet, idNumber string) map[string]string {
	return map[string]string{
		"firstName":     "Alice",
		"lastName":      "Mwangi",
		"walletAddress": wallet,
		"password":      "supersecret",
		"idNumber":      idNumber,
	}
}

func registerRequest(t *testing.T, fields map[string]string, photoName, idDocName string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if photoName != "" {
		fw, err := w.CreateFormFile("passportPhoto", photoName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("photo-bytes"))
		require.NoError(t, err)
	}
	if idDocName != "" {
		fw, err := w.CreateFormFile("idDocument", idDocName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("id-doc-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterCreatesPendingClient(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(registerRequest(t, validRegisterFields("0xABC123", "ID-100"), "photo.jpg", "id.pdf"), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "success", body["status"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, models.RoleClient, user["role"])
	assert.Equal(t, "0xabc123", user["walletAddress"], "wallet addresses are stored normalized")

	var stored models.User
	require.NoError(t, database.Database.Db.Where("wallet_address = ?", "0xabc123").First(&stored).Error)
	assert.Equal(t, models.UserStatusPending, stored.Status)
	assert.False(t, stored.KycVerified)
	assert.NotEqual(t, "supersecret", stored.Password)
	assert.NotEmpty(t, stored.PassportPhotoID)
	assert.NotEmpty(t, stored.IDDocumentID)

	var docCount int64
	database.Database.Db.Model(&models.Document{}).Count(&docCount)
	assert.EqualValues(t, 2, docCount)
}

func TestRegisterDuplicateWallet(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(registerRequest(t, validRegisterFields("0xDUP", "ID-1"), "photo.jpg", "id.pdf"), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(registerRequest(t, validRegisterFields("0xdup", "ID-2"), "photo.jpg", "id.pdf"), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "error", decode(t, resp)["status"])
}

func TestRegisterDuplicateIDNumber(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(registerRequest(t, validRegisterFields("0xAAA", "ID-SAME"), "photo.jpg", "id.pdf"), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(registerRequest(t, validRegisterFields("0xBBB", "ID-SAME"), "photo.jpg", "id.pdf"), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRegisterMissingFiles(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(registerRequest(t, validRegisterFields("0xNOF", "ID-3"), "", ""), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(registerRequest(t, validRegisterFields("0xNOF", "ID-3"), "photo.jpg", ""), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegisterRejectsDisallowedFileType(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(registerRequest(t, validRegisterFields("0xEXE", "ID-4"), "photo.exe", "id.pdf"), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count, "rejected registration must not create a user")
}

func TestRegisterMissingFields(t *testing.T) {
	app := setupApp(t)

	fields := validRegisterFields("0xMISS", "ID-5")
	delete(fields, "firstName")

	resp, err := app.Test(registerRequest(t, fields, "photo.jpg", "id.pdf"), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(registerRequest(t, validRegisterFields("0xLOGIN", "ID-6"), "photo.jpg", "id.pdf"), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Unknown wallet
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/login", fiber.Map{
		"walletAddress": "0xnobody", "password": "supersecret",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Wrong password never reads as missing user
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/login", fiber.Map{
		"walletAddress": "0xLOGIN", "password": "wrongpassword",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Correct credentials, case-insensitive wallet
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/login", fiber.Map{
		"walletAddress": "0xLOGIN", "password": "supersecret",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "0xlogin", user["walletAddress"])
	assert.Equal(t, models.RoleClient, user["role"])
}

func TestChangePassword(t *testing.T) {
	app := setupApp(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, database.Database.Db.Create(&models.User{
		Name:          "Bob Staff",
		WalletAddress: "0xbob",
		Password:      string(hash),
		Role:          models.RoleClient,
		Status:        models.UserStatusActive,
	}).Error)

	// Wrong current password
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/profile/change-password", fiber.Map{
		"currentWalletAddress": "0xBOB",
		"currentPassword":      "nottheone",
		"newPassword":          "brandnewpass",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Unknown user
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/profile/change-password", fiber.Map{
		"currentWalletAddress": "0xghost",
		"currentPassword":      "oldpassword",
		"newPassword":          "brandnewpass",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Success
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/profile/change-password", fiber.Map{
		"currentWalletAddress": "0xbob",
		"currentPassword":      "oldpassword",
		"newPassword":          "brandnewpass",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Old password no longer works, new one does
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/login", fiber.Map{
		"walletAddress": "0xbob", "password": "oldpassword",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/login", fiber.Map{
		"walletAddress": "0xbob", "password": "brandnewpass",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSessionLifecycle(t *testing.T) {
	app := setupApp(t)

	// No cookie
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/check-session", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(registerRequest(t, validRegisterFields("0xSESS", "ID-7"), "photo.jpg", "id.pdf"), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/login", fiber.Map{
		"walletAddress": "0xSESS", "password": "supersecret",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	// Session cookie authenticates
	req := httptest.NewRequest(http.MethodGet, "/check-session", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, true, body["authenticated"])

	// Logout invalidates it
	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/check-session", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
