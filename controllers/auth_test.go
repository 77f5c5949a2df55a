package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/resernova/resernova-api/db"
	"github.com/resernova/resernova-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func authTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.Provider{}))
	db.DB = conn

	app := fiber.New()
	app.Post("/auth/register", Register)
	app.Post("/auth/login", Login)
	app.Post("/auth/verify", VerifyEmail)
	app.Post("/auth/reset-password", ResetPassword)
	return app
}

// markVerified flips the account to verified directly, for tests that
// are not about the verification flow itself.
func markVerified(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, db.DB.Model(&models.User{}).
		Where("email = ?", email).Update("is_verified", true).Error)
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRegisterRejectsMalformedEmailBeforeAnyWrite(t *testing.T) {
	app := authTestApp(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"email":    "not-an-email",
		"password": "Abcdef12",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "email")

	var count int64
	db.DB.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	app := authTestApp(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"email":    "a@b.com",
		"password": "short7!",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "password")
}

func TestResetPasswordRejectsShortPassword(t *testing.T) {
	app := authTestApp(t)

	resp := postJSON(t, app, "/auth/reset-password", fiber.Map{
		"email":    "a@b.com",
		"otp":      "123456",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestBusinessRegistrationResolvesToBusinessOnLogin(t *testing.T) {
	app := authTestApp(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"email":         "a@b.com",
		"password":      "Abcdef12",
		"name":          "Ada",
		"phone_number":  "+15551234567",
		"role":          "business",
		"business_name": "Acme",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.DB.Where("email = ?", "a@b.com").First(&user).Error)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "+15551234567", user.PhoneNumber)

	var provider models.Provider
	require.NoError(t, db.DB.Where("user_id = ?", user.ID).First(&provider).Error)
	assert.Equal(t, "Acme", provider.BusinessName)

	resp = postJSON(t, app, "/auth/verify", fiber.Map{
		"email": "a@b.com",
		"otp":   user.OTP,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "a@b.com",
		"password": "Abcdef12",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "business", body["role"])
	assert.Equal(t, "/dashboard", body["redirect_to"])
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["refreshToken"])
}

func TestCustomerRegistrationResolvesToCustomer(t *testing.T) {
	app := authTestApp(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"email":    "c@d.com",
		"password": "Abcdef12",
		"name":     "Cal",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	markVerified(t, "c@d.com")

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "c@d.com",
		"password": "Abcdef12",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "customer", body["role"])
	assert.Equal(t, "/", body["redirect_to"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := authTestApp(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"email":    "e@f.com",
		"password": "Abcdef12",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "e@f.com",
		"password": "WrongPass1",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "nobody@f.com",
		"password": "Abcdef12",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRejectsUnverifiedAccount(t *testing.T) {
	app := authTestApp(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"email":    "new@f.com",
		"password": "Abcdef12",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "new@f.com",
		"password": "Abcdef12",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "not verified")

	markVerified(t, "new@f.com")
	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "new@f.com",
		"password": "Abcdef12",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	app := authTestApp(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"email":    "dup@x.com",
		"password": "Abcdef12",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/register", fiber.Map{
		"email":    "dup@x.com",
		"password": "Abcdef12",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
