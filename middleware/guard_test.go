package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/resernova/resernova-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func guardTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.Provider{}))

	app := fiber.New()
	app.Use(Guard(conn))
	app.All("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, conn
}

func bearerFor(t *testing.T, userID uint) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTSecret())
	require.NoError(t, err)
	return "Bearer " + token
}

func get(t *testing.T, app *fiber.App, path, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestGuardAnonymousOnProtectedPathRedirectsToLogin(t *testing.T) {
	app, _ := guardTestApp(t)

	resp := get(t, app, "/dashboard", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login?redirectedFrom=%2Fdashboard", resp.Header.Get("Location"))
}

func TestGuardAnonymousOnOpenAndAuthPathsPasses(t *testing.T) {
	app, _ := guardTestApp(t)

	for _, path := range []string{"/", "/health", "/services", "/auth/login", "/auth/register"} {
		resp := get(t, app, path, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestGuardCustomerOnDashboardRedirectsHome(t *testing.T) {
	app, conn := guardTestApp(t)
	user := models.User{Email: "jo@example.com"}
	require.NoError(t, conn.Create(&user).Error)

	resp := get(t, app, "/dashboard", bearerFor(t, user.ID))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestGuardBusinessOnDashboardPasses(t *testing.T) {
	app, conn := guardTestApp(t)
	user := models.User{Email: "acme@example.com"}
	require.NoError(t, conn.Create(&user).Error)
	require.NoError(t, conn.Create(&models.Provider{UserID: user.ID, BusinessName: "Acme"}).Error)

	resp := get(t, app, "/dashboard/services", bearerFor(t, user.ID))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGuardAuthenticatedOnAuthPageRedirectsToLanding(t *testing.T) {
	app, conn := guardTestApp(t)

	customer := models.User{Email: "jo@example.com"}
	require.NoError(t, conn.Create(&customer).Error)
	resp := get(t, app, "/auth/login", bearerFor(t, customer.ID))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	owner := models.User{Email: "acme@example.com"}
	require.NoError(t, conn.Create(&owner).Error)
	require.NoError(t, conn.Create(&models.Provider{UserID: owner.ID, BusinessName: "Acme"}).Error)
	resp = get(t, app, "/auth/login", bearerFor(t, owner.ID))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestGuardRefreshReachableWithoutValidToken(t *testing.T) {
	app, conn := guardTestApp(t)

	// No token at all.
	for _, path := range []string{"/auth/refresh", "/auth/resend-verification"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}

	// An expired access token is the normal state of a refreshing
	// client; it must not be bounced to login.
	user := models.User{Email: "jo@example.com"}
	require.NoError(t, conn.Create(&user).Error)
	claims := jwt.MapClaims{"id": user.ID, "exp": time.Now().Add(-time.Hour).Unix()}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTSecret())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+expired)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A still-valid session may refresh early too.
	resp = get(t, app, "/auth/refresh", bearerFor(t, user.ID))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGuardGarbageTokenIsAnonymous(t *testing.T) {
	app, _ := guardTestApp(t)

	resp := get(t, app, "/dashboard", "Bearer not-a-token")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login?redirectedFrom=%2Fdashboard", resp.Header.Get("Location"))
}

func TestGuardCookieSessionAccepted(t *testing.T) {
	app, conn := guardTestApp(t)
	user := models.User{Email: "acme@example.com"}
	require.NoError(t, conn.Create(&user).Error)
	require.NoError(t, conn.Create(&models.Provider{UserID: user.ID, BusinessName: "Acme"}).Error)

	claims := jwt.MapClaims{"id": user.ID, "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTSecret())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
