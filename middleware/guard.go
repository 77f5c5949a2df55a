package middleware

import (
	"log"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/resernova/resernova-api/resolver"
	"gorm.io/gorm"
)

// Path classes checked by the guard, most specific first.
var (
	authPaths = []string{
		"/auth/login",
		"/auth/register",
		"/auth/forgot-password",
		"/auth/verify",
		"/auth/reset-password",
	}
	openPaths = []string{
		"/",
		"/health",
		"/categories",
		"/services",
		// Token refresh and verification resends must stay reachable
		// without a valid access token: an expired session is exactly
		// the state a refreshing client is in. They are open, not
		// auth-classed, so a still-valid session isn't bounced to the
		// landing page either.
		"/auth/refresh",
		"/auth/resend-verification",
	}
	businessPaths = []string{
		"/dashboard",
	}
)

// Guard enforces path-level access before any handler runs:
// anonymous requests may only reach auth and open paths, authenticated
// requests are bounced away from auth pages, and /dashboard requires
// the business role. An unexpected evaluation error fails open so a
// transient backend problem does not take the whole site down.
func Guard(dbConn *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, redirect := evaluate(dbConn, c)
		if !allowed {
			return c.Redirect(redirect, fiber.StatusFound)
		}
		return c.Next()
	}
}

func evaluate(dbConn *gorm.DB, c *fiber.Ctx) (allowed bool, redirect string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("guard evaluation panic on %s: %v", c.Path(), r)
			allowed = true
		}
	}()

	path := c.Path()
	isAuthPath := matchesAny(path, authPaths)
	isOpenPath := matchesAny(path, openPaths)
	isBusinessPath := matchesAny(path, businessPaths)

	userID, hasSession := sessionUserID(c)

	if !hasSession {
		if isAuthPath || isOpenPath {
			return true, ""
		}
		return false, "/auth/login?redirectedFrom=" + url.QueryEscape(path)
	}

	res, err := resolver.Resolve(dbConn, userID)
	if err != nil {
		// Transient lookup failure: treat as customer, keep going.
		log.Printf("guard role resolution failed for user %d: %v", userID, err)
		res = resolver.Resolution{Role: resolver.RoleCustomer}
	}

	if isAuthPath {
		return false, res.RedirectTo()
	}
	if isBusinessPath && res.Role != resolver.RoleBusiness {
		return false, "/"
	}
	return true, ""
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p {
			return true
		}
		if p != "/" && strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// sessionUserID extracts the user ID from a bearer token or the
// access_token cookie without going through the Protected middleware;
// the guard only needs to know who is asking, handlers still enforce
// authentication themselves.
func sessionUserID(c *fiber.Ctx) (uint, bool) {
	raw := ""
	if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		raw = strings.TrimPrefix(auth, "Bearer ")
	} else if cookie := c.Cookies("access_token"); cookie != "" {
		raw = cookie
	}
	if raw == "" {
		return 0, false
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	userID, err := extractUserID(claims)
	if err != nil {
		return 0, false
	}
	return userID, true
}
