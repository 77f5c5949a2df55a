// Package resolver turns an authenticated user ID into the resolved
// {user, provider, role} tuple. It is the only place role derivation
// lives: login, /auth/me and the route guard all call Resolve.
package resolver

import (
	"errors"
	"log"

	"github.com/resernova/resernova-api/models"
	"gorm.io/gorm"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleBusiness Role = "business"
	RoleAdmin    Role = "admin"
)

// Resolution is the session-scoped auth tuple shared by the whole app.
// The resolver is its sole writer; everything else reads.
type Resolution struct {
	User     *models.User     `json:"user"`
	Provider *models.Provider `json:"provider"`
	Role     Role             `json:"role"`
}

// Anonymous is the all-null tuple returned when there is no session.
var Anonymous = Resolution{}

// RedirectTo is the landing path for a resolved role.
func (r Resolution) RedirectTo() string {
	if r.Role == RoleBusiness {
		return "/dashboard"
	}
	return "/"
}

// Resolve fetches the user and, if present, the linked provider record.
// Role derivation: the admin flag wins; otherwise a provider record
// existing means business, absent means customer. A provider lookup
// error is never fatal — the caller degrades to customer rather than
// being blocked.
func Resolve(db *gorm.DB, userID uint) (Resolution, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Anonymous, nil
		}
		return Anonymous, err
	}
	user.Password = ""
	user.OTP = ""

	if user.IsAdmin {
		return Resolution{User: &user, Role: RoleAdmin}, nil
	}

	var provider models.Provider
	err := db.Where("user_id = ?", userID).First(&provider).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("provider lookup failed for user %d: %v", userID, err)
		}
		return Resolution{User: &user, Role: RoleCustomer}, nil
	}

	return Resolution{User: &user, Provider: &provider, Role: RoleBusiness}, nil
}
