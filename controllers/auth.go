package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/resernova/resernova-api/db"
	"github.com/resernova/resernova-api/middleware"
	"github.com/resernova/resernova-api/models"
	"github.com/resernova/resernova-api/resolver"
	"github.com/resernova/resernova-api/utils"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Name         string `json:"name"`
	PhoneNumber  string `json:"phone_number"`
	Role         string `json:"role" validate:"omitempty,oneof=customer business"`
	BusinessName string `json:"business_name"`
	Description  string `json:"description"`
}

// Register creates an account and, for business signups, the provider
// record that marks it as a business. Provider creation is best-effort:
// a failure there is logged but never blocks the account.
func Register(c *fiber.Ctx) error {
	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := utils.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": utils.ValidationErrors(err),
		})
	}

	// Check if user already exists
	var existingUser models.User
	if db.DB.Where("email = ?", input.Email).First(&existingUser).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "User with this email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user := models.User{
		Email:        input.Email,
		Password:     string(hashedPassword),
		Name:         input.Name,
		PhoneNumber:  input.PhoneNumber,
		OTP:          utils.GenerateOTP(),
		OTPExpiresAt: time.Now().Add(15 * time.Minute),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	if input.Role == "business" {
		provider := models.Provider{
			UserID:       user.ID,
			Name:         input.Name,
			BusinessName: input.BusinessName,
			Description:  input.Description,
		}
		if err := db.DB.Create(&provider).Error; err != nil {
			// The account stays usable as a customer.
			log.Printf("Provider creation failed for user %d: %v", user.ID, err)
		}
	}

	if err := sendVerificationEmail(&user); err != nil {
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
	}

	user.Password = ""
	user.OTP = ""

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login authenticates and returns the fully resolved auth tuple along
// with the role-appropriate landing path, so the caller never has to
// wait on a second resolution round-trip before redirecting.
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if !user.IsVerified {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Email not verified. Please check your inbox for a verification code.",
		})
	}

	res, err := resolver.Resolve(db.DB, user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve user",
		})
	}

	// Create access token
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(res.Role),
		"exp":   time.Now().Add(time.Hour * 24).Unix(), // 24 hour expiration
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(middleware.JWTSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	// Create refresh token with longer expiration
	refreshClaims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 day expiration
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString(middleware.JWTSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate refresh token",
		})
	}

	return c.JSON(fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"user":         res.User,
		"provider":     res.Provider,
		"role":         res.Role,
		"redirect_to":  res.RedirectTo(),
	})
}

// Me returns the resolved tuple for the current bearer.
func Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	res, err := resolver.Resolve(db.DB, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve user",
		})
	}
	if res.User == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"user":     res.User,
		"provider": res.Provider,
		"role":     res.Role,
	})
}

// Logout doesn't actually invalidate the token as JWTs are stateless
// For a more secure implementation, you'd need to use a token blacklist
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	refreshRequest := new(RefreshRequest)
	if err := c.BodyParser(refreshRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	token, err := jwt.Parse(refreshRequest.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return middleware.JWTSecret(), nil
	})

	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	newClaims := jwt.MapClaims{
		"id":    claims["id"],
		"email": claims["email"],
		"exp":   time.Now().Add(time.Hour * 24).Unix(),
	}

	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims)
	tokenString, err := newToken.SignedString(middleware.JWTSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}

// VerifyEmail confirms an account with the emailed OTP.
func VerifyEmail(c *fiber.Ctx) error {
	type VerifyInput struct {
		Email string `json:"email" validate:"required,email"`
		OTP   string `json:"otp" validate:"required"`
	}

	input := new(VerifyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := utils.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": utils.ValidationErrors(err),
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if user.OTP == "" || user.OTP != input.OTP || time.Now().After(user.OTPExpiresAt) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired verification code",
		})
	}

	user.IsVerified = true
	user.OTP = ""
	if err := db.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify account",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Email verified successfully",
	})
}

// ResendVerification issues a fresh OTP to an unverified account.
func ResendVerification(c *fiber.Ctx) error {
	type ResendInput struct {
		Email string `json:"email" validate:"required,email"`
	}

	input := new(ResendInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := utils.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": utils.ValidationErrors(err),
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		// Same response whether or not the account exists.
		return c.JSON(fiber.Map{
			"message": "If the account exists, a verification code has been sent",
		})
	}

	if user.IsVerified {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Account is already verified",
		})
	}

	user.OTP = utils.GenerateOTP()
	user.OTPExpiresAt = time.Now().Add(15 * time.Minute)
	if err := db.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue verification code",
		})
	}

	if err := sendVerificationEmail(&user); err != nil {
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
	}

	return c.JSON(fiber.Map{
		"message": "If the account exists, a verification code has been sent",
	})
}

// ForgotPassword starts a password reset. The response does not reveal
// whether the account exists.
func ForgotPassword(c *fiber.Ctx) error {
	type ForgotInput struct {
		Email string `json:"email" validate:"required,email"`
	}

	input := new(ForgotInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := utils.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": utils.ValidationErrors(err),
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected > 0 {
		user.OTP = utils.GenerateOTP()
		user.OTPExpiresAt = time.Now().Add(15 * time.Minute)
		if err := db.DB.Save(&user).Error; err != nil {
			log.Printf("Failed to store reset code for %s: %v", user.Email, err)
		} else if err := sendResetEmail(&user); err != nil {
			log.Printf("Failed to send reset email to %s: %v", user.Email, err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "If the account exists, a reset code has been sent",
	})
}

// ResetPassword sets a new password after checking the emailed code.
func ResetPassword(c *fiber.Ctx) error {
	type ResetInput struct {
		Email    string `json:"email" validate:"required,email"`
		OTP      string `json:"otp" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	input := new(ResetInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := utils.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": utils.ValidationErrors(err),
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if user.OTP == "" || user.OTP != input.OTP || time.Now().After(user.OTPExpiresAt) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired reset code",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user.Password = string(hashedPassword)
	user.OTP = ""
	if err := db.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reset password",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Password reset successfully",
	})
}

func sendVerificationEmail(user *models.User) error {
	subject := "Verify your ReserNova account"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your verification code is <strong>%s</strong>. It expires in 15 minutes.</p>
		<p>Best regards,</p>
		<p>The ReserNova Team</p>
	`, user.Name, user.OTP)
	return utils.SendEmail(user.Email, subject, body)
}

func sendResetEmail(user *models.User) error {
	subject := "Reset your ReserNova password"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your password reset code is <strong>%s</strong>. It expires in 15 minutes.</p>
		<p>If you did not request a reset, you can ignore this email.</p>
		<p>Best regards,</p>
		<p>The ReserNova Team</p>
	`, user.Name, user.OTP)
	return utils.SendEmail(user.Email, subject, body)
}
