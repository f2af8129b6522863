// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	"bimbelku_backend/internals/constants"
	dto "bimbelku_backend/internals/features/users/auth/dto"
	model "bimbelku_backend/internals/features/users/auth/model"
	helper "bimbelku_backend/internals/helpers"
	helperAuth "bimbelku_backend/internals/helpers/auth"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// POST /api/login
//
// Credentials are the only way in. A wrong password and an unknown
// email return the same message so the endpoint does not leak which
// accounts exist.
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	var user model.User
	err := ctl.DB.WithContext(c.Context()).
		Where("LOWER(user_email) = LOWER(?)", strings.TrimSpace(body.Email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load user")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "account is disabled")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(body.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	access, err := signToken(user, configs.JWTSecret, accessTokenTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to issue token")
	}
	refresh, err := signToken(user, configs.JWTRefreshSecret, refreshTokenTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return helper.JsonOK(c, "login ok", dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.ToUserResponse(user),
	})
}

// POST /api/a/users
//
// Admin (or owner) provisions accounts for their own center. The owner
// role can never be granted here.
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.AdminAndAbove...); err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.RegisterDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to hash password")
	}

	user := model.User{
		UserCenterID:     &centerID,
		UserEmail:        strings.ToLower(strings.TrimSpace(body.Email)),
		UserFullName:     strings.TrimSpace(body.FullName),
		UserPasswordHash: string(hash),
		UserRoles:        pq.StringArray(body.Roles),
		UserIsActive:     true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&user).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return helper.JsonError(c, fiber.StatusConflict, "email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create user")
	}
	return helper.JsonCreated(c, "user created", dto.ToUserResponse(user))
}

// POST /api/refresh
func (ctl *AuthController) Refresh(c *fiber.Ctx) error {
	var body dto.RefreshDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(body.RefreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "unexpected signing method")
		}
		return []byte(configs.JWTRefreshSecret), nil
	}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid refresh token")
	}

	userIDStr, _ := claims["user_id"].(string)
	if userIDStr == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid refresh token")
	}

	var user model.User
	if err := ctl.DB.WithContext(c.Context()).
		Where("user_id = ?", userIDStr).
		First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "account no longer exists")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "account is disabled")
	}

	access, err := signToken(user, configs.JWTSecret, accessTokenTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to issue token")
	}
	refresh, err := signToken(user, configs.JWTRefreshSecret, refreshTokenTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return helper.JsonOK(c, "token refreshed", dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.ToUserResponse(user),
	})
}

// GET /api/u/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user model.User
	if err := ctl.DB.WithContext(c.Context()).
		Where("user_id = ?", userID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "user not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load user")
	}
	return helper.JsonOK(c, "profile", dto.ToUserResponse(user))
}

// signToken builds the HMAC JWT the auth middleware expects: user_id,
// roles and (when present) center_id.
func signToken(user model.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.UserID.String(),
		"roles":   []string(user.UserRoles),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	if user.UserCenterID != nil {
		claims["center_id"] = user.UserCenterID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
