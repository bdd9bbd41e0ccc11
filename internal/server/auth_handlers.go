package server

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"blogicum/internal/cache"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,first_name=string,last_name=string} true "Signup request"
// @Success 201 {object} object{token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	echo := fiber.Map{
		"username":   req.Username,
		"email":      req.Email,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return respondFormError(c,
			models.NewValidationError("Username, email, and password are required"), echo)
	}
	checks := []error{
		validation.ValidateUsername(req.Username),
		validation.ValidateEmail(req.Email),
		validation.ValidatePassword(req.Password),
		validation.ValidateName("first_name", req.FirstName),
		validation.ValidateName("last_name", req.LastName),
	}
	for _, err := range checks {
		if err != nil {
			return respondFormError(c, models.NewValidationError(err.Error()), echo)
		}
	}

	ctx := c.UserContext()
	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return respondError(c, err)
	}
	if existing == nil {
		existing, err = s.userRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return respondError(c, err)
		}
	}
	if existing != nil {
		return models.RespondWithInput(c, fiber.StatusConflict,
			models.NewValidationError("User already exists"), echo)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashedPassword),
	}
	if createErr := s.userRepo.Create(ctx, user); createErr != nil {
		return respondFormError(c, createErr, echo)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  newAccountView(user),
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate by username or email and return a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{login=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Login    string `json:"login"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	login := strings.TrimSpace(req.Login)
	if login == "" {
		login = strings.TrimSpace(req.Username)
	}
	if login == "" {
		login = strings.TrimSpace(req.Email)
	}
	if login == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Login and password are required"))
	}

	ctx := c.UserContext()
	lookup := s.userRepo.GetByUsername
	if strings.Contains(login, "@") {
		lookup = s.userRepo.GetByEmail
	}
	user, err := lookup(ctx, login)
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  newAccountView(user),
	})
}

// Logout handles POST /api/auth/logout
// @Summary User logout
// @Description Revoke the presented token until it expires
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("tokenID").(string)
	expiresAt, _ := c.Locals("tokenExpiresAt").(time.Time)
	if jti == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token cannot be revoked"))
	}
	if s.redis == nil {
		return respondError(c, models.NewInternalError(errors.New("token revocation store unavailable")))
	}

	ttl := time.Until(expiresAt)
	if ttl > 0 {
		if err := s.redis.Set(c.UserContext(), cache.TokenBlacklistPrefix+jti, "1", ttl).Err(); err != nil {
			return respondError(c, models.NewInternalError(err))
		}
	}

	middleware.Logger.InfoContext(c.UserContext(), "token revoked", slog.String("jti", jti))
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(tokenLifetime).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
