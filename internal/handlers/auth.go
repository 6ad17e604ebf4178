package handlers

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rs/zerolog/log"
	"github.com/satari/satari-api/internal/services"
	"github.com/satari/satari-api/pkg/dto"
)

type AuthHandler struct {
	userService  UserServiceInterface
	tokenService TokenServiceInterface
	jwtService   JWTServiceInterface
}

func NewAuthHandler(userService UserServiceInterface, tokenService TokenServiceInterface, jwtService JWTServiceInterface) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		jwtService:   jwtService,
	}
}

// authenticate resolves a body-carried token to a user UID. On failure it
// writes the error response and returns false.
func authenticate(c *drift.Context, jwtService JWTServiceInterface, token string) (uuid.UUID, bool) {
	if token == "" {
		c.BadRequest("Token is missing")
		return uuid.Nil, false
	}
	claims, err := jwtService.Validate(token)
	if err != nil {
		c.Unauthorized("Invalid token")
		return uuid.Nil, false
	}
	return claims.UserUID, true
}

func clientIP(c *drift.Context) string {
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}

func (h *AuthHandler) Signup(c *drift.Context) {
	var req dto.SignupRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("Invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.BadRequest("username, email and password are required")
		return
	}

	passwordHash, err := services.HashPassword(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		c.InternalServerError("User registration failed")
		return
	}

	ctx := context.Background()
	user, err := h.userService.Register(ctx, req.Username, req.Email, passwordHash, clientIP(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameExists):
			c.BadRequest("Username already exists")
		case errors.Is(err, services.ErrEmailExists):
			c.BadRequest("Email already exists")
		default:
			log.Error().Err(err).Msg("failed to register user")
			c.InternalServerError("User registration failed")
		}
		return
	}

	token, err := h.jwtService.Generate(user.ID, user.TokenVersion)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")
		c.InternalServerError("User registration failed")
		return
	}
	if err := h.tokenService.Store(ctx, user.ID, services.HashToken(token), time.Now().Add(h.jwtService.Expiry())); err != nil {
		log.Error().Err(err).Msg("failed to store token")
		c.InternalServerError("User registration failed")
		return
	}
	// The version is bumped after the first token is signed, so the stored
	// version is always one ahead of the signup token's claim.
	if err := h.userService.IncrementTokenVersion(ctx, user.ID); err != nil {
		log.Error().Err(err).Msg("failed to increment token version")
		c.InternalServerError("User registration failed")
		return
	}

	c.JSON(201, dto.AuthResponse{
		Message: "User registration successful",
		UserUID: user.ID,
		Token:   token,
	})
}

func (h *AuthHandler) Signin(c *drift.Context) {
	var req dto.SigninRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		c.BadRequest("username and password are required")
		return
	}

	ctx := context.Background()
	user, err := h.userService.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.Unauthorized("Invalid username or password")
			return
		}
		log.Error().Err(err).Msg("failed to fetch user")
		c.InternalServerError("Login failed")
		return
	}
	if !services.CheckPassword(req.Password, user.PasswordHash) {
		c.Unauthorized("Invalid username or password")
		return
	}

	token, err := h.jwtService.Generate(user.ID, user.TokenVersion)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")
		c.InternalServerError("Login failed")
		return
	}
	if err := h.tokenService.Store(ctx, user.ID, services.HashToken(token), time.Now().Add(h.jwtService.Expiry())); err != nil {
		log.Error().Err(err).Msg("failed to store token")
		c.InternalServerError("Login failed")
		return
	}

	c.JSON(200, dto.AuthResponse{
		Message: "Login successful",
		UserUID: user.ID,
		Token:   token,
	})
}

// TokenSignin exchanges a previously issued token for the user's profile.
func (h *AuthHandler) TokenSignin(c *drift.Context) {
	var req dto.TokenSigninRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("Invalid request body")
		return
	}

	userUID, ok := authenticate(c, h.jwtService, req.Token)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(context.Background(), userUID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.NotFound("User not found")
			return
		}
		log.Error().Err(err).Msg("failed to fetch user")
		c.InternalServerError("Login failed")
		return
	}

	c.JSON(200, user)
}
