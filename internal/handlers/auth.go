package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	gogithub "github.com/google/go-github/github"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"github.com/mitul77/gatherly/backend/internal/email"
	"github.com/mitul77/gatherly/backend/internal/models"
	"github.com/mitul77/gatherly/backend/internal/repositories"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	emailSender    email.Sender
	oauthConfig    *oauth2.Config
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, sender email.Sender, githubClientID, githubClientSecret, clientAppURL, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		emailSender:    sender,
		oauthConfig: &oauth2.Config{
			ClientID:     githubClientID,
			ClientSecret: githubClientSecret,
			Endpoint:     githuboauth.Endpoint,
			RedirectURL:  clientAppURL + "/auth-callback",
			Scopes:       []string{"read:user", "user:email"},
		},
		jwtSecret: jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/github-login", h.GitHubLogin)
}

// RegisterAccountRoutes registers routes that act on the authenticated
// user's own account; the group must carry the JWT middleware
func (h *AuthHandler) RegisterAccountRoutes(g *echo.Group) {
	g.GET("/account/user-info", h.GetUserInfo)
	g.POST("/account/change-password", h.ChangePassword)
}

// Register handles local user registration with email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Check if user with this email already exists
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    string(hashedPassword),
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Welcome email is best-effort; registration succeeds either way
	go func() {
		ctx, cancel := contextWithTimeout()
		defer cancel()
		_ = h.emailSender.Send(ctx, user.Email, "Welcome to Gatherly",
			fmt.Sprintf("Hi %s, your account is ready. Sign in and find an activity near you.", user.DisplayName))
	}()

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token})
}

// Login handles local user authentication with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if user.ExternalLogin {
		return echo.NewHTTPError(http.StatusUnauthorized, "Account uses GitHub sign-in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// GitHubLogin exchanges a GitHub OAuth code for an access token, fetches
// the GitHub profile, and finds or creates the matching local account.
func (h *AuthHandler) GitHubLogin(c echo.Context) error {
	var req models.GitHubLoginRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing authentication code")
	}

	ctx := c.Request().Context()

	token, err := h.oauthConfig.Exchange(ctx, req.Code)
	if err != nil {
		log.Warn().Err(err).Msg("github code exchange failed")
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to get access token")
	}

	client := gogithub.NewClient(h.oauthConfig.Client(ctx, token))

	ghUser, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to fetch user from GitHub")
	}

	userEmail := ghUser.GetEmail()
	if userEmail == "" {
		// The profile email can be private; ask for the verified primary
		emails, _, err := client.Users.ListEmails(ctx, nil)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to get email from GitHub")
		}
		for _, e := range emails {
			if e.GetPrimary() && e.GetVerified() {
				userEmail = e.GetEmail()
				break
			}
		}
		if userEmail == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to get email from GitHub")
		}
	}

	user, err := h.userRepository.GetUserByEmail(userEmail)
	if errors.Is(err, repositories.ErrNotFound) {
		displayName := ghUser.GetName()
		if displayName == "" {
			displayName = ghUser.GetLogin()
		}
		user = &models.User{
			DisplayName:   displayName,
			Email:         userEmail,
			ImageURL:      ghUser.GetAvatarURL(),
			ExternalLogin: true,
		}
		if err := h.userRepository.CreateUser(user); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
		}
	} else if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	jwtToken, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": jwtToken})
}

// GetUserInfo returns the authenticated user's own account details
func (h *AuthHandler) GetUserInfo(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Account no longer exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}

// ChangePassword verifies the current password and re-hashes the new one
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Account no longer exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if user.ExternalLogin {
		return echo.NewHTTPError(http.StatusBadRequest, "Account uses GitHub sign-in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}
	user.Password = string(hashedPassword)

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Security notice is best-effort
	ctx, cancel := contextWithTimeout()
	defer cancel()
	if err := h.emailSender.Send(ctx, user.Email, "Your password was changed",
		"The password for your Gatherly account was just changed. If this wasn't you, reset it now."); err != nil {
		log.Warn().Err(err).Msg("failed to send password change notice")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// generateJWT creates a signed token for the user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
