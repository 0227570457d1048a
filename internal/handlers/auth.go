package handlers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/unihelp-app/backend/internal/models"
	"github.com/unihelp-app/backend/internal/repositories"
	"github.com/unihelp-app/backend/pkg/mail"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	accountRepository repositories.AccountRepository
	mailer            mail.Mailer
	jwtSecret         string
	publicBaseURL     string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accountRepo repositories.AccountRepository, mailer mail.Mailer, jwtSecret, publicBaseURL string) *AuthHandler {
	return &AuthHandler{
		accountRepository: accountRepo,
		mailer:            mailer,
		jwtSecret:         jwtSecret,
		publicBaseURL:     publicBaseURL,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/verify", h.Verify)
}

// Signup handles account registration with username, email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.CreateAccountRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Check if an account with this email or username already exists
	if _, err := h.accountRepository.GetAccountByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Account with this email already registered")
	}
	if _, err := h.accountRepository.GetAccountByUsername(req.Username); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Username already taken")
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	code, err := generateVerificationCode()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate verification code")
	}

	account := &models.Account{
		Username:         req.Username,
		Email:            req.Email,
		Password:         string(hashedPassword),
		VerificationCode: code,
	}

	if err := h.accountRepository.CreateAccount(account); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return echo.NewHTTPError(http.StatusConflict, "Account already registered")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Deliver the verification mail off the request path
	verificationURL := fmt.Sprintf("%s/api/v1/auth/verify?email=%s&code=%s", h.publicBaseURL, account.Email, code)
	go func() {
		if err := h.mailer.SendVerificationCode(account.Email, code, verificationURL); err != nil {
			zap.L().Error("sending verification mail failed",
				zap.String("email", account.Email), zap.Error(err))
		}
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Account created. Check your email for the verification code.",
		"account": account,
	})
}

// SignIn handles account authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.accountRepository.GetAccountByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if !account.IsVerified {
		return echo.NewHTTPError(http.StatusForbidden, "Account not verified. Check your email for the verification code.")
	}

	token, err := h.generateJWT(account)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "account": account})
}

// Verify confirms an account with the emailed verification code
func (h *AuthHandler) Verify(c echo.Context) error {
	var req models.VerifyAccountRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	// Support verification links as well as JSON bodies
	if req.Email == "" {
		req.Email = c.QueryParam("email")
		req.Code = c.QueryParam("code")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.accountRepository.GetAccountByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Account not found")
	}

	if account.IsVerified {
		return c.JSON(http.StatusOK, echo.Map{"message": "Account already verified"})
	}
	if account.VerificationCode != req.Code {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid verification code")
	}

	if err := h.accountRepository.VerifyAccount(account.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Account verified successfully"})
}

// generateJWT generates a JWT token for a given account
func (h *AuthHandler) generateJWT(account *models.Account) (string, error) {
	claims := &models.JwtCustomClaims{
		AccountID: account.ID,
		Email:     account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)), // Token expires in 72 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return "", err
	}
	return t, nil
}

// generateVerificationCode produces a random 6-digit code
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
