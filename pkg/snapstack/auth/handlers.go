package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sathwik/snapstack/pkg/snapstack/models"
)

// Handler handles authentication requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new auth handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SigninRequest represents the signin request body.
// Either username or email identifies the account; password is always required.
type SigninRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Signup handles user registration
// @Summary Register a new user
// @Description Create a new account. No token is issued; sign in separately.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup details"
// @Success 200 {object} map[string]string "signup successful"
// @Failure 400 {object} map[string]string "Incorrect Body"
// @Failure 411 {object} map[string]string "User already exists"
// @Router /signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect Body"})
		return
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// Duplicate username or email trips the unique index. The 411 status
		// is a historical quirk of the API contract, kept for compatibility.
		logrus.WithError(err).WithField("username", req.Username).Warn("Failed to create user")
		c.JSON(http.StatusLengthRequired, gin.H{"message": "User already exists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "signup successful"})
}

// Signin handles user login
// @Summary Sign in
// @Description Authenticate with username or email plus password to receive a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SigninRequest true "Signin credentials"
// @Success 200 {object} map[string]string "message and token"
// @Failure 400 {object} map[string]string "Incorrect Body"
// @Failure 401 {object} map[string]string "User not found / Incorrect Credentials"
// @Router /signin [post]
func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect Body"})
		return
	}

	query := h.db
	switch {
	case req.Email != "":
		query = query.Where("email = ?", req.Email)
	case req.Username != "":
		query = query.Where("username = ?", req.Username)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect Body"})
		return
	}

	var user models.User
	if err := query.First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
		return
	}

	if !CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect Credentials"})
		return
	}

	token, err := GenerateToken(user.ID)
	if err != nil {
		logrus.WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sign in successful",
		"token":   token,
	})
}

// Me returns the current authenticated user
// @Summary Get current user
// @Description Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, exists := GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// RegisterRoutes registers auth routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.Signup)
	rg.POST("/signin", h.Signin)
	rg.GET("/me", AuthMiddleware(), h.Me)
}
