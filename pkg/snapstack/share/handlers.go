package share

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sathwik/snapstack/pkg/snapstack/auth"
	"github.com/sathwik/snapstack/pkg/snapstack/models"
)

const (
	hashCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	hashLength  = 10
)

// Handler handles share-link requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new share handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ToggleShareRequest represents the request to enable or disable sharing.
// Share is a pointer so that an explicit false still binds.
type ToggleShareRequest struct {
	Share *bool `json:"share" binding:"required"`
}

// SharedContentResponse represents one content row in a resolved share
type SharedContentResponse struct {
	ID    uint     `json:"id"`
	Title string   `json:"title"`
	Link  string   `json:"link"`
	Tags  []string `json:"tags"`
}

// generateHash creates a random alphanumeric share token of the given length
func generateHash(length int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = hashCharset[r.Intn(len(hashCharset))]
	}
	return string(b)
}

// Toggle enables or disables the caller's share link.
// Enabling is idempotent: an existing link's hash is returned instead of a new
// one. The unique index on user_id serializes concurrent enables; the loser of
// that race re-reads the winner's row.
// @Summary Toggle sharing
// @Description Enable sharing (returns the hash) or disable it for the authenticated user
// @Tags share
// @Accept json
// @Produce json
// @Param request body ToggleShareRequest true "Share flag"
// @Success 200 {object} map[string]string "hash or confirmation message"
// @Failure 400 {object} map[string]string "Incorrect Body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /content/stack/share [post]
func (h *Handler) Toggle(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req ToggleShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect Body"})
		return
	}

	if !*req.Share {
		if err := h.db.Where("user_id = ?", userID).Delete(&models.ShareLink{}).Error; err != nil {
			logrus.WithError(err).Error("Failed to delete share link")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "updated sharable link"})
		return
	}

	var existing models.ShareLink
	if err := h.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"hash": existing.Hash})
		return
	}

	link := models.ShareLink{
		Hash:   generateHash(hashLength),
		UserID: userID,
	}

	if err := h.db.Create(&link).Error; err != nil {
		// A concurrent enable for the same user hit the unique index first;
		// return that winner's hash.
		if err := h.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
			c.JSON(http.StatusOK, gin.H{"hash": existing.Hash})
			return
		}
		logrus.WithError(err).Error("Failed to create share link")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hash": link.Hash})
}

// Resolve resolves a share hash to the owner's username and full content list.
// This route is public: the hash itself is the only credential a viewer holds.
// @Summary Resolve a share link
// @Description Look up a share hash and return the owner's username and content
// @Tags share
// @Produce json
// @Param shareLink path string true "Share hash"
// @Success 200 {object} map[string]interface{} "username and content"
// @Failure 404 {object} map[string]string "Link not found / User not found"
// @Router /content/stack/{shareLink} [get]
func (h *Handler) Resolve(c *gin.Context) {
	hash := c.Param("shareLink")

	var link models.ShareLink
	if err := h.db.Where("hash = ?", hash).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Link not found"})
		return
	}

	var user models.User
	if err := h.db.First(&user, link.UserID).Error; err != nil {
		// Orphaned link: the owner row is gone
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var content []models.Content
	if err := h.db.Preload("Tags").Where("user_id = ?", user.ID).Find(&content).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch shared content")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	responses := make([]SharedContentResponse, len(content))
	for i, row := range content {
		tags := make([]string, len(row.Tags))
		for j, tag := range row.Tags {
			tags[j] = tag.Name
		}
		responses[i] = SharedContentResponse{
			ID:    row.ID,
			Title: row.Title,
			Link:  row.Link,
			Tags:  tags,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"content":  responses,
	})
}

// RegisterRoutes registers the protected share toggle route
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/content/stack/share", h.Toggle)
}

// RegisterPublicRoutes registers the unauthenticated share resolve route
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/content/stack/:shareLink", h.Resolve)
}
