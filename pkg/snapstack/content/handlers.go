package content

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sathwik/snapstack/pkg/snapstack/auth"
	"github.com/sathwik/snapstack/pkg/snapstack/models"
)

// Handler handles content-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new content handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateContentRequest represents the request to create content.
// The link is only checked for presence, not for URL shape.
type CreateContentRequest struct {
	Title string `json:"title" binding:"required"`
	Link  string `json:"link" binding:"required"`
}

// OwnerResponse represents the resolved owner of a content row
type OwnerResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ContentResponse represents a content row in API responses
type ContentResponse struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	Link      string        `json:"link"`
	Tags      []string      `json:"tags"`
	Owner     OwnerResponse `json:"userId"`
	CreatedAt string        `json:"created_at"`
}

func contentToResponse(content models.Content) ContentResponse {
	tags := make([]string, len(content.Tags))
	for i, tag := range content.Tags {
		tags[i] = tag.Name
	}
	return ContentResponse{
		ID:    content.ID,
		Title: content.Title,
		Link:  content.Link,
		Tags:  tags,
		Owner: OwnerResponse{
			ID:       content.User.ID,
			Username: content.User.Username,
		},
		CreatedAt: content.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// Create creates a new content row owned by the caller
// @Summary Add content
// @Description Save a new bookmark for the authenticated user
// @Tags content
// @Accept json
// @Produce json
// @Param request body CreateContentRequest true "Content details"
// @Success 200 {object} map[string]string "Content added successfully"
// @Failure 400 {object} map[string]string "Incorrect Body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /content [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect Body"})
		return
	}

	content := models.Content{
		Title:  req.Title,
		Link:   req.Link,
		UserID: userID,
		Tags:   []models.Tag{},
	}

	if err := h.db.Create(&content).Error; err != nil {
		logrus.WithError(err).Error("Failed to create content")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content added successfully"})
}

// List returns all content owned by the caller
// @Summary List content
// @Description Get all content owned by the authenticated user, with the owner resolved
// @Tags content
// @Produce json
// @Success 200 {object} map[string][]ContentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /content [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var content []models.Content
	if err := h.db.Preload("User").Preload("Tags").Where("user_id = ?", userID).Find(&content).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch content")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	responses := make([]ContentResponse, len(content))
	for i, row := range content {
		responses[i] = contentToResponse(row)
	}

	c.JSON(http.StatusOK, gin.H{"content": responses})
}

// Delete deletes a content row owned by the caller.
// The compound filter (id AND user_id) means a guessed id belonging to another
// user deletes nothing and reports not found.
// @Summary Delete content
// @Description Delete a content row by id; only the owner can delete it
// @Tags content
// @Produce json
// @Param id path int true "Content ID"
// @Success 200 {object} map[string]string "Content deleted successfully"
// @Failure 400 {object} map[string]string "Invalid content ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Content not found"
// @Security BearerAuth
// @Router /content/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	contentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid content ID"})
		return
	}

	result := h.db.Where("id = ? AND user_id = ?", contentID, userID).Delete(&models.Content{})
	if result.Error != nil {
		logrus.WithError(result.Error).Error("Failed to delete content")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Content not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted successfully"})
}

// RegisterRoutes registers content routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/content", h.Create)
	rg.GET("/content", h.List)
	rg.DELETE("/content/:id", h.Delete)
}
