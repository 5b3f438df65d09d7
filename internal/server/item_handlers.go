package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/itemhub-dev/itemhub/internal/models"
)

// ItemRequest represents the create/update body for an item
type ItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// @Summary List own items
// @Description List items owned by the authenticated user
// @Tags items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Item
// @Failure 401 {object} map[string]interface{}
// @Router /items/ [get]
func (s *Server) listItems(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	var items []models.Item
	if err := s.db.Preload("Owner").
		Where("owner_id = ?", sessionData.UserID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary List all items
// @Description List every user's items (admin only)
// @Tags items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Item
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /items/all [get]
func (s *Server) listAllItems(c *gin.Context) {
	var items []models.Item
	if err := s.db.Preload("Owner").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list all items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Create item
// @Description Create an item owned by the authenticated user
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ItemRequest true "Item"
// @Success 201 {object} models.Item
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /items/ [post]
func (s *Server) createItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionData, _ := GetSessionData(c)

	item := &models.Item{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     sessionData.UserID,
	}

	if err := s.db.Create(item).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	s.logger.Info().
		Str("item_id", item.ID).
		Str("owner_id", sessionData.UserID).
		Msg("Item created")

	c.JSON(http.StatusCreated, item)
}

// loadItemForWrite fetches an item and enforces owner-or-superuser access.
// Responds with 404/403 and returns false if the caller may not touch it.
func (s *Server) loadItemForWrite(c *gin.Context) (*models.Item, bool) {
	itemID := c.Param("id")
	sessionData, _ := GetSessionData(c)

	var item models.Item
	if err := s.db.Where("id = ?", itemID).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return nil, false
		}
		s.logger.Error().Err(err).Str("item_id", itemID).Msg("Failed to find item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return nil, false
	}

	if item.OwnerID != sessionData.UserID && !sessionData.IsSuperuser {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return nil, false
	}

	return &item, true
}

// @Summary Update item
// @Description Update an item (owner or admin)
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body ItemRequest true "Item"
// @Success 200 {object} models.Item
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /items/{id} [put]
func (s *Server) updateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, ok := s.loadItemForWrite(c)
	if !ok {
		return
	}

	item.Name = req.Name
	item.Description = req.Description

	if err := s.db.Save(item).Error; err != nil {
		s.logger.Error().Err(err).Str("item_id", item.ID).Msg("Failed to update item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// @Summary Delete item
// @Description Delete an item (owner or admin)
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 204
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /items/{id} [delete]
func (s *Server) deleteItem(c *gin.Context) {
	item, ok := s.loadItemForWrite(c)
	if !ok {
		return
	}

	if err := s.db.Delete(item).Error; err != nil {
		s.logger.Error().Err(err).Str("item_id", item.ID).Msg("Failed to delete item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	sessionData, _ := GetSessionData(c)
	s.logger.Info().
		Str("item_id", item.ID).
		Str("deleted_by", sessionData.UserID).
		Msg("Item deleted")

	c.Status(http.StatusNoContent)
}
