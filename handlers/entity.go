package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"trackly-server/config"
	"trackly-server/models"
	"trackly-server/service"
)

type entityRequest struct {
	Name       string   `json:"name" binding:"required"`
	Type       string   `json:"type" binding:"required"`
	Categories []string `json:"categories"`
	ValueType  string   `json:"value_type"`
	Properties string   `json:"properties"`
}

func CreateEntity(c *gin.Context) {
	userID := service.CurrentUserID(c)

	var req entityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "name and type required"})
		return
	}
	if !models.ValidEntityType(req.Type) {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "unknown entity type"})
		return
	}
	if !models.ValidValueType(req.ValueType) {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "unknown value type"})
		return
	}

	entity := models.Entity{
		UserID:     userID,
		Name:       req.Name,
		Type:       req.Type,
		Categories: marshalStrings(req.Categories),
		ValueType:  req.ValueType,
		Properties: req.Properties,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := config.DB.Create(&entity).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "could not create entity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status_code": 0, "entity": entity})
}

func ListEntities(c *gin.Context) {
	userID := service.CurrentUserID(c)

	q := config.DB.Where("user_id = ?", userID)
	if c.Query("include_archived") != "1" {
		q = q.Where("archived = ?", false)
	}
	if t := c.Query("type"); t != "" {
		q = q.Where("type = ?", t)
	}

	var entities []models.Entity
	if err := q.Order("name asc").Find(&entities).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "could not list entities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status_code": 0, "entities": entities})
}

func GetEntity(c *gin.Context) {
	entity, ok := ownedEntity(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status_code": 0, "entity": entity})
}

func UpdateEntity(c *gin.Context) {
	entity, ok := ownedEntity(c)
	if !ok {
		return
	}

	var req entityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "name and type required"})
		return
	}
	if !models.ValidEntityType(req.Type) || !models.ValidValueType(req.ValueType) {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "unknown type"})
		return
	}

	entity.Name = req.Name
	entity.Type = req.Type
	entity.Categories = marshalStrings(req.Categories)
	entity.ValueType = req.ValueType
	entity.Properties = req.Properties
	entity.UpdatedAt = time.Now()

	if err := config.DB.Save(&entity).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "could not update entity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status_code": 0, "entity": entity})
}

// DeleteEntity removes an entity and every entry logged against it.
func DeleteEntity(c *gin.Context) {
	entity, ok := ownedEntity(c)
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_id = ?", entity.ID).Delete(&models.Entry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity).Error
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "could not delete entity"})
		return
	}
	// The cascade just removed timeline rows.
	invalidateTimelineCache(entity.UserID)

	c.JSON(http.StatusOK, gin.H{"status_code": 0, "status_msg": "entity deleted"})
}

// ArchiveEntity toggles the archived flag.
func ArchiveEntity(c *gin.Context) {
	entity, ok := ownedEntity(c)
	if !ok {
		return
	}

	entity.Archived = !entity.Archived
	entity.UpdatedAt = time.Now()
	if err := config.DB.Save(&entity).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "could not update entity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status_code": 0, "entity": entity})
}

// ownedEntity loads the :id entity and checks it belongs to the caller.
// On failure it writes the error response and returns ok=false.
func ownedEntity(c *gin.Context) (models.Entity, bool) {
	userID := service.CurrentUserID(c)
	entityID, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var entity models.Entity
	err := config.DB.Where("id = ? AND user_id = ?", entityID, userID).First(&entity).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "entity not found"})
		return entity, false
	}
	return entity, true
}
