package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"trackly-server/config"
	"trackly-server/models"
	"trackly-server/service"
)

type entryRequest struct {
	EntityID  int64     `json:"entity_id" binding:"required"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes"`
	Value     *float64  `json:"value"`
	Location  string    `json:"location"`
	Images    []string  `json:"images"`
}

func CreateEntry(c *gin.Context) {
	userID := service.CurrentUserID(c)

	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "entity_id required"})
		return
	}

	// The entry must land on one of the caller's own entities.
	var entity models.Entity
	if err := config.DB.Where("id = ? AND user_id = ?", req.EntityID, userID).First(&entity).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "entity not found"})
		return
	}

	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}

	entry := models.Entry{
		UserID:    userID,
		EntityID:  req.EntityID,
		Timestamp: req.Timestamp,
		Notes:     req.Notes,
		Value:     req.Value,
		Location:  req.Location,
		Images:    marshalStrings(req.Images),
		Links:     bareLinks(req.Notes),
		Hashtags:  marshalStrings(service.ExtractHashtags(req.Notes)),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "could not create entry"})
		return
	}
	invalidateTimelineCache(userID)

	// Titles resolve in the background; the entry ships with bare URLs.
	if len(service.ExtractURLs(req.Notes)) > 0 {
		service.PublishLinkTitleJob(entry.ID)
	}

	c.JSON(http.StatusOK, gin.H{"status_code": 0, "entry": entry})
}

func GetEntry(c *gin.Context) {
	entry, ok := ownedEntry(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status_code": 0, "entry": entry})
}

func UpdateEntry(c *gin.Context) {
	entry, ok := ownedEntry(c)
	if !ok {
		return
	}

	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "entity_id required"})
		return
	}

	if req.EntityID != entry.EntityID {
		var entity models.Entity
		err := config.DB.Where("id = ? AND user_id = ?", req.EntityID, entry.UserID).First(&entity).Error
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "entity not found"})
			return
		}
	}

	entry.EntityID = req.EntityID
	if !req.Timestamp.IsZero() {
		entry.Timestamp = req.Timestamp
	}
	entry.Notes = req.Notes
	entry.Value = req.Value
	entry.Location = req.Location
	entry.Images = marshalStrings(req.Images)
	entry.Links = bareLinks(req.Notes)
	entry.Hashtags = marshalStrings(service.ExtractHashtags(req.Notes))
	entry.UpdatedAt = time.Now()

	if err := config.DB.Save(&entry).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "could not update entry"})
		return
	}
	invalidateTimelineCache(entry.UserID)

	if len(service.ExtractURLs(req.Notes)) > 0 {
		service.PublishLinkTitleJob(entry.ID)
	}

	c.JSON(http.StatusOK, gin.H{"status_code": 0, "entry": entry})
}

func DeleteEntry(c *gin.Context) {
	entry, ok := ownedEntry(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(&entry).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "could not delete entry"})
		return
	}
	invalidateTimelineCache(entry.UserID)

	c.JSON(http.StatusOK, gin.H{"status_code": 0, "status_msg": "entry deleted"})
}

// ArchiveEntry toggles the archived flag; archived entries drop out of the
// default timeline but stay queryable with include_archived.
func ArchiveEntry(c *gin.Context) {
	entry, ok := ownedEntry(c)
	if !ok {
		return
	}

	entry.Archived = !entry.Archived
	entry.UpdatedAt = time.Now()
	if err := config.DB.Save(&entry).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "could not update entry"})
		return
	}
	invalidateTimelineCache(entry.UserID)

	c.JSON(http.StatusOK, gin.H{"status_code": 0, "entry": entry})
}

func ownedEntry(c *gin.Context) (models.Entry, bool) {
	userID := service.CurrentUserID(c)
	entryID, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var entry models.Entry
	err := config.DB.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "entry not found"})
		return entry, false
	}
	return entry, true
}

// bareLinks seeds the links column with title-less URLs from the notes.
func bareLinks(notes string) string {
	urls := service.ExtractURLs(notes)
	links := make([]models.Link, 0, len(urls))
	for _, u := range urls {
		links = append(links, models.Link{URL: u})
	}
	data, _ := json.Marshal(links)
	return string(data)
}
