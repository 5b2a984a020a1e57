package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"trackly-server/config"
	"trackly-server/models"
	"trackly-server/service"
)

const (
	defaultPageSize  = 20
	maxPageSize      = 100
	timelineCacheTTL = 10 * time.Second
)

type timelinePage struct {
	Entries    []models.Entry `json:"entries"`
	NextCursor string         `json:"next_cursor"`
}

// ListEntries is the timeline endpoint: the caller's entries, newest first by
// default, filtered by entity/hashtag/text and continued via an opaque cursor.
func ListEntries(c *gin.Context) {
	userID := service.CurrentUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	asc := c.Query("order") == "asc"
	entityID := c.Query("entity_id")
	hashtag := c.Query("hashtag")
	search := c.Query("q")
	includeArchived := c.Query("include_archived") == "1"
	cursorToken := c.Query("cursor")

	// First unfiltered page is the hot path; serve it from cache briefly.
	cacheKey := timelineCacheKey(userID, asc)
	cacheable := cursorToken == "" && entityID == "" && hashtag == "" && search == "" && !includeArchived && limit == defaultPageSize
	if cacheable {
		if val, err := config.RDB.Get(config.Ctx, cacheKey).Result(); err == nil {
			var page timelinePage
			if json.Unmarshal([]byte(val), &page) == nil {
				c.JSON(http.StatusOK, gin.H{
					"status_code": 0,
					"entries":     page.Entries,
					"next_cursor": page.NextCursor,
					"source":      "cache",
				})
				return
			}
		}
	}

	q := config.DB.Where("user_id = ?", userID)
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	if entityID != "" {
		q = q.Where("entity_id = ?", entityID)
	}
	if hashtag != "" {
		// Hashtags are stored as a JSON array of quoted lowercase strings,
		// so matching the quoted form keeps "work" from matching "workout".
		q = q.Where("hashtags LIKE ?", fmt.Sprintf(`%%"%s"%%`, service.NormalizeHashtag(hashtag)))
	}
	if search != "" {
		q = q.Where("notes LIKE ?", "%"+search+"%")
	}

	if cursorToken != "" {
		cur, err := service.DecodeCursor(cursorToken)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "bad cursor"})
			return
		}
		q = service.ApplyCursor(q, cur, asc)
	}

	order := "timestamp desc, id desc"
	if asc {
		order = "timestamp asc, id asc"
	}

	var entries []models.Entry
	if err := q.Order(order).Limit(limit).Find(&entries).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "could not list entries"})
		return
	}

	next := service.NextToken(entries, limit)

	if cacheable && len(entries) > 0 {
		data, _ := json.Marshal(timelinePage{Entries: entries, NextCursor: next})
		config.RDB.Set(config.Ctx, cacheKey, data, timelineCacheTTL)
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": 0,
		"entries":     entries,
		"next_cursor": next,
		"source":      "db",
	})
}

func timelineCacheKey(userID int64, asc bool) string {
	return fmt.Sprintf("timeline:%d:%t", userID, asc)
}

// invalidateTimelineCache drops the cached first pages after a mutation so a
// refresh inside the TTL sees the write.
func invalidateTimelineCache(userID int64) {
	config.RDB.Del(config.Ctx, timelineCacheKey(userID, false), timelineCacheKey(userID, true))
}

// ListHashtags returns the distinct hashtags across the caller's entries,
// with usage counts, for the filter UI.
func ListHashtags(c *gin.Context) {
	userID := service.CurrentUserID(c)

	var rows []models.Entry
	err := config.DB.Select("hashtags").
		Where("user_id = ? AND hashtags != '' AND hashtags != '[]'", userID).
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "could not list hashtags"})
		return
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, row := range rows {
		for _, tag := range unmarshalStrings(row.Hashtags) {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	type hashtagCount struct {
		Tag   string `json:"tag"`
		Count int    `json:"count"`
	}
	list := make([]hashtagCount, 0, len(order))
	for _, tag := range order {
		list = append(list, hashtagCount{Tag: tag, Count: counts[tag]})
	}

	c.JSON(http.StatusOK, gin.H{"status_code": 0, "hashtags": list})
}
