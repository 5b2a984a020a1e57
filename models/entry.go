package models

import "time"

// Link is one URL found in an entry's notes, with its resolved page title.
// Stored inside Entry.Links as a JSON array.
type Link struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// Entry is a single logged record against an entity. The array-ish fields
// (images, links, hashtags) are stored as JSON strings in text columns.
type Entry struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"index"`
	EntityID  int64     `json:"entity_id" gorm:"index"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
	Notes     string    `json:"notes" gorm:"type:text"`
	Value     *float64  `json:"value,omitempty"`
	Location  string    `json:"location,omitempty"`
	Images    string    `json:"images" gorm:"type:text"`   // JSON array of image URLs
	Links     string    `json:"links" gorm:"type:text"`    // JSON array of Link
	Hashtags  string    `json:"hashtags" gorm:"type:text"` // JSON array of lowercase tags, no '#'
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Entry) TableName() string { return "entries" }
