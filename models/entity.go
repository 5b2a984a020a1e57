package models

import "time"

// Entity type values.
const (
	EntityTypeHabit  = "habit"
	EntityTypeMetric = "metric"
	EntityTypeTask   = "task"
	EntityTypeEvent  = "event"
	EntityTypeCustom = "custom"
)

// Value type values. Empty means entries carry no value.
const (
	ValueTypeNumber   = "number"
	ValueTypeDuration = "duration"
	ValueTypeBool     = "bool"
	ValueTypeText     = "text"
)

// Entity is a user-defined trackable category ("tag" in the UI): a habit,
// a metric, a recurring task, and so on. Entries are logged against it.
type Entity struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	UserID     int64     `json:"user_id" gorm:"index"`
	Name       string    `json:"name" gorm:"size:128"`
	Type       string    `json:"type" gorm:"size:16"`
	Categories string    `json:"categories" gorm:"type:text"` // JSON array of category names
	ValueType  string    `json:"value_type" gorm:"size:16"`
	Properties string    `json:"properties" gorm:"type:text"` // free-form JSON schema blob
	Archived   bool      `json:"archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Entity) TableName() string { return "entities" }

// ValidEntityType reports whether t is one of the known type values.
func ValidEntityType(t string) bool {
	switch t {
	case EntityTypeHabit, EntityTypeMetric, EntityTypeTask, EntityTypeEvent, EntityTypeCustom:
		return true
	}
	return false
}

// ValidValueType reports whether v is a known value type ("" included).
func ValidValueType(v string) bool {
	switch v {
	case "", ValueTypeNumber, ValueTypeDuration, ValueTypeBool, ValueTypeText:
		return true
	}
	return false
}
