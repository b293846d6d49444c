package model

import "time"

// Comment is a note attached to exactly one Task. A nil Author means the
// comment was left anonymously.
type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID    uint      `gorm:"not null;index" json:"task_id"`
	Content   string    `gorm:"size:1000;not null" json:"content"`
	Author    *string   `gorm:"size:120" json:"author"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}
