package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a course participant identified by their Telegram account.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TelegramID  int64     `gorm:"uniqueIndex;not null" json:"telegram_id"`
	Username    string    `gorm:"size:64" json:"username"`
	FirstName   string    `gorm:"size:128" json:"first_name"`
	StartWeight *float64  `json:"start_weight"`
	Goal        *Goal     `gorm:"type:varchar(20)" json:"goal"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
