package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	CommentWaiting     = "w"
	CommentApproved    = "a"
	CommentNotApproved = "na"
)

type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User            User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	BookID          uint      `gorm:"not null;index" json:"book_id"`
	Book            Book      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Status          string    `gorm:"size:2;not null;default:'w'" json:"status"`
	Body            string    `gorm:"type:text;not null" json:"body"`
	DatetimeCreated time.Time `gorm:"autoCreateTime;<-:create" json:"datetime_created"`
}
