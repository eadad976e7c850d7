package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ItemUnread    = "ur"
	ItemRead      = "r"
	ItemIsReading = "ir"
	ItemWantRead  = "wr"
)

// BookCase is the personal library of exactly one user.
type BookCase struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User      User           `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Items     []BookCaseItem `gorm:"foreignKey:BookCaseID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (BookCase) TableName() string {
	return "bookcases"
}

// BookCaseItem holds a book at most once per bookcase (idx_bookcase_book).
type BookCaseItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BookCaseID    uint      `gorm:"column:bookcase_id;not null;uniqueIndex:idx_bookcase_book,priority:1" json:"bookcase_id"`
	BookCase      *BookCase `json:"-"`
	BookID        uint      `gorm:"not null;uniqueIndex:idx_bookcase_book,priority:2;index" json:"book_id"`
	Book          Book      `gorm:"constraint:OnDelete:CASCADE" json:"book"`
	Status        string    `gorm:"size:2;not null;default:'wr'" json:"status"`
	DatetimeAdded time.Time `gorm:"autoCreateTime;<-:create" json:"datetime_added"`
}

func (BookCaseItem) TableName() string {
	return "bookcase_items"
}
