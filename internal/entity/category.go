package entity

import "time"

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:250;not null;index" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	TopBookID   *uint     `gorm:"index" json:"top_book_id"`
	TopBook     *Book     `gorm:"foreignKey:TopBookID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"top_book,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
