package entity

import "time"

// Book scores, 1 (very bad) through 5 (perfect).
const (
	ScoreVeryBad = 1
	ScoreBad     = 2
	ScoreNormal  = 3
	ScoreGood    = 4
	ScorePerfect = 5
)

// DateLayout is the wire format of Book.DateWrited.
const DateLayout = "2006-01-02"

type Book struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:250;not null;index" json:"name"`
	Cover        string    `gorm:"type:text" json:"cover"`
	Description  string    `gorm:"type:text" json:"description"`
	CategoryID   uint      `gorm:"not null;index" json:"category_id"`
	Category     Category  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Score        int       `gorm:"not null;check:score BETWEEN 1 AND 5" json:"score"`
	Author       string    `gorm:"size:250;not null" json:"author"`
	Publications string    `gorm:"size:250;not null" json:"publications"`
	NumOfPages   int       `gorm:"not null;check:num_of_pages > 0" json:"num_of_pages"`
	DateWrited   time.Time `gorm:"type:date;not null" json:"date_writed"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
