package data

import (
	"time"
)

// Movie represents the movie table
type Movie struct {
	ID          int64    `gorm:"primaryKey;autoIncrement"`
	Title       string   `gorm:"uniqueIndex;not null;size:250"`
	Year        int      `gorm:"not null"`
	Description string   `gorm:"not null;size:500"`
	Rating      *float64 `gorm:"index:idx_movie_rating"`
	Ranking     *int
	Review      *string   `gorm:"size:250"`
	ImageURL    string    `gorm:"column:img_url;not null;size:250"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the table name
func (Movie) TableName() string {
	return "movie"
}
