package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Person struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:varchar(50);not null;index"`
	Phone             string    `gorm:"type:varchar(15);not null;index"`
	Height            null.Int  `gorm:"type:smallint"`
	Weight            null.Int  `gorm:"type:smallint"`
	Side              int       `gorm:"type:smallint;not null;default:0"`
	ProfilePictureURL string    `gorm:"type:varchar(250);not null;default:''"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Person) TableName() string {
	return "person"
}
