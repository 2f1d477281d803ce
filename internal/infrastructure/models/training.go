package models

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Lat       float64   `gorm:"not null"`
	Lon       float64   `gorm:"not null"`
	Team      *Team     `gorm:"foreignKey:TeamID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Location) TableName() string {
	return "location"
}

type Training struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	TeamID     uuid.UUID `gorm:"type:uuid;not null;index:ix_training_team_start,priority:1"`
	LocationID int64     `gorm:"not null;index"`
	StartAt    time.Time `gorm:"not null;index:ix_training_team_start,priority:2;index"`
	Team       *Team     `gorm:"foreignKey:TeamID"`
	Location   *Location `gorm:"foreignKey:LocationID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Training) TableName() string {
	return "training"
}
