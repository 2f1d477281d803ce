package models

import (
	"time"

	"github.com/google/uuid"
)

type Lineup struct {
	ID         int64        `gorm:"primaryKey;autoIncrement"`
	TrainingID int64        `gorm:"not null;uniqueIndex:uq_lineup_training"`
	State      int          `gorm:"type:smallint;not null;default:1;index"`
	Training   *Training    `gorm:"foreignKey:TrainingID"`
	Seats      []LineupSeat `gorm:"foreignKey:LineupID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Lineup) TableName() string {
	return "lineup"
}

type LineupSeat struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	LineupID   int64      `gorm:"not null;uniqueIndex:uq_lineup_side_seat,priority:1;uniqueIndex:uq_lineup_person_once,priority:1,where:person_id IS NOT NULL"`
	PersonID   *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_lineup_person_once,priority:2,where:person_id IS NOT NULL"`
	Side       string     `gorm:"type:varchar(1);not null;uniqueIndex:uq_lineup_side_seat,priority:2"`
	SeatNumber int        `gorm:"type:smallint;not null;uniqueIndex:uq_lineup_side_seat,priority:3"`
	Person     *Person    `gorm:"foreignKey:PersonID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (LineupSeat) TableName() string {
	return "lineup_seat"
}
