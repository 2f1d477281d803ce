package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Team struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name       string      `gorm:"type:varchar(255);not null;uniqueIndex:uq_team_name"`
	City       null.String `gorm:"type:varchar(255)"`
	MaxMembers int         `gorm:"not null;default:22"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Team) TableName() string {
	return "team"
}

// Membership is stored in person_team
type Membership struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PersonID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_person_team_once,priority:1;index:ix_person_team_person"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_person_team_once,priority:2;index:ix_person_team_team"`
	Role      int       `gorm:"type:smallint;not null;default:1"`
	Person    *Person   `gorm:"foreignKey:PersonID"`
	Team      *Team     `gorm:"foreignKey:TeamID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Membership) TableName() string {
	return "person_team"
}
