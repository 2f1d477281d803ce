package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dragon-roster.backend/internal/domain/entities"
	"dragon-roster.backend/internal/infrastructure/models"
	"dragon-roster.backend/pkg/utils"
)

var seatOrdering = map[string]string{
	"lineup":      "lineup_id",
	"side":        "side",
	"seat_number": "seat_number",
	"updated_at":  "updated_at",
}

type LineupSeatRepository struct {
	db *gorm.DB
}

func NewLineupSeatRepository(db *gorm.DB) *LineupSeatRepository {
	return &LineupSeatRepository{db: db}
}

func (r *LineupSeatRepository) Create(ctx context.Context, seat *entities.LineupSeat) error {
	m := &models.LineupSeat{
		LineupID:   seat.LineupID,
		PersonID:   seat.PersonID,
		Side:       string(seat.Side),
		SeatNumber: seat.SeatNumber,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	seat.ID = m.ID
	seat.CreatedAt = m.CreatedAt
	seat.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *LineupSeatRepository) GetByID(ctx context.Context, id int64) (*entities.LineupSeat, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var m models.LineupSeat
	if err := lockRows(ctx, db).Preload("Person").Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return seatToEntity(&m), nil
}

func (r *LineupSeatRepository) List(ctx context.Context, filter entities.LineupSeatFilter) ([]*entities.LineupSeat, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.LineupSeat{})
	if filter.LineupID != nil {
		query = query.Where("lineup_id = ?", *filter.LineupID)
	}
	if filter.Side != nil {
		query = query.Where("side = ?", string(*filter.Side))
	}
	if filter.SeatNumber != nil {
		query = query.Where("seat_number = ?", *filter.SeatNumber)
	}
	if filter.PersonID != nil {
		query = query.Where("person_id = ?", *filter.PersonID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.LineupSeat
	order := utils.OrderClause(filter.Ordering, seatOrdering, "lineup_id ASC, "+seatChartOrder) + ", id ASC"
	if err := paginate(query.Preload("Person").Order(order), filter.Pagination).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.LineupSeat, 0, len(ms))
	for i := range ms {
		items = append(items, seatToEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *LineupSeatRepository) ListByLineup(ctx context.Context, lineupID int64) ([]*entities.LineupSeat, error) {
	var ms []models.LineupSeat
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Person").
		Where("lineup_id = ?", lineupID).
		Order(seatChartOrder).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.LineupSeat, 0, len(ms))
	for i := range ms {
		items = append(items, seatToEntity(&ms[i]))
	}
	return items, nil
}

func (r *LineupSeatRepository) Update(ctx context.Context, seat *entities.LineupSeat) error {
	now := time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.LineupSeat{}).
		Where("id = ?", seat.ID).
		Updates(map[string]interface{}{
			"lineup_id":   seat.LineupID,
			"side":        string(seat.Side),
			"seat_number": seat.SeatNumber,
			"person_id":   nullableUUID(seat.PersonID),
			"updated_at":  now,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainNotFound()
	}
	seat.UpdatedAt = now
	return nil
}

func (r *LineupSeatRepository) Delete(ctx context.Context, id int64) error {
	return deleteWithPolicy(ctx, r.db, models.LineupSeat{}.TableName(), id)
}

func (r *LineupSeatRepository) SeatTaken(ctx context.Context, lineupID int64, side entities.SeatSide, seatNumber int, excludeID *int64) (bool, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.LineupSeat{}).
		Where("lineup_id = ? AND side = ? AND seat_number = ?", lineupID, string(side), seatNumber)
	return r.exists(query, excludeID)
}

func (r *LineupSeatRepository) PersonSeated(ctx context.Context, lineupID int64, personID uuid.UUID, excludeID *int64) (bool, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.LineupSeat{}).
		Where("lineup_id = ? AND person_id = ?", lineupID, personID)
	return r.exists(query, excludeID)
}

func (r *LineupSeatRepository) SetPerson(ctx context.Context, seatID int64, personID *uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.LineupSeat{}).
		Where("id = ?", seatID).
		Updates(map[string]interface{}{
			"person_id":  nullableUUID(personID),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainNotFound()
	}
	return nil
}

func (r *LineupSeatRepository) ClearPerson(ctx context.Context, lineupID int64, personID uuid.UUID, exceptSeatID int64) error {
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.LineupSeat{}).
		Where("lineup_id = ? AND person_id = ? AND id <> ?", lineupID, personID, exceptSeatID).
		Updates(map[string]interface{}{
			"person_id":  nil,
			"updated_at": time.Now(),
		}).Error
	return translateError(err)
}

func (r *LineupSeatRepository) exists(query *gorm.DB, excludeID *int64) (bool, error) {
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func nullableUUID(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func seatToEntity(m *models.LineupSeat) *entities.LineupSeat {
	return &entities.LineupSeat{
		ID:         m.ID,
		LineupID:   m.LineupID,
		PersonID:   m.PersonID,
		Person:     personSummary(m.Person),
		Side:       entities.SeatSide(m.Side),
		SeatNumber: m.SeatNumber,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
