package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dragon-roster.backend/internal/domain/entities"
	"dragon-roster.backend/internal/infrastructure/models"
	"dragon-roster.backend/pkg/utils"
)

const seatChartOrder = "side ASC, seat_number ASC"

var lineupOrdering = map[string]string{
	"updated_at": "updated_at",
	"created_at": "created_at",
	"id":         "id",
}

type LineupRepository struct {
	db *gorm.DB
}

func NewLineupRepository(db *gorm.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) Create(ctx context.Context, lineup *entities.Lineup) error {
	m := &models.Lineup{
		TrainingID: lineup.TrainingID,
		State:      int(lineup.State),
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	lineup.ID = m.ID
	lineup.CreatedAt = m.CreatedAt
	lineup.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *LineupRepository) GetByID(ctx context.Context, id int64) (*entities.Lineup, error) {
	var m models.Lineup
	if err := r.withRelations(GetDB(ctx, r.db).WithContext(ctx)).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return lineupToEntity(&m), nil
}

func (r *LineupRepository) ExistsForTraining(ctx context.Context, trainingID int64) (bool, error) {
	var total int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Lineup{}).
		Where("training_id = ?", trainingID).
		Count(&total).Error
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *LineupRepository) List(ctx context.Context, filter entities.LineupFilter) ([]*entities.Lineup, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Lineup{})
	if filter.TrainingID != nil {
		query = query.Where("training_id = ?", *filter.TrainingID)
	}
	if filter.State != nil {
		query = query.Where("state = ?", int(*filter.State))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Lineup
	order := utils.OrderClause(filter.Ordering, lineupOrdering, "updated_at DESC") + ", id ASC"
	if err := paginate(r.withRelations(query.Order(order)), filter.Pagination).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Lineup, 0, len(ms))
	for i := range ms {
		items = append(items, lineupToEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *LineupRepository) UpdateState(ctx context.Context, id int64, state entities.LineupState) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Lineup{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"state":      int(state),
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

func (r *LineupRepository) Delete(ctx context.Context, id int64) error {
	return deleteWithPolicy(ctx, r.db, models.Lineup{}.TableName(), id)
}

func (r *LineupRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Training.Team").
		Preload("Training.Location").
		Preload("Seats", func(db *gorm.DB) *gorm.DB { return db.Order(seatChartOrder) }).
		Preload("Seats.Person")
}

func lineupToEntity(m *models.Lineup) *entities.Lineup {
	state := entities.LineupState(m.State)
	lineup := &entities.Lineup{
		ID:           m.ID,
		TrainingID:   m.TrainingID,
		State:        state,
		StateDisplay: state.String(),
		Seats:        make([]*entities.LineupSeat, 0, len(m.Seats)),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Training != nil {
		lineup.Training = trainingToEntity(m.Training)
	}
	for i := range m.Seats {
		lineup.Seats = append(lineup.Seats, seatToEntity(&m.Seats[i]))
	}
	return lineup
}
