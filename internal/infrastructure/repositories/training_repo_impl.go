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

var trainingOrdering = map[string]string{
	"start_at":   "start_at",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type TrainingRepository struct {
	db *gorm.DB
}

func NewTrainingRepository(db *gorm.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

func (r *TrainingRepository) Create(ctx context.Context, training *entities.Training) error {
	m := r.toModel(training)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	training.ID = m.ID
	training.CreatedAt = m.CreatedAt
	training.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TrainingRepository) GetByID(ctx context.Context, id int64) (*entities.Training, error) {
	var m models.Training
	if err := r.withRelations(GetDB(ctx, r.db).WithContext(ctx)).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return trainingToEntity(&m), nil
}

func (r *TrainingRepository) List(ctx context.Context, filter entities.TrainingFilter) ([]*entities.Training, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Training{})
	if filter.TeamID != nil {
		query = query.Where("team_id = ?", *filter.TeamID)
	}
	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}
	if filter.StartAtGTE != nil {
		query = query.Where("start_at >= ?", *filter.StartAtGTE)
	}
	if filter.StartAtLTE != nil {
		query = query.Where("start_at <= ?", *filter.StartAtLTE)
	}
	if hasSearch(filter.Search) {
		term := likeTerm(filter.Search)
		query = query.Where(
			"team_id IN (SELECT id FROM team WHERE LOWER(name) LIKE ?) OR location_id IN (SELECT id FROM location WHERE LOWER(name) LIKE ?)",
			term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Training
	order := utils.OrderClause(filter.Ordering, trainingOrdering, "start_at DESC, created_at DESC") + ", id ASC"
	if err := paginate(r.withRelations(query.Order(order)), filter.Pagination).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Training, 0, len(ms))
	for i := range ms {
		items = append(items, trainingToEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *TrainingRepository) Update(ctx context.Context, training *entities.Training) error {
	now := time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Training{}).
		Where("id = ?", training.ID).
		Updates(map[string]interface{}{
			"team_id":     training.TeamID,
			"location_id": training.LocationID,
			"start_at":    training.StartAt,
			"updated_at":  now,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainNotFound()
	}
	training.UpdatedAt = now
	return nil
}

func (r *TrainingRepository) Delete(ctx context.Context, id int64) error {
	return deleteWithPolicy(ctx, r.db, models.Training{}.TableName(), id)
}

func (r *TrainingRepository) CountByLocationOutsideTeam(ctx context.Context, locationID int64, teamID uuid.UUID) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Training{}).
		Where("location_id = ? AND team_id <> ?", locationID, teamID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *TrainingRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Team").Preload("Location")
}

func (r *TrainingRepository) toModel(e *entities.Training) *models.Training {
	return &models.Training{
		ID:         e.ID,
		TeamID:     e.TeamID,
		LocationID: e.LocationID,
		StartAt:    e.StartAt,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func trainingToEntity(m *models.Training) *entities.Training {
	return &entities.Training{
		ID:         m.ID,
		TeamID:     m.TeamID,
		LocationID: m.LocationID,
		Team:       teamSummary(m.Team),
		Location:   locationSummary(m.Location),
		StartAt:    m.StartAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
