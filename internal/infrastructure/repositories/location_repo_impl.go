package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dragon-roster.backend/internal/domain/entities"
	"dragon-roster.backend/internal/infrastructure/models"
	"dragon-roster.backend/pkg/utils"
)

var locationOrdering = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, location *entities.Location) error {
	m := r.toModel(location)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	location.ID = m.ID
	location.CreatedAt = m.CreatedAt
	location.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*entities.Location, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var m models.Location
	if err := lockRows(ctx, db).Preload("Team").Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

func (r *LocationRepository) List(ctx context.Context, filter entities.LocationFilter) ([]*entities.Location, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Location{})
	if filter.TeamID != nil {
		query = query.Where("team_id = ?", *filter.TeamID)
	}
	if hasSearch(filter.Search) {
		term := likeTerm(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR team_id IN (SELECT id FROM team WHERE LOWER(name) LIKE ?)", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Location
	order := utils.OrderClause(filter.Ordering, locationOrdering, "name ASC") + ", id ASC"
	if err := paginate(query.Preload("Team").Order(order), filter.Pagination).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Location, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *LocationRepository) Update(ctx context.Context, location *entities.Location) error {
	now := time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Location{}).
		Where("id = ?", location.ID).
		Updates(map[string]interface{}{
			"team_id":    location.TeamID,
			"name":       location.Name,
			"lat":        location.Lat,
			"lon":        location.Lon,
			"updated_at": now,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainNotFound()
	}
	location.UpdatedAt = now
	return nil
}

func (r *LocationRepository) Delete(ctx context.Context, id int64) error {
	return deleteWithPolicy(ctx, r.db, models.Location{}.TableName(), id)
}

func (r *LocationRepository) toEntity(m *models.Location) *entities.Location {
	return &entities.Location{
		ID:        m.ID,
		TeamID:    m.TeamID,
		Team:      teamSummary(m.Team),
		Name:      m.Name,
		Lat:       m.Lat,
		Lon:       m.Lon,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *LocationRepository) toModel(e *entities.Location) *models.Location {
	return &models.Location{
		ID:        e.ID,
		TeamID:    e.TeamID,
		Name:      e.Name,
		Lat:       e.Lat,
		Lon:       e.Lon,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func locationSummary(m *models.Location) *entities.LocationSummary {
	if m == nil {
		return nil
	}
	return &entities.LocationSummary{ID: m.ID, Name: m.Name, Lat: m.Lat, Lon: m.Lon}
}
