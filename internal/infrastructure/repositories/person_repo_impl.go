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

var personOrdering = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) Create(ctx context.Context, person *entities.Person) error {
	m := r.toModel(person)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	person.CreatedAt = m.CreatedAt
	person.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *PersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Person, error) {
	var m models.Person
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

func (r *PersonRepository) List(ctx context.Context, filter entities.PersonFilter) ([]*entities.Person, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Person{})
	if filter.Side != nil {
		query = query.Where("side = ?", int(*filter.Side))
	}
	if hasSearch(filter.Search) {
		term := likeTerm(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(phone) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Person
	order := utils.OrderClause(filter.Ordering, personOrdering, "name ASC") + ", id ASC"
	if err := paginate(query.Order(order), filter.Pagination).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Person, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *PersonRepository) Update(ctx context.Context, person *entities.Person) error {
	now := time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Person{}).
		Where("id = ?", person.ID).
		Updates(map[string]interface{}{
			"name":                person.Name,
			"phone":               person.Phone,
			"height":              person.Height,
			"weight":              person.Weight,
			"side":                int(person.Side),
			"profile_picture_url": person.ProfilePictureURL,
			"updated_at":          now,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainNotFound()
	}
	person.UpdatedAt = now
	return nil
}

func (r *PersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteWithPolicy(ctx, r.db, models.Person{}.TableName(), id)
}

func (r *PersonRepository) toEntity(m *models.Person) *entities.Person {
	return &entities.Person{
		ID:                m.ID,
		Name:              m.Name,
		Phone:             m.Phone,
		Height:            m.Height,
		Weight:            m.Weight,
		Side:              entities.PersonSide(m.Side),
		ProfilePictureURL: m.ProfilePictureURL,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func (r *PersonRepository) toModel(e *entities.Person) *models.Person {
	return &models.Person{
		ID:                e.ID,
		Name:              e.Name,
		Phone:             e.Phone,
		Height:            e.Height,
		Weight:            e.Weight,
		Side:              int(e.Side),
		ProfilePictureURL: e.ProfilePictureURL,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func personSummary(m *models.Person) *entities.PersonSummary {
	if m == nil {
		return nil
	}
	return &entities.PersonSummary{ID: m.ID, Name: m.Name, Phone: m.Phone}
}
