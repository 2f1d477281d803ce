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

var membershipOrdering = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"role":       "role",
}

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, membership *entities.Membership) error {
	m := r.toModel(membership)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	membership.CreatedAt = m.CreatedAt
	membership.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *MembershipRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Membership, error) {
	var m models.Membership
	if err := r.withRelations(GetDB(ctx, r.db).WithContext(ctx)).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

func (r *MembershipRepository) List(ctx context.Context, filter entities.MembershipFilter) ([]*entities.Membership, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	query := db.Model(&models.Membership{})
	if filter.TeamID != nil {
		query = query.Where("team_id = ?", *filter.TeamID)
	}
	if filter.PersonID != nil {
		query = query.Where("person_id = ?", *filter.PersonID)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", int(*filter.Role))
	}
	if hasSearch(filter.Search) {
		term := likeTerm(filter.Search)
		query = query.Where(
			"person_id IN (SELECT id FROM person WHERE LOWER(name) LIKE ?) OR team_id IN (SELECT id FROM team WHERE LOWER(name) LIKE ?)",
			term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Membership
	order := utils.OrderClause(filter.Ordering, membershipOrdering, "created_at DESC") + ", id ASC"
	if err := paginate(r.withRelations(query.Order(order)), filter.Pagination).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Membership, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *MembershipRepository) Update(ctx context.Context, membership *entities.Membership) error {
	now := time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Membership{}).
		Where("id = ?", membership.ID).
		Updates(map[string]interface{}{
			"person_id":  membership.PersonID,
			"team_id":    membership.TeamID,
			"role":       int(membership.Role),
			"updated_at": now,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainNotFound()
	}
	membership.UpdatedAt = now
	return nil
}

func (r *MembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteWithPolicy(ctx, r.db, models.Membership{}.TableName(), id)
}

func (r *MembershipRepository) CountByTeam(ctx context.Context, teamID uuid.UUID, excludeID *uuid.UUID) (int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Membership{}).Where("team_id = ?", teamID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *MembershipRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Person").Preload("Team")
}

func (r *MembershipRepository) toEntity(m *models.Membership) *entities.Membership {
	return &entities.Membership{
		ID:        m.ID,
		PersonID:  m.PersonID,
		TeamID:    m.TeamID,
		Person:    personSummary(m.Person),
		Team:      teamSummary(m.Team),
		Role:      entities.MembershipRole(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *MembershipRepository) toModel(e *entities.Membership) *models.Membership {
	return &models.Membership{
		ID:        e.ID,
		PersonID:  e.PersonID,
		TeamID:    e.TeamID,
		Role:      int(e.Role),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
