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

var teamOrdering = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	m := r.toModel(team)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	team.CreatedAt = m.CreatedAt
	team.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var m models.Team
	if err := lockRows(ctx, db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	team := r.toEntity(&m)
	if err := r.attachMemberCounts(db, []*entities.Team{team}); err != nil {
		return nil, err
	}
	return team, nil
}

func (r *TeamRepository) List(ctx context.Context, filter entities.TeamFilter) ([]*entities.Team, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	query := db.Model(&models.Team{})
	if filter.City != nil {
		query = query.Where("city = ?", *filter.City)
	}
	if hasSearch(filter.Search) {
		term := likeTerm(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(city, '')) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Team
	order := utils.OrderClause(filter.Ordering, teamOrdering, "name ASC") + ", id ASC"
	if err := paginate(query.Order(order), filter.Pagination).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Team, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	if err := r.attachMemberCounts(db, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *TeamRepository) Update(ctx context.Context, team *entities.Team) error {
	now := time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ?", team.ID).
		Updates(map[string]interface{}{
			"name":        team.Name,
			"city":        team.City,
			"max_members": team.MaxMembers,
			"updated_at":  now,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainNotFound()
	}
	team.UpdatedAt = now
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteWithPolicy(ctx, r.db, models.Team{}.TableName(), id)
}

func (r *TeamRepository) attachMemberCounts(db *gorm.DB, teams []*entities.Team) error {
	if len(teams) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}

	var rows []struct {
		TeamID uuid.UUID
		Total  int64
	}
	if err := db.Model(&models.Membership{}).
		Select("team_id, COUNT(*) AS total").
		Where("team_id IN ?", ids).
		Group("team_id").
		Scan(&rows).Error; err != nil {
		return err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.TeamID] = row.Total
	}
	for _, t := range teams {
		t.ActiveMemberCount = counts[t.ID]
	}
	return nil
}

func (r *TeamRepository) toEntity(m *models.Team) *entities.Team {
	return &entities.Team{
		ID:         m.ID,
		Name:       m.Name,
		City:       m.City,
		MaxMembers: m.MaxMembers,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *TeamRepository) toModel(e *entities.Team) *models.Team {
	return &models.Team{
		ID:         e.ID,
		Name:       e.Name,
		City:       e.City,
		MaxMembers: e.MaxMembers,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func teamSummary(m *models.Team) *entities.TeamSummary {
	if m == nil {
		return nil
	}
	return &entities.TeamSummary{ID: m.ID, Name: m.Name, City: m.City, MaxMembers: m.MaxMembers}
}
