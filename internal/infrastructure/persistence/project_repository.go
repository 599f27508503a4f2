package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/project"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/infrastructure/persistence/models"
)

// projectSortFields whitelists sortable columns for project queries
var projectSortFields = map[string]bool{
	"created_at":     true,
	"name":           true,
	"agreement_date": true,
	"status":         true,
}

// GormProjectRepository implements project.Repository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByIDForTenant finds a project by ID for a specific tenant
func (r *GormProjectRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*project.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all projects for a tenant with filtering
func (r *GormProjectRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]project.Project, error) {
	var projectModels []models.ProjectModel
	query := r.db.WithContext(ctx).Model(&models.ProjectModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	query = ApplyFilter(query, filter, projectSortFields)

	if err := query.Find(&projectModels).Error; err != nil {
		return nil, err
	}
	return toDomainProjects(projectModels), nil
}

// FindByStatusAsOf finds projects in the given statuses whose
// agreement date is on or before asOf
func (r *GormProjectRepository) FindByStatusAsOf(ctx context.Context, tenantID uuid.UUID, statuses []project.Status, asOf time.Time) ([]project.Project, error) {
	var projectModels []models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status IN ? AND agreement_date <= ?", tenantID, statuses, asOf).
		Order("agreement_date ASC, id ASC").
		Find(&projectModels).Error; err != nil {
		return nil, err
	}
	return toDomainProjects(projectModels), nil
}

// Save creates or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, p *project.Project) error {
	model := models.ProjectModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// ExistsForTenant reports whether a project exists for the tenant
func (r *GormProjectRepository) ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProjectModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func toDomainProjects(projectModels []models.ProjectModel) []project.Project {
	projects := make([]project.Project, len(projectModels))
	for i, model := range projectModels {
		projects[i] = *model.ToDomain()
	}
	return projects
}

var _ project.Repository = (*GormProjectRepository)(nil)
