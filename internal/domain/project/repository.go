package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// Repository defines the interface for project persistence
type Repository interface {
	// FindByIDForTenant finds a project by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Project, error)

	// FindAllForTenant finds all projects for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Project, error)

	// FindByStatusAsOf finds projects in the given statuses whose agreement
	// date is on or before asOf
	FindByStatusAsOf(ctx context.Context, tenantID uuid.UUID, statuses []Status, asOf time.Time) ([]Project, error)

	// Save creates or updates a project
	Save(ctx context.Context, project *Project) error

	// ExistsForTenant reports whether a project exists for the tenant
	ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}
