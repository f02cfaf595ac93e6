package repository

import (
	"context"

	"github.com/google/uuid"

	"marketplace-backend/internal/domains/shipping/model"
)

// RepositoryInterface defines all data access operations for Shipping domain
type RepositoryInterface interface {
	// ListActiveRateRules retrieves active rate rules for the in-memory rate table
	ListActiveRateRules(ctx context.Context) ([]*model.RateRule, error)

	// ListRateRules retrieves all rate rules including inactive (for admin use)
	ListRateRules(ctx context.Context) ([]*model.RateRule, error)

	// GetRateRuleByID retrieves a rate rule by ID
	GetRateRuleByID(ctx context.Context, id uuid.UUID) (*model.RateRule, error)

	// UpsertRateRule inserts or updates a rate rule
	UpsertRateRule(ctx context.Context, rule *model.RateRule) (*model.RateRule, error)

	// DeactivateRateRule soft-deletes a rate rule
	DeactivateRateRule(ctx context.Context, id uuid.UUID) error

	// ListZoneMappings retrieves all zone mapping entries
	ListZoneMappings(ctx context.Context) ([]*model.ZoneMapping, error)

	// UpsertZoneMapping inserts or updates a zone mapping entry
	UpsertZoneMapping(ctx context.Context, mapping *model.ZoneMapping) (*model.ZoneMapping, error)
}
