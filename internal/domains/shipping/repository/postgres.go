package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-backend/internal/domains/shipping/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const rateRuleColumns = `
	id, shipping_type, zone, min_distance_km, max_distance_km,
	base_fee, per_kg_fee, included_weight_kg, estimated_days, cutoff_time,
	active, created_at, updated_at
`

func scanRateRule(row pgx.Row) (*model.RateRule, error) {
	var rule model.RateRule
	err := row.Scan(
		&rule.ID, &rule.ShippingType, &rule.Zone, &rule.MinDistanceKm, &rule.MaxDistanceKm,
		&rule.BaseFee, &rule.PerKgFee, &rule.IncludedWeightKg, &rule.EstimatedDays, &rule.CutoffTime,
		&rule.Active, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListActiveRateRules retrieves active rate rules for the in-memory rate table
// Zone rules sort trước distance rules để lookup ổn định
func (r *postgresRepository) ListActiveRateRules(ctx context.Context) ([]*model.RateRule, error) {
	query := `
    SELECT ` + rateRuleColumns + `
    FROM rate_rules
    WHERE active = true
    ORDER BY shipping_type, zone NULLS LAST, min_distance_km NULLS FIRST
  `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, model.ErrRateLoadFailed(err)
	}
	defer rows.Close()

	var rules []*model.RateRule
	for rows.Next() {
		rule, err := scanRateRule(rows)
		if err != nil {
			return nil, model.ErrRateLoadFailed(err)
		}
		rules = append(rules, rule)
	}

	if err = rows.Err(); err != nil {
		return nil, model.ErrRateLoadFailed(err)
	}

	return rules, nil
}

// ListRateRules retrieves all rate rules including inactive (for admin use)
func (r *postgresRepository) ListRateRules(ctx context.Context) ([]*model.RateRule, error) {
	query := `
    SELECT ` + rateRuleColumns + `
    FROM rate_rules
    ORDER BY shipping_type, zone NULLS LAST, min_distance_km NULLS FIRST
  `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, model.ErrRateLoadFailed(err)
	}
	defer rows.Close()

	var rules []*model.RateRule
	for rows.Next() {
		rule, err := scanRateRule(rows)
		if err != nil {
			return nil, model.ErrRateLoadFailed(err)
		}
		rules = append(rules, rule)
	}

	if err = rows.Err(); err != nil {
		return nil, model.ErrRateLoadFailed(err)
	}

	return rules, nil
}

// GetRateRuleByID retrieves a rate rule by ID
func (r *postgresRepository) GetRateRuleByID(ctx context.Context, id uuid.UUID) (*model.RateRule, error) {
	query := `
    SELECT ` + rateRuleColumns + `
    FROM rate_rules
    WHERE id = $1
  `

	rule, err := scanRateRule(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, model.ErrRateLoadFailed(err)
	}

	return rule, nil
}

// UpsertRateRule inserts or updates a rate rule
// ID = uuid.Nil → insert mới, ngược lại update theo ID
func (r *postgresRepository) UpsertRateRule(ctx context.Context, rule *model.RateRule) (*model.RateRule, error) {
	if rule.ID == uuid.Nil {
		query := `
      INSERT INTO rate_rules
      (shipping_type, zone, min_distance_km, max_distance_km, base_fee, per_kg_fee,
       included_weight_kg, estimated_days, cutoff_time, active, created_at, updated_at)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
      RETURNING ` + rateRuleColumns + `
    `

		row := r.pool.QueryRow(
			ctx, query,
			rule.ShippingType, rule.Zone, rule.MinDistanceKm, rule.MaxDistanceKm,
			rule.BaseFee, rule.PerKgFee, rule.IncludedWeightKg, rule.EstimatedDays,
			rule.CutoffTime, rule.Active,
		)

		saved, err := scanRateRule(row)
		if err != nil {
			return nil, model.ErrRateLoadFailed(err)
		}
		return saved, nil
	}

	query := `
    UPDATE rate_rules
    SET shipping_type = $2, zone = $3, min_distance_km = $4, max_distance_km = $5,
        base_fee = $6, per_kg_fee = $7, included_weight_kg = $8, estimated_days = $9,
        cutoff_time = $10, active = $11, updated_at = NOW()
    WHERE id = $1
    RETURNING ` + rateRuleColumns + `
  `

	row := r.pool.QueryRow(
		ctx, query,
		rule.ID, rule.ShippingType, rule.Zone, rule.MinDistanceKm, rule.MaxDistanceKm,
		rule.BaseFee, rule.PerKgFee, rule.IncludedWeightKg, rule.EstimatedDays,
		rule.CutoffTime, rule.Active,
	)

	saved, err := scanRateRule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRateRuleNotFound()
		}
		return nil, model.ErrRateLoadFailed(err)
	}

	return saved, nil
}

// DeactivateRateRule soft-deletes a rate rule
func (r *postgresRepository) DeactivateRateRule(ctx context.Context, id uuid.UUID) error {
	query := `
    UPDATE rate_rules
    SET active = false, updated_at = NOW()
    WHERE id = $1
  `

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return model.ErrRateLoadFailed(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRateRuleNotFound()
	}

	return nil
}

// ListZoneMappings retrieves all zone mapping entries
func (r *postgresRepository) ListZoneMappings(ctx context.Context) ([]*model.ZoneMapping, error) {
	query := `
    SELECT id, match_type, name, zone, created_at
    FROM zone_mappings
    ORDER BY match_type, name
  `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, model.ErrRateLoadFailed(err)
	}
	defer rows.Close()

	var mappings []*model.ZoneMapping
	for rows.Next() {
		var m model.ZoneMapping
		err := rows.Scan(&m.ID, &m.MatchType, &m.Name, &m.Zone, &m.CreatedAt)
		if err != nil {
			return nil, model.ErrRateLoadFailed(err)
		}
		mappings = append(mappings, &m)
	}

	if err = rows.Err(); err != nil {
		return nil, model.ErrRateLoadFailed(err)
	}

	return mappings, nil
}

// UpsertZoneMapping inserts or updates a zone mapping entry
// Unique key: (match_type, name)
func (r *postgresRepository) UpsertZoneMapping(ctx context.Context, mapping *model.ZoneMapping) (*model.ZoneMapping, error) {
	query := `
    INSERT INTO zone_mappings (match_type, name, zone, created_at)
    VALUES ($1, $2, $3, NOW())
    ON CONFLICT (match_type, name)
    DO UPDATE SET zone = EXCLUDED.zone
    RETURNING id, match_type, name, zone, created_at
  `

	row := r.pool.QueryRow(ctx, query, mapping.MatchType, mapping.Name, mapping.Zone)

	var saved model.ZoneMapping
	err := row.Scan(&saved.ID, &saved.MatchType, &saved.Name, &saved.Zone, &saved.CreatedAt)
	if err != nil {
		return nil, model.ErrRateLoadFailed(err)
	}

	return &saved, nil
}
