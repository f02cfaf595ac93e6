package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-backend/internal/domains/order/model"
	"marketplace-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const orderColumns = `
	id, user_id, status, items_total, weight_kg, fragile,
	region, city, street_address, lat, lng,
	shipping_type, shipping_fee, estimated_days, zone, distance_km,
	pending_shipping_type, pending_shipping_fee, pending_estimated_days,
	pending_region, pending_city, pending_street_address, pending_lat, pending_lng,
	pending_zone, pending_distance_km,
	version, created_at, updated_at
`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.Status, &o.ItemsTotal, &o.WeightKg, &o.Fragile,
		&o.Region, &o.City, &o.StreetAddress, &o.Lat, &o.Lng,
		&o.ShippingType, &o.ShippingFee, &o.EstimatedDays, &o.Zone, &o.DistanceKm,
		&o.PendingShippingType, &o.PendingShippingFee, &o.PendingEstimatedDays,
		&o.PendingRegion, &o.PendingCity, &o.PendingStreetAddress, &o.PendingLat, &o.PendingLng,
		&o.PendingZone, &o.PendingDistanceKm,
		&o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func scanPaymentRequest(row pgx.Row) (*model.AdditionalPaymentRequest, error) {
	var r model.AdditionalPaymentRequest
	err := row.Scan(
		&r.ID, &r.OrderID, &r.OldFee, &r.NewFee, &r.AdditionalAmount,
		&r.Status, &r.CreatedAt, &r.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetByID retrieves an order by ID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
    SELECT ` + orderColumns + `
    FROM orders
    WHERE id = $1
  `

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, model.ErrSaveFailed(err)
	}

	return order, nil
}

// abandonPendingRequests abandon mọi pending payment request của order trong tx
func abandonPendingRequests(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error {
	query := `
    UPDATE additional_payment_requests
    SET status = $2, resolved_at = NOW()
    WHERE order_id = $1 AND status = $3
  `
	_, err := tx.Exec(ctx, query, orderID, model.PaymentRequestAbandoned, model.PaymentRequestPending)
	return err
}

// UpdateShipping commit shipping mới ngay (fee không tăng)
func (r *postgresRepository) UpdateShipping(ctx context.Context, orderID uuid.UUID, version int, upd *ShippingUpdate) (*model.Order, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Order, error) {
		query := `
      UPDATE orders
      SET region = $3, city = $4, street_address = $5, lat = $6, lng = $7,
          shipping_type = $8, shipping_fee = $9, estimated_days = $10,
          zone = $11, distance_km = $12,
          pending_shipping_type = NULL, pending_shipping_fee = NULL,
          pending_estimated_days = NULL, pending_region = NULL, pending_city = NULL,
          pending_street_address = NULL, pending_lat = NULL, pending_lng = NULL,
          pending_zone = NULL, pending_distance_km = NULL,
          version = version + 1, updated_at = NOW()
      WHERE id = $1 AND version = $2
      RETURNING ` + orderColumns + `
    `

		row := tx.QueryRow(
			ctx, query,
			orderID, version,
			upd.Region, upd.City, upd.StreetAddress, upd.Lat, upd.Lng,
			upd.ShippingType, upd.ShippingFee, upd.EstimatedDays,
			upd.Zone, upd.DistanceKm,
		)

		order, err := scanOrder(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, versionConflictOrNotFound(ctx, tx, orderID)
			}
			return nil, model.ErrSaveFailed(err)
		}

		// Shipping mới đã commit → pending request cũ (nếu còn) hết ý nghĩa
		if err := abandonPendingRequests(ctx, tx, orderID); err != nil {
			return nil, model.ErrSaveFailed(err)
		}

		return order, nil
	})
}

// SavePendingShipping lưu shipping mới vào pending fields + tạo payment request
func (r *postgresRepository) SavePendingShipping(ctx context.Context, orderID uuid.UUID, version int, upd *ShippingUpdate, request *model.AdditionalPaymentRequest) (*model.AdditionalPaymentRequest, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.AdditionalPaymentRequest, error) {
		// Re-edit thay thế pending request cũ
		if err := abandonPendingRequests(ctx, tx, orderID); err != nil {
			return nil, model.ErrSaveFailed(err)
		}

		query := `
      UPDATE orders
      SET pending_shipping_type = $3, pending_shipping_fee = $4, pending_estimated_days = $5,
          pending_region = $6, pending_city = $7, pending_street_address = $8,
          pending_lat = $9, pending_lng = $10,
          pending_zone = $11, pending_distance_km = $12,
          version = version + 1, updated_at = NOW()
      WHERE id = $1 AND version = $2
    `

		tag, err := tx.Exec(
			ctx, query,
			orderID, version,
			upd.ShippingType, upd.ShippingFee, upd.EstimatedDays,
			upd.Region, upd.City, upd.StreetAddress,
			upd.Lat, upd.Lng,
			upd.Zone, upd.DistanceKm,
		)
		if err != nil {
			return nil, model.ErrSaveFailed(err)
		}
		if tag.RowsAffected() == 0 {
			return nil, versionConflictOrNotFound(ctx, tx, orderID)
		}

		insertQuery := `
      INSERT INTO additional_payment_requests
      (order_id, old_fee, new_fee, additional_amount, status, created_at)
      VALUES ($1, $2, $3, $4, $5, NOW())
      RETURNING id, order_id, old_fee, new_fee, additional_amount, status, created_at, resolved_at
    `

		row := tx.QueryRow(
			ctx, insertQuery,
			orderID, request.OldFee, request.NewFee, request.AdditionalAmount,
			model.PaymentRequestPending,
		)

		saved, err := scanPaymentRequest(row)
		if err != nil {
			return nil, model.ErrSaveFailed(err)
		}

		return saved, nil
	})
}

// GetPendingPaymentRequest trả payment request đang pending của order
func (r *postgresRepository) GetPendingPaymentRequest(ctx context.Context, orderID uuid.UUID) (*model.AdditionalPaymentRequest, error) {
	query := `
    SELECT id, order_id, old_fee, new_fee, additional_amount, status, created_at, resolved_at
    FROM additional_payment_requests
    WHERE order_id = $1 AND status = $2
    ORDER BY created_at DESC
    LIMIT 1
  `

	request, err := scanPaymentRequest(r.pool.QueryRow(ctx, query, orderID, model.PaymentRequestPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, model.ErrSaveFailed(err)
	}

	return request, nil
}

// CommitPendingShipping promote pending shipping → committed, mark request paid
func (r *postgresRepository) CommitPendingShipping(ctx context.Context, orderID, requestID uuid.UUID) (*model.Order, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Order, error) {
		markQuery := `
      UPDATE additional_payment_requests
      SET status = $3, resolved_at = NOW()
      WHERE id = $1 AND order_id = $2 AND status = $4
    `

		tag, err := tx.Exec(ctx, markQuery, requestID, orderID, model.PaymentRequestPaid, model.PaymentRequestPending)
		if err != nil {
			return nil, model.ErrSaveFailed(err)
		}
		if tag.RowsAffected() == 0 {
			return nil, model.ErrNoPendingPaymentRequest()
		}

		query := `
      UPDATE orders
      SET shipping_type = pending_shipping_type,
          shipping_fee = pending_shipping_fee,
          estimated_days = COALESCE(pending_estimated_days, estimated_days),
          region = COALESCE(pending_region, region),
          city = COALESCE(pending_city, city),
          street_address = COALESCE(pending_street_address, street_address),
          lat = COALESCE(pending_lat, lat),
          lng = COALESCE(pending_lng, lng),
          zone = pending_zone,         -- gán thẳng, không COALESCE: quote mới
          distance_km = pending_distance_km, -- price theo distance thì zone là NULL
          pending_shipping_type = NULL, pending_shipping_fee = NULL,
          pending_estimated_days = NULL, pending_region = NULL, pending_city = NULL,
          pending_street_address = NULL, pending_lat = NULL, pending_lng = NULL,
          pending_zone = NULL, pending_distance_km = NULL,
          version = version + 1, updated_at = NOW()
      WHERE id = $1 AND pending_shipping_fee IS NOT NULL
      RETURNING ` + orderColumns + `
    `

		order, err := scanOrder(tx.QueryRow(ctx, query, orderID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrNoPendingPaymentRequest()
			}
			return nil, model.ErrSaveFailed(err)
		}

		return order, nil
	})
}

// RevertPendingShipping clear pending shipping, mark request abandoned
func (r *postgresRepository) RevertPendingShipping(ctx context.Context, orderID, requestID uuid.UUID) (*model.Order, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Order, error) {
		markQuery := `
      UPDATE additional_payment_requests
      SET status = $3, resolved_at = NOW()
      WHERE id = $1 AND order_id = $2 AND status = $4
    `

		tag, err := tx.Exec(ctx, markQuery, requestID, orderID, model.PaymentRequestAbandoned, model.PaymentRequestPending)
		if err != nil {
			return nil, model.ErrSaveFailed(err)
		}
		if tag.RowsAffected() == 0 {
			return nil, model.ErrNoPendingPaymentRequest()
		}

		query := `
      UPDATE orders
      SET pending_shipping_type = NULL, pending_shipping_fee = NULL,
          pending_estimated_days = NULL, pending_region = NULL, pending_city = NULL,
          pending_street_address = NULL, pending_lat = NULL, pending_lng = NULL,
          pending_zone = NULL, pending_distance_km = NULL,
          version = version + 1, updated_at = NOW()
      WHERE id = $1
      RETURNING ` + orderColumns + `
    `

		order, err := scanOrder(tx.QueryRow(ctx, query, orderID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrOrderNotFound()
			}
			return nil, model.ErrSaveFailed(err)
		}

		return order, nil
	})
}

// AbandonStaleRequests abandon mọi pending request tạo trước cutoff (worker job)
func (r *postgresRepository) AbandonStaleRequests(ctx context.Context, cutoff time.Time) (int64, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		markQuery := `
      UPDATE additional_payment_requests
      SET status = $1, resolved_at = NOW()
      WHERE status = $2 AND created_at < $3
      RETURNING order_id
    `

		rows, err := tx.Query(ctx, markQuery, model.PaymentRequestAbandoned, model.PaymentRequestPending, cutoff)
		if err != nil {
			return 0, model.ErrSaveFailed(err)
		}

		var orderIDs []uuid.UUID
		for rows.Next() {
			var id uuid.UUID
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return 0, model.ErrSaveFailed(err)
			}
			orderIDs = append(orderIDs, id)
		}
		rows.Close()

		if err := rows.Err(); err != nil {
			return 0, model.ErrSaveFailed(err)
		}

		if len(orderIDs) == 0 {
			return 0, nil
		}

		clearQuery := `
      UPDATE orders
      SET pending_shipping_type = NULL, pending_shipping_fee = NULL,
          pending_estimated_days = NULL, pending_region = NULL, pending_city = NULL,
          pending_street_address = NULL, pending_lat = NULL, pending_lng = NULL,
          pending_zone = NULL, pending_distance_km = NULL,
          version = version + 1, updated_at = NOW()
      WHERE id = ANY($1)
    `

		if _, err := tx.Exec(ctx, clearQuery, orderIDs); err != nil {
			return 0, model.ErrSaveFailed(err)
		}

		return int64(len(orderIDs)), nil
	})
}

// versionConflictOrNotFound phân biệt optimistic lock conflict với order không tồn tại
func versionConflictOrNotFound(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists)
	if err != nil {
		return model.ErrSaveFailed(err)
	}
	if !exists {
		return model.ErrOrderNotFound()
	}
	return model.ErrVersionConflict()
}
