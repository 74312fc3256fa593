package riderrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRiderRepository implements RiderRepository using GORM.
type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRiderRepository creates a new GORM rider repository.
func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rider to the database.
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing rider to the database.
func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RiderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rider", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a rider by ID.
func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetNearestAvailable retrieves up to limit active available riders ordered by
// great-circle distance from the point. Distance is computed in SQL with the
// haversine formula so the ordering happens in the database.
func (r *GormRiderRepository) GetNearestAvailable(ctx context.Context, point kernel.GeoPoint, limit int) ([]*rider.Rider, error) {
	if limit <= 0 {
		limit = 1
	}

	var dtos []RiderDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM riders
		WHERE status = ? AND is_active
		ORDER BY 6371 * acos(least(1.0,
			cos(radians(?)) * cos(radians(lat)) * cos(radians(lon) - radians(?)) +
			sin(radians(?)) * sin(radians(lat))
		)) ASC
		LIMIT ?`,
		rider.StatusAvailable,
		point.Latitude(), point.Longitude(), point.Latitude(),
		limit,
	).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	riders := make([]*rider.Rider, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		riders = append(riders, aggregate)
	}

	return riders, nil
}

// TryClaim atomically flips an available rider to busy. It reports false when
// the rider was already claimed, deactivated, or gone; concurrent claimers
// race on the conditional update and exactly one wins.
func (r *GormRiderRepository) TryClaim(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Model(&RiderDTO{}).
		Where("id = ? AND status = ? AND is_active", id.Bytes(), rider.StatusAvailable).
		Updates(map[string]any{
			"status":     rider.StatusBusy,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// Release flips a busy rider back to available. When completed is true the
// rider is credited with a finished delivery.
func (r *GormRiderRepository) Release(ctx context.Context, id kernel.UUID, completed bool) error {
	if err := id.Validate(); err != nil {
		return err
	}

	updates := map[string]any{
		"status":     rider.StatusAvailable,
		"updated_at": time.Now().UTC(),
	}
	if completed {
		updates["deliveries_completed"] = gorm.Expr("deliveries_completed + 1")
	}

	result := r.db.WithContext(ctx).Model(&RiderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), rider.StatusBusy).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("busy rider", id.String())
	}

	return nil
}
