package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/booking-widget/internal/domain/booking"
	"github.com/BruksfildServices01/booking-widget/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

const pgUniqueViolation = "23505"

// CreateBooking inserts b. Inserting the same reference again is a no-op;
// a second scheduled booking on the same slot fails with ErrSlotTaken.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "reference"}},
			DoNothing: true,
		}).
		Create(b).Error
	if isSlotConflict(err) {
		return domain.ErrSlotTaken
	}
	return err
}

func isSlotConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == models.ActiveSlotIndex
}

func (r *BookingGormRepository) ListBookedSlotIDs(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]string, error) {

	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"status = ? AND date >= ? AND date < ?",
			models.BookingStatusScheduled, from, to,
		).
		Order("slot_id ASC").
		Pluck("slot_id", &ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
