package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	"github.com/vakilyar/marketplace-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vakilyar/marketplace-backend/pkg/errors"
)

const bookingsTable = "bookings"

var bookingColumns = []interface{}{
	"id", "user_id", "lawyer_id", "slot_id", "slot_date", "pricing_id",
	"duration", "channel", "price", "status", "payment_ref",
	"created_at", "updated_at",
}

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new booking
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	record := goqu.Record{
		"id":          booking.ID,
		"user_id":     booking.UserID,
		"lawyer_id":   booking.LawyerID,
		"slot_id":     booking.SlotID,
		"slot_date":   booking.SlotDate,
		"pricing_id":  booking.PricingID,
		"duration":    booking.Duration,
		"channel":     booking.Channel,
		"price":       booking.Price,
		"status":      booking.Status,
		"payment_ref": booking.PaymentRef,
		"created_at":  booking.CreatedAt,
		"updated_at":  booking.UpdatedAt,
	}

	query, args, err := a.db.Insert(bookingsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build booking insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}
	return nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From(bookingsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build booking query", err)
	}

	booking := &entities.Booking{}
	err = a.scanBooking(a.client.DB().QueryRowContext(ctx, query, args...), booking)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}
	return booking, nil
}

// UpdateStatus transitions a booking to a new status
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error {
	query, args, err := a.db.Update(bookingsTable).
		Set(goqu.Record{"status": status, "updated_at": time.Now()}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build booking update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update booking status", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	return nil
}

// ListByUser retrieves bookings for a user
func (a *BookingAdapter) ListByUser(ctx context.Context, userID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return a.list(ctx, goqu.Ex{"user_id": userID}, filter)
}

// ListByLawyer retrieves bookings for a lawyer
func (a *BookingAdapter) ListByLawyer(ctx context.Context, lawyerID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return a.list(ctx, goqu.Ex{"lawyer_id": lawyerID}, filter)
}

func (a *BookingAdapter) list(ctx context.Context, where goqu.Ex, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	ds := a.db.Select(bookingColumns...).From(bookingsTable).Where(where)

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}
	if filter.From != nil {
		ds = ds.Where(goqu.C("created_at").Gte(*filter.From))
	}
	if filter.To != nil {
		ds = ds.Where(goqu.C("created_at").Lte(*filter.To))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	ds = ds.Order(goqu.C("created_at").Desc()).Limit(uint(limit)).Offset(uint(filter.Offset))

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build booking list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	var bookings []*entities.Booking
	for rows.Next() {
		booking := &entities.Booking{}
		if err := a.scanBooking(rows, booking); err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read booking rows", err)
	}
	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *BookingAdapter) scanBooking(row rowScanner, booking *entities.Booking) error {
	var paymentRef sql.NullString
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.LawyerID,
		&booking.SlotID,
		&booking.SlotDate,
		&booking.PricingID,
		&booking.Duration,
		&booking.Channel,
		&booking.Price,
		&booking.Status,
		&paymentRef,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return err
	}
	booking.PaymentRef = paymentRef.String
	return nil
}
