package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vakilyar/marketplace-backend/internal/adapters/kv"
	"github.com/vakilyar/marketplace-backend/internal/adapters/payments"
	"github.com/vakilyar/marketplace-backend/internal/adapters/store"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	apperrors "github.com/vakilyar/marketplace-backend/pkg/errors"
)

// memoryBookingRepo is a minimal in-memory BookingRepository for tests.
type memoryBookingRepo struct {
	bookings map[string]*entities.Booking
}

func newMemoryBookingRepo() *memoryBookingRepo {
	return &memoryBookingRepo{bookings: make(map[string]*entities.Booking)}
}

func (r *memoryBookingRepo) Create(_ context.Context, booking *entities.Booking) error {
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *memoryBookingRepo) GetByID(_ context.Context, id string) (*entities.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("booking not found")
	}
	return booking, nil
}

func (r *memoryBookingRepo) UpdateStatus(_ context.Context, id string, status entities.BookingStatus) error {
	booking, ok := r.bookings[id]
	if !ok {
		return apperrors.NewNotFoundError("booking not found")
	}
	booking.Status = status
	return nil
}

func (r *memoryBookingRepo) ListByUser(_ context.Context, userID string, _ repositories.BookingFilter) ([]*entities.Booking, error) {
	out := []*entities.Booking{}
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memoryBookingRepo) ListByLawyer(_ context.Context, lawyerID string, _ repositories.BookingFilter) ([]*entities.Booking, error) {
	out := []*entities.Booking{}
	for _, b := range r.bookings {
		if b.LawyerID == lawyerID {
			out = append(out, b)
		}
	}
	return out, nil
}

type bookingFixture struct {
	service  *BookingService
	schedule *ScheduleService
	repo     *memoryBookingRepo
	payments *payments.MockProvider
	slotID   string
}

// newBookingFixture builds a booking flow against an in-memory schedule with
// one open slot on 2024-03-02 and a fully seeded pricing matrix.
func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	ctx := context.Background()

	kvStore := kv.NewMemoryAdapter()
	scheduleSvc := NewScheduleService(store.NewTemplateAdapter(kvStore), store.NewSlotAdapter(kvStore))
	pricingRepo := store.NewPricingAdapter(kvStore)
	pricingSvc := NewPricingService(pricingRepo)

	require.NoError(t, pricingSvc.ApplyGlobalPercentage(ctx, "lawyer-1", 80, 90))
	slot, err := scheduleSvc.AddCustomSlot(ctx, "lawyer-1", "2024-03-02", "09:00", "10:00")
	require.NoError(t, err)

	repo := newMemoryBookingRepo()
	provider := payments.NewMockProvider()
	return &bookingFixture{
		service:  NewBookingService(repo, pricingRepo, scheduleSvc, provider),
		schedule: scheduleSvc,
		repo:     repo,
		payments: provider,
		slotID:   slot.ID,
	}
}

func validRequest(fx *bookingFixture) BookingRequest {
	return BookingRequest{
		LawyerID: "lawyer-1",
		SlotID:   fx.slotID,
		Duration: entities.Duration60Min,
		Channel:  entities.ChannelPhone,
	}
}

func TestBookRequiresSlotBeforeAuthentication(t *testing.T) {
	ctx := context.Background()
	fx := newBookingFixture(t)

	// No slot and no session: the missing slot is reported, not the
	// missing sign-in.
	req := validRequest(fx)
	req.SlotID = ""
	_, err := fx.service.Book(ctx, nil, req)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "time slot")
}

func TestBookRequiresAuthentication(t *testing.T) {
	ctx := context.Background()
	fx := newBookingFixture(t)

	_, err := fx.service.Book(ctx, nil, validRequest(fx))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	// Nothing was booked or charged
	slot, err := fx.schedule.GetSlot(ctx, "lawyer-1", fx.slotID)
	require.NoError(t, err)
	assert.False(t, slot.IsBooked)
	assert.Empty(t, fx.repo.bookings)
}

func TestBookValidatesDurationAndChannel(t *testing.T) {
	ctx := context.Background()
	fx := newBookingFixture(t)
	session := &entities.Session{UserID: "user-1"}

	req := validRequest(fx)
	req.Duration = "25min"
	_, err := fx.service.Book(ctx, session, req)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	req = validRequest(fx)
	req.Channel = "telegram"
	_, err = fx.service.Book(ctx, session, req)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestBookRejectsInactiveDuration(t *testing.T) {
	ctx := context.Background()
	fx := newBookingFixture(t)
	session := &entities.Session{UserID: "user-1"}

	pricingSvc := NewPricingService(fx.service.pricing)
	require.NoError(t, pricingSvc.SetActive(ctx, "lawyer-1", entities.Duration60Min, false))

	_, err := fx.service.Book(ctx, session, validRequest(fx))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestBookSuccess(t *testing.T) {
	ctx := context.Background()
	fx := newBookingFixture(t)
	session := &entities.Session{UserID: "user-1", Name: "Test User"}

	booking, err := fx.service.Book(ctx, session, validRequest(fx))
	require.NoError(t, err)

	assert.Equal(t, entities.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, fx.slotID, booking.SlotID)
	assert.Equal(t, "2024-03-02", booking.SlotDate)
	assert.Equal(t, 200000, booking.Price, "phone price of the 60min bucket at 80%")
	assert.NotEmpty(t, booking.PaymentRef)

	// Charge recorded, slot flipped, booking persisted
	amount, charged := fx.payments.Charged(booking.PaymentRef)
	assert.True(t, charged)
	assert.Equal(t, 200000, amount)

	slot, err := fx.schedule.GetSlot(ctx, "lawyer-1", fx.slotID)
	require.NoError(t, err)
	assert.True(t, slot.IsBooked)

	persisted, err := fx.service.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.BookingStatusConfirmed, persisted.Status)
}

func TestBookConflictOnTakenSlot(t *testing.T) {
	ctx := context.Background()
	fx := newBookingFixture(t)
	session := &entities.Session{UserID: "user-1"}

	_, err := fx.service.Book(ctx, session, validRequest(fx))
	require.NoError(t, err)

	// A second user picking the same slot gets a conflict
	_, err = fx.service.Book(ctx, &entities.Session{UserID: "user-2"}, validRequest(fx))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestBookPaymentFailureLeavesSlotOpen(t *testing.T) {
	ctx := context.Background()
	fx := newBookingFixture(t)
	fx.payments.FailCharges = true
	session := &entities.Session{UserID: "user-1"}

	_, err := fx.service.Book(ctx, session, validRequest(fx))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))

	slot, err := fx.schedule.GetSlot(ctx, "lawyer-1", fx.slotID)
	require.NoError(t, err)
	assert.False(t, slot.IsBooked)
	assert.Empty(t, fx.repo.bookings)
}

func TestListUserBookings(t *testing.T) {
	ctx := context.Background()
	fx := newBookingFixture(t)

	booking, err := fx.service.Book(ctx, &entities.Session{UserID: "user-1"}, validRequest(fx))
	require.NoError(t, err)

	bookings, err := fx.service.ListUserBookings(ctx, "user-1", repositories.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, booking.ID, bookings[0].ID)

	_, err = fx.service.ListUserBookings(ctx, "", repositories.BookingFilter{})
	assert.Error(t, err)
}
