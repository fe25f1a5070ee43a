package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cinebook/internal/catalog"
	"cinebook/internal/concessions"
	"cinebook/internal/coupons"
	"cinebook/internal/customers"
	"cinebook/internal/seatmap"
	"cinebook/internal/shared/config"
	"cinebook/pkg/logger"
)

// fakeRepo keeps sessions in memory and mirrors the repository's guarded
// transition semantics so concurrency-sensitive paths are testable.
type fakeRepo struct {
	sessions map[string]*BookingSession

	deductedPoints int64
	awardedPoints  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[string]*BookingSession)}
}

func (f *fakeRepo) CreateSession(ctx context.Context, session *BookingSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	f.sessions[session.ID.String()] = session
	return nil
}

func (f *fakeRepo) GetSessionByID(ctx context.Context, id string) (*BookingSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeRepo) GetLiveSessionByCustomer(ctx context.Context, customerID string) (*BookingSession, error) {
	for _, s := range f.sessions {
		if s.CustomerID.String() == customerID && s.Status.IsLive() {
			copied := *s
			return &copied, nil
		}
	}
	return nil, ErrNoLiveSession
}

func (f *fakeRepo) ListOverdueSessions(ctx context.Context, now time.Time, limit int) ([]BookingSession, error) {
	var overdue []BookingSession
	for _, s := range f.sessions {
		if s.Status.IsLive() && !s.ExpiresAt.After(now) {
			overdue = append(overdue, *s)
		}
	}
	return overdue, nil
}

func (f *fakeRepo) TransitionStatus(ctx context.Context, sessionID string, from []Status, to Status) error {
	session, ok := f.sessions[sessionID]
	if !ok {
		return ErrInvalidTransition
	}
	for _, status := range from {
		if session.Status == status {
			session.Status = to
			return nil
		}
	}
	return ErrInvalidTransition
}

func (f *fakeRepo) ReplaceSeats(ctx context.Context, sessionID string, seats []SessionSeat) error {
	f.sessions[sessionID].Seats = seats
	return nil
}

func (f *fakeRepo) UpsertConcession(ctx context.Context, line *SessionConcession) error { return nil }
func (f *fakeRepo) DeleteConcession(ctx context.Context, sessionID, itemID string) error {
	return nil
}
func (f *fakeRepo) AddCoupon(ctx context.Context, coupon *SessionCoupon) error      { return nil }
func (f *fakeRepo) RemoveCoupon(ctx context.Context, sessionID, code string) error { return nil }
func (f *fakeRepo) SetPointsRedeemed(ctx context.Context, sessionID string, points int64) error {
	f.sessions[sessionID].PointsRedeemed = points
	return nil
}

func (f *fakeRepo) FinalizePayment(ctx context.Context, session *BookingSession, payment *Payment, pointsToDeduct, pointsToAward int64, settle func(tx *gorm.DB) error) error {
	stored, ok := f.sessions[session.ID.String()]
	if !ok || stored.Status != StatusAwaitingPayment {
		return ErrInvalidTransition
	}
	stored.Status = StatusPaid
	stored.FinalAmount = session.FinalAmount
	stored.PointsRedeemed = session.PointsRedeemed
	stored.Payment = payment
	f.deductedPoints = pointsToDeduct
	f.awardedPoints = pointsToAward
	return nil
}

// recordingEvents counts published lifecycle events per type.
type recordingEvents struct {
	created, expired, cancelled, paid int
}

func (r *recordingEvents) SessionCreated(ctx context.Context, s *BookingSession)   { r.created++ }
func (r *recordingEvents) SessionExpired(ctx context.Context, s *BookingSession)   { r.expired++ }
func (r *recordingEvents) SessionCancelled(ctx context.Context, s *BookingSession) { r.cancelled++ }
func (r *recordingEvents) BookingPaid(ctx context.Context, s *BookingSession)      { r.paid++ }

// stubSeatmaps satisfies the seatmap dependency. Its hold store points at
// an unreachable Redis, so releases fail with a connection error, which the
// service treats as non-fatal.
type stubSeatmaps struct {
	holds *seatmap.HoldStore
}

func (s *stubSeatmaps) Load(ctx context.Context, showtimeID, sessionID string) (*seatmap.SeatMap, error) {
	return nil, seatmap.ErrShowtimeNotBookable
}

func (s *stubSeatmaps) Validate(ctx context.Context, showtimeID, sessionID string, selected []string, toggle string) (seatmap.Selection, *seatmap.SeatMap, error) {
	return nil, nil, seatmap.ErrShowtimeNotBookable
}

func (s *stubSeatmaps) Holds() *seatmap.HoldStore {
	return s.holds
}

// stubCatalog serves a single bookable showtime.
type stubCatalog struct {
	showtime *catalog.Showtime
}

func (s *stubCatalog) CreateMovie(ctx context.Context, req *catalog.CreateMovieRequest) (*catalog.Movie, error) {
	return nil, nil
}
func (s *stubCatalog) GetMovie(ctx context.Context, id string) (*catalog.Movie, error) {
	return nil, catalog.ErrMovieNotFound
}
func (s *stubCatalog) GetAllMovies(ctx context.Context, status string) ([]catalog.Movie, error) {
	return nil, nil
}
func (s *stubCatalog) UpdateMovie(ctx context.Context, id string, req *catalog.UpdateMovieRequest) (*catalog.Movie, error) {
	return nil, nil
}
func (s *stubCatalog) DeleteMovie(ctx context.Context, id string) error { return nil }
func (s *stubCatalog) CreateShowtime(ctx context.Context, req *catalog.CreateShowtimeRequest) (*catalog.Showtime, error) {
	return nil, nil
}
func (s *stubCatalog) GetShowtime(ctx context.Context, id string) (*catalog.Showtime, error) {
	if s.showtime == nil {
		return nil, catalog.ErrShowtimeNotFound
	}
	return s.showtime, nil
}
func (s *stubCatalog) GetShowtimesByMovie(ctx context.Context, movieID string) ([]catalog.Showtime, error) {
	return nil, nil
}
func (s *stubCatalog) UpdateShowtime(ctx context.Context, id string, req *catalog.UpdateShowtimeRequest) (*catalog.Showtime, error) {
	return nil, nil
}

type stubCustomers struct {
	customer *customers.Customer
}

func (s *stubCustomers) Register(ctx context.Context, req *customers.RegisterRequest) (*customers.AuthResponse, error) {
	return nil, nil
}
func (s *stubCustomers) Login(ctx context.Context, req *customers.LoginRequest) (*customers.AuthResponse, error) {
	return nil, nil
}
func (s *stubCustomers) RefreshToken(ctx context.Context, refreshToken string) (*customers.TokenPair, error) {
	return nil, nil
}
func (s *stubCustomers) ChangePassword(ctx context.Context, customerID string, req *customers.ChangePasswordRequest) error {
	return nil
}
func (s *stubCustomers) GetCustomer(ctx context.Context, customerID string) (*customers.Customer, error) {
	return s.customer, nil
}
func (s *stubCustomers) UpdateTier(ctx context.Context, customerID string, tier customers.MembershipTier) error {
	return nil
}
func (s *stubCustomers) RedeemPoints(ctx context.Context, customerID string, points int64) error {
	return nil
}
func (s *stubCustomers) AwardPoints(ctx context.Context, customerID string, points int64) error {
	return nil
}

func testSessionConfig() *config.Config {
	return &config.Config{
		Booking: config.BookingConfig{
			SessionTimeout:      5 * time.Minute,
			ExpiryCheckInterval: time.Second,
			MaxSeatsPerSession:  8,
		},
		Pricing: config.PricingConfig{
			PremiumSurcharge: 20000,
			DoubleSurcharge:  50000,
			PointValue:       1000,
			PointsCapPercent: 90,
			EarnRate:         10000,
		},
	}
}

func newTestService(repo Repository, events EventPublisher, now time.Time) *service {
	customer := &customers.Customer{ID: uuid.New(), Tier: customers.TierBase}
	showtime := &catalog.Showtime{
		ID:        uuid.New(),
		BasePrice: 100000,
		Status:    catalog.ShowtimeScheduled,
	}
	svc := NewService(
		repo,
		&stubCustomers{customer: customer},
		&stubCatalog{showtime: showtime},
		&stubSeatmaps{holds: seatmap.NewHoldStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))},
		concessions.NewService(nil, nil),
		coupons.NewService(nil),
		events,
		testSessionConfig(),
		logger.GetDefault(),
	).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func seedSession(repo *fakeRepo, status Status, expiresAt time.Time) *BookingSession {
	session := &BookingSession{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		ShowtimeID: uuid.New(),
		Status:     status,
		BasePrice:  100000,
		ExpiresAt:  expiresAt,
		CreatedAt:  expiresAt.Add(-5 * time.Minute),
	}
	repo.sessions[session.ID.String()] = session
	return session
}

func TestCreateSession_SupersedesPreviousLiveSession(t *testing.T) {
	now := time.Now()
	repo := newFakeRepo()
	events := &recordingEvents{}
	svc := newTestService(repo, events, now)

	previous := seedSession(repo, StatusPending, now.Add(time.Minute))

	created, err := svc.CreateSession(context.Background(), previous.CustomerID.String(), previous.ShowtimeID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, now.Add(5*time.Minute), created.ExpiresAt)

	// The older session was cancelled, not left dangling alongside the new one.
	assert.Equal(t, StatusCancelled, repo.sessions[previous.ID.String()].Status)
	assert.Equal(t, 1, events.cancelled)
	assert.Equal(t, 1, events.created)
}

func TestExpireOverdue_ExpiresExactlyOnce(t *testing.T) {
	now := time.Now()
	repo := newFakeRepo()
	events := &recordingEvents{}
	svc := newTestService(repo, events, now)

	session := seedSession(repo, StatusPending, now.Add(-time.Second))

	expired, err := svc.ExpireOverdue(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.Equal(t, StatusExpired, repo.sessions[session.ID.String()].Status)
	assert.Equal(t, 1, events.expired)

	// A second trigger is a no-op: same terminal state, no extra event.
	expired, err = svc.ExpireOverdue(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 0, expired)
	assert.Equal(t, StatusExpired, repo.sessions[session.ID.String()].Status)
	assert.Equal(t, 1, events.expired)
}

func TestExpireOverdue_LeavesFutureSessionsAlone(t *testing.T) {
	now := time.Now()
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingEvents{}, now)

	session := seedSession(repo, StatusPending, now.Add(time.Minute))

	expired, err := svc.ExpireOverdue(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 0, expired)
	assert.Equal(t, StatusPending, repo.sessions[session.ID.String()].Status)
}

func TestConfirmPayment_RejectsExpiredSession(t *testing.T) {
	// The timer check runs right before the commit: a payment arriving
	// after the deadline expires the session instead of charging it.
	now := time.Now()
	repo := newFakeRepo()
	events := &recordingEvents{}
	svc := newTestService(repo, events, now)

	session := seedSession(repo, StatusAwaitingPayment, now.Add(-time.Second))

	_, _, err := svc.ConfirmPayment(context.Background(), session.CustomerID.String(), session.ID.String(), "CARD", "tx-1")
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, StatusExpired, repo.sessions[session.ID.String()].Status)
	assert.Equal(t, 1, events.expired)
}

func TestConfirmPayment_CompletesBooking(t *testing.T) {
	now := time.Now()
	repo := newFakeRepo()
	events := &recordingEvents{}
	svc := newTestService(repo, events, now)

	session := seedSession(repo, StatusAwaitingPayment, now.Add(time.Minute))
	repo.sessions[session.ID.String()].Seats = []SessionSeat{
		{SessionID: session.ID, ShowtimeID: session.ShowtimeID, SeatLabel: "C4", Price: 120000},
	}

	paid, breakdown, err := svc.ConfirmPayment(context.Background(), session.CustomerID.String(), session.ID.String(), "CARD", "tx-42")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.Status)
	assert.Equal(t, int64(120000), breakdown.FinalAmount)
	require.NotNil(t, paid.Payment)
	assert.Equal(t, "tx-42", paid.Payment.TransactionID)
	assert.Equal(t, int64(120000), paid.Payment.Amount)
	assert.Equal(t, 1, events.paid)
}

func TestConfirmPayment_CappedPointsOnlyDeductUsedPoints(t *testing.T) {
	// 500 points against a 100,000 bill: the cap limits the discount to
	// 90,000, so only the 90 points behind it leave the balance.
	now := time.Now()
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingEvents{}, now)

	session := seedSession(repo, StatusAwaitingPayment, now.Add(time.Minute))
	stored := repo.sessions[session.ID.String()]
	stored.Seats = []SessionSeat{
		{SessionID: session.ID, ShowtimeID: session.ShowtimeID, SeatLabel: "B2", Price: 100000},
	}
	stored.PointsRedeemed = 500

	paid, breakdown, err := svc.ConfirmPayment(context.Background(), session.CustomerID.String(), session.ID.String(), "CARD", "tx-7")
	require.NoError(t, err)
	assert.Equal(t, int64(90000), breakdown.PointsDiscount)
	assert.Equal(t, int64(90), breakdown.PointsRedeemed)
	assert.Equal(t, int64(90), repo.deductedPoints)
	assert.Equal(t, int64(90), paid.PointsRedeemed)
	assert.Equal(t, int64(10000), paid.FinalAmount)
}

func TestConfirmPayment_RequiresAwaitingPayment(t *testing.T) {
	now := time.Now()
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingEvents{}, now)

	session := seedSession(repo, StatusPending, now.Add(time.Minute))

	_, _, err := svc.ConfirmPayment(context.Background(), session.CustomerID.String(), session.ID.String(), "CARD", "tx-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_OnlyLiveSessions(t *testing.T) {
	now := time.Now()
	repo := newFakeRepo()
	events := &recordingEvents{}
	svc := newTestService(repo, events, now)

	live := seedSession(repo, StatusPending, now.Add(time.Minute))
	require.NoError(t, svc.Cancel(context.Background(), live.CustomerID.String(), live.ID.String()))
	assert.Equal(t, StatusCancelled, repo.sessions[live.ID.String()].Status)
	assert.Equal(t, 1, events.cancelled)

	paid := seedSession(repo, StatusPaid, now.Add(time.Minute))
	err := svc.Cancel(context.Background(), paid.CustomerID.String(), paid.ID.String())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_RejectsForeignSession(t *testing.T) {
	now := time.Now()
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingEvents{}, now)

	session := seedSession(repo, StatusPending, now.Add(time.Minute))

	err := svc.Cancel(context.Background(), uuid.New().String(), session.ID.String())
	assert.ErrorIs(t, err, ErrNotSessionOwner)
}

func TestGetSession_LazyExpiry(t *testing.T) {
	now := time.Now()
	repo := newFakeRepo()
	events := &recordingEvents{}
	svc := newTestService(repo, events, now)

	session := seedSession(repo, StatusPending, now.Add(-time.Second))

	got, err := svc.GetSession(context.Background(), session.CustomerID.String(), session.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, got.Status)
	assert.Equal(t, 1, events.expired)
}
