package sessions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinebook/internal/catalog"
	"cinebook/internal/concessions"
	"cinebook/internal/coupons"
	"cinebook/internal/customers"
	"cinebook/internal/pricing"
	"cinebook/internal/seatmap"
	"cinebook/internal/shared/config"
	"cinebook/pkg/logger"
)

var (
	ErrNotSessionOwner    = errors.New("session belongs to another customer")
	ErrSessionNotEditable = errors.New("session is not editable in its current state")
	ErrSessionExpired     = errors.New("session has expired")
	ErrEmptySelection     = errors.New("session has no seats selected")
	ErrInsufficientPoints = customers.ErrInsufficientPoints
)

type Service interface {
	// CreateSession opens a new PENDING session, cancelling and releasing
	// the customer's previous live session if one exists.
	CreateSession(ctx context.Context, customerID, showtimeID string) (*BookingSession, error)
	GetSession(ctx context.Context, customerID, sessionID string) (*BookingSession, error)

	// UpdateSeats replaces the seat selection. Only valid while PENDING;
	// the whole new selection is re-validated and re-held atomically.
	UpdateSeats(ctx context.Context, customerID, sessionID string, labels []string) (*BookingSession, error)
	AdjustConcession(ctx context.Context, customerID, sessionID, itemID string, delta int) (*BookingSession, error)

	ApplyCoupon(ctx context.Context, customerID, sessionID, code string) (*BookingSession, error)
	RemoveCoupon(ctx context.Context, customerID, sessionID, code string) (*BookingSession, error)
	RedeemPoints(ctx context.Context, customerID, sessionID string, points int64) (*BookingSession, error)

	// Quote prices the session as it stands without changing any state.
	Quote(ctx context.Context, customerID, sessionID string) (*BookingSession, *pricing.Breakdown, error)

	// Checkout freezes the selection: PENDING -> AWAITING_PAYMENT.
	Checkout(ctx context.Context, customerID, sessionID string) (*BookingSession, error)
	// ConfirmPayment finalizes the booking: AWAITING_PAYMENT -> PAID.
	ConfirmPayment(ctx context.Context, customerID, sessionID, method, transactionID string) (*BookingSession, *pricing.Breakdown, error)
	Cancel(ctx context.Context, customerID, sessionID string) error

	// ExpireOverdue transitions every live session past its deadline to
	// EXPIRED and releases its holds. Safe to call concurrently.
	ExpireOverdue(ctx context.Context, batchSize int) (int, error)
}

type service struct {
	repo        Repository
	customers   customers.Service
	catalog     catalog.Service
	seatmaps    seatmap.Service
	concessions concessions.Service
	coupons     coupons.Service
	engine      *pricing.Engine
	discounts   *pricing.DiscountEngine
	events      EventPublisher
	config      *config.Config
	log         *logger.Logger

	now func() time.Time
}

// EventPublisher decouples the service from the Kafka producer; tests plug
// in a recorder.
type EventPublisher interface {
	SessionCreated(ctx context.Context, session *BookingSession)
	SessionExpired(ctx context.Context, session *BookingSession)
	SessionCancelled(ctx context.Context, session *BookingSession)
	BookingPaid(ctx context.Context, session *BookingSession)
}

func NewService(
	repo Repository,
	customerService customers.Service,
	catalogService catalog.Service,
	seatmapService seatmap.Service,
	concessionService concessions.Service,
	couponService coupons.Service,
	events EventPublisher,
	cfg *config.Config,
	log *logger.Logger,
) Service {
	return &service{
		repo:        repo,
		customers:   customerService,
		catalog:     catalogService,
		seatmaps:    seatmapService,
		concessions: concessionService,
		coupons:     couponService,
		engine:      pricing.NewEngine(cfg),
		discounts:   pricing.NewDiscountEngine(cfg),
		events:      events,
		config:      cfg,
		log:         log,
		now:         time.Now,
	}
}

func (s *service) CreateSession(ctx context.Context, customerID, showtimeID string) (*BookingSession, error) {
	showtime, err := s.catalog.GetShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if !showtime.Status.IsBookable() {
		return nil, seatmap.ErrShowtimeNotBookable
	}

	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, customers.ErrCustomerNotFound
	}

	// One live session per customer: a new booking supersedes the old one.
	if previous, err := s.repo.GetLiveSessionByCustomer(ctx, customerID); err == nil {
		if err := s.terminate(ctx, previous, StatusCancelled); err != nil && !errors.Is(err, ErrInvalidTransition) {
			return nil, fmt.Errorf("failed to supersede previous session: %w", err)
		}
	} else if !errors.Is(err, ErrNoLiveSession) {
		return nil, err
	}

	now := s.now()
	session := &BookingSession{
		CustomerID: customerUUID,
		ShowtimeID: showtime.ID,
		Status:     StatusPending,
		BasePrice:  showtime.BasePrice,
		ExpiresAt:  now.Add(s.config.Booking.SessionTimeout),
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.LogSessionCreated(ctx, session.ID.String(), showtimeID, customerID)
	s.events.SessionCreated(ctx, session)
	return session, nil
}

func (s *service) GetSession(ctx context.Context, customerID, sessionID string) (*BookingSession, error) {
	session, err := s.ownedSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}

	// Lazy expiry: a read past the deadline settles the session before
	// reporting it, so callers never see a live session with zero time.
	if session.Status.IsLive() && s.timer(session).Expired(s.now()) {
		if err := s.terminate(ctx, session, StatusExpired); err != nil && !errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		return s.repo.GetSessionByID(ctx, sessionID)
	}
	return session, nil
}

func (s *service) UpdateSeats(ctx context.Context, customerID, sessionID string, labels []string) (*BookingSession, error) {
	session, err := s.editableSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}

	showtimeID := session.ShowtimeID.String()
	sm, err := s.seatmaps.Load(ctx, showtimeID, sessionID)
	if err != nil {
		return nil, err
	}

	// Fold the selection through the toggle validator in row/column order
	// so contiguous blocks build up without spurious gap rejections.
	sorted := sortedByPosition(labels, sm)
	validator := &seatmap.Validator{MaxSeats: s.config.Booking.MaxSeatsPerSession}
	selection := seatmap.NewSelection()
	for _, label := range sorted {
		selection, err = validator.TryToggle(selection, label, sm)
		if err != nil {
			return nil, err
		}
	}

	ttl := s.timer(session).Remaining(s.now())
	if err := s.seatmaps.Holds().HoldSeats(ctx, showtimeID, sessionID, sorted, ttl); err != nil {
		var conflict *seatmap.SeatConflictError
		if errors.As(err, &conflict) {
			s.log.LogSelectionRejected(ctx, showtimeID, conflict.SeatLabel, "held by another session")
		}
		return nil, err
	}

	// Release holds on seats dropped from the previous selection.
	var removed []string
	for _, seat := range session.Seats {
		if !selection.Contains(seat.SeatLabel) {
			removed = append(removed, seat.SeatLabel)
		}
	}
	if err := s.seatmaps.Holds().ReleaseLabels(ctx, showtimeID, sessionID, removed); err != nil {
		return nil, err
	}

	seats := make([]SessionSeat, 0, len(sorted))
	for _, label := range sorted {
		info := sm.Seat(label)
		seats = append(seats, SessionSeat{
			SessionID:  session.ID,
			ShowtimeID: session.ShowtimeID,
			SeatLabel:  label,
			Class:      info.Class,
			Price:      s.engine.PriceOfSeat(session.BasePrice, info.Class),
		})
	}
	if err := s.repo.ReplaceSeats(ctx, sessionID, seats); err != nil {
		return nil, fmt.Errorf("failed to store seat selection: %w", err)
	}

	return s.repo.GetSessionByID(ctx, sessionID)
}

func (s *service) AdjustConcession(ctx context.Context, customerID, sessionID, itemID string, delta int) (*BookingSession, error) {
	session, err := s.editableSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}

	// Rebuild the selection from stored rows, apply the delta with
	// zero-quantity pruning, then persist the single affected line.
	sel := concessions.NewSelection()
	for _, line := range session.Concessions {
		sel[line.ItemID.String()] = line.Quantity
	}
	newQty := sel.Adjust(itemID, delta)

	if newQty == 0 {
		if err := s.repo.DeleteConcession(ctx, sessionID, itemID); err != nil {
			return nil, err
		}
		return s.repo.GetSessionByID(ctx, sessionID)
	}

	items, err := s.concessions.Resolve(ctx, concessions.Selection{itemID: newQty})
	if err != nil {
		return nil, err
	}
	item := items[0]

	line := &SessionConcession{
		SessionID: session.ID,
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  newQty,
	}
	if err := s.repo.UpsertConcession(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to store concession: %w", err)
	}

	return s.repo.GetSessionByID(ctx, sessionID)
}

func (s *service) ApplyCoupon(ctx context.Context, customerID, sessionID, code string) (*BookingSession, error) {
	session, err := s.liveSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0, len(session.Coupons))
	for _, sc := range session.Coupons {
		applied = append(applied, sc.Code)
	}

	subtotal := s.seatSubtotal(session) + s.concessionSubtotal(session)
	coupon, err := s.coupons.Validate(ctx, code, subtotal, applied)
	if err != nil {
		return nil, err
	}

	sc := &SessionCoupon{
		SessionID: session.ID,
		CouponID:  coupon.ID,
		Code:      coupon.Code,
		Type:      coupon.Type,
		Value:     coupon.Value,
		Balance:   coupon.Balance,
		Position:  len(session.Coupons) + 1,
	}
	if err := s.repo.AddCoupon(ctx, sc); err != nil {
		return nil, fmt.Errorf("failed to apply coupon: %w", err)
	}

	return s.repo.GetSessionByID(ctx, sessionID)
}

func (s *service) RemoveCoupon(ctx context.Context, customerID, sessionID, code string) (*BookingSession, error) {
	if _, err := s.liveSession(ctx, customerID, sessionID); err != nil {
		return nil, err
	}

	if err := s.repo.RemoveCoupon(ctx, sessionID, code); err != nil {
		return nil, err
	}
	return s.repo.GetSessionByID(ctx, sessionID)
}

func (s *service) RedeemPoints(ctx context.Context, customerID, sessionID string, points int64) (*BookingSession, error) {
	session, err := s.liveSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}

	if points < 0 {
		points = 0
	}
	if points > 0 {
		customer, err := s.customers.GetCustomer(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if customer.LoyaltyPoints < points {
			return nil, ErrInsufficientPoints
		}
	}

	if err := s.repo.SetPointsRedeemed(ctx, session.ID.String(), points); err != nil {
		return nil, err
	}
	return s.repo.GetSessionByID(ctx, sessionID)
}

func (s *service) Quote(ctx context.Context, customerID, sessionID string) (*BookingSession, *pricing.Breakdown, error) {
	session, err := s.ownedSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	breakdown, err := s.quote(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	return session, breakdown, nil
}

func (s *service) Checkout(ctx context.Context, customerID, sessionID string) (*BookingSession, error) {
	session, err := s.editableSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(session.Seats) == 0 {
		return nil, ErrEmptySelection
	}

	// Re-assert the holds before freezing; a lapsed hold grabbed by
	// another session surfaces here as a conflict instead of at payment.
	labels := seatLabels(session)
	ttl := s.timer(session).Remaining(s.now())
	if err := s.seatmaps.Holds().HoldSeats(ctx, session.ShowtimeID.String(), sessionID, labels, ttl); err != nil {
		return nil, err
	}

	if err := s.repo.TransitionStatus(ctx, sessionID, []Status{StatusPending}, StatusAwaitingPayment); err != nil {
		return nil, err
	}

	s.log.LogSessionTransition(ctx, sessionID, StatusPending.String(), StatusAwaitingPayment.String())
	return s.repo.GetSessionByID(ctx, sessionID)
}

func (s *service) ConfirmPayment(ctx context.Context, customerID, sessionID, method, transactionID string) (*BookingSession, *pricing.Breakdown, error) {
	session, err := s.ownedSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Status != StatusAwaitingPayment {
		return nil, nil, ErrInvalidTransition
	}

	// Deadline check right before committing: a payment that races the
	// timer loses to it.
	if s.timer(session).Expired(s.now()) {
		if err := s.terminate(ctx, session, StatusExpired); err != nil && !errors.Is(err, ErrInvalidTransition) {
			return nil, nil, err
		}
		return nil, nil, ErrSessionExpired
	}

	breakdown, err := s.quote(ctx, session)
	if err != nil {
		return nil, nil, err
	}

	session.FinalAmount = breakdown.FinalAmount
	session.PointsRedeemed = breakdown.PointsRedeemed
	session.PointsEarned = s.engine.PointsEarned(breakdown.FinalAmount)

	payment := &Payment{
		SessionID:     session.ID,
		TransactionID: transactionID,
		Method:        method,
		Amount:        breakdown.FinalAmount,
		Status:        PaymentCompleted,
	}

	// The breakdown reports only the points that funded the discount; a
	// capped redemption leaves the rest on the customer's balance.
	pointsToDeduct := breakdown.PointsRedeemed

	settlements := couponSettlements(session, breakdown)
	err = s.repo.FinalizePayment(ctx, session, payment, pointsToDeduct, session.PointsEarned, func(tx *gorm.DB) error {
		return s.coupons.Settle(ctx, tx, sessionID, settlements)
	})
	if err != nil {
		return nil, nil, err
	}

	if _, err := s.seatmaps.Holds().ReleaseSeats(ctx, sessionID); err != nil {
		s.log.ErrorWithContext(ctx, "failed to release holds after payment", err, nil)
	}

	s.log.LogPaymentProcessed(ctx, sessionID, transactionID, breakdown.FinalAmount)
	s.log.LogSessionTransition(ctx, sessionID, StatusAwaitingPayment.String(), StatusPaid.String())

	paid, err := s.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	s.events.BookingPaid(ctx, paid)
	return paid, breakdown, nil
}

func (s *service) Cancel(ctx context.Context, customerID, sessionID string) error {
	session, err := s.ownedSession(ctx, customerID, sessionID)
	if err != nil {
		return err
	}
	if !session.Status.IsLive() {
		return ErrInvalidTransition
	}
	return s.terminate(ctx, session, StatusCancelled)
}

func (s *service) ExpireOverdue(ctx context.Context, batchSize int) (int, error) {
	overdue, err := s.repo.ListOverdueSessions(ctx, s.now(), batchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range overdue {
		session := &overdue[i]
		err := s.terminate(ctx, session, StatusExpired)
		if errors.Is(err, ErrInvalidTransition) {
			// Lost the race to another trigger; already settled.
			continue
		}
		if err != nil {
			return expired, err
		}
		expired++
	}
	return expired, nil
}

// terminate moves a live session to a terminal state exactly once, then
// releases its seat holds and publishes the matching event. The guarded
// transition makes concurrent triggers collapse to one winner.
func (s *service) terminate(ctx context.Context, session *BookingSession, to Status) error {
	if err := s.repo.TransitionStatus(ctx, session.ID.String(), LiveStatuses, to); err != nil {
		return err
	}

	if _, err := s.seatmaps.Holds().ReleaseSeats(ctx, session.ID.String()); err != nil {
		s.log.ErrorWithContext(ctx, "failed to release seat holds", err, map[string]interface{}{"session_id": session.ID.String()})
	}

	s.log.LogSessionTransition(ctx, session.ID.String(), session.Status.String(), to.String())
	switch to {
	case StatusExpired:
		s.events.SessionExpired(ctx, session)
	case StatusCancelled:
		s.events.SessionCancelled(ctx, session)
	}
	return nil
}

func (s *service) quote(ctx context.Context, session *BookingSession) (*pricing.Breakdown, error) {
	customer, err := s.customers.GetCustomer(ctx, session.CustomerID.String())
	if err != nil {
		return nil, err
	}

	applied := make([]coupons.Coupon, 0, len(session.Coupons))
	for i := range session.Coupons {
		applied = append(applied, session.Coupons[i].toCouponModel())
	}

	breakdown := s.discounts.Quote(
		s.seatSubtotal(session),
		s.concessionSubtotal(session),
		customer.Tier,
		applied,
		session.PointsRedeemed,
	)
	return &breakdown, nil
}

func (s *service) seatSubtotal(session *BookingSession) int64 {
	var subtotal int64
	for _, seat := range session.Seats {
		subtotal += seat.Price
	}
	return subtotal
}

func (s *service) concessionSubtotal(session *BookingSession) int64 {
	lines := make([]pricing.ConcessionLine, 0, len(session.Concessions))
	for _, c := range session.Concessions {
		lines = append(lines, pricing.ConcessionLine{
			ItemID:    c.ItemID.String(),
			Name:      c.Name,
			UnitPrice: c.UnitPrice,
			Quantity:  c.Quantity,
		})
	}
	return s.engine.ConcessionSubtotal(lines)
}

func (s *service) timer(session *BookingSession) Timer {
	return Timer{Deadline: session.ExpiresAt}
}

func (s *service) ownedSession(ctx context.Context, customerID, sessionID string) (*BookingSession, error) {
	session, err := s.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CustomerID.String() != customerID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

func (s *service) liveSession(ctx context.Context, customerID, sessionID string) (*BookingSession, error) {
	session, err := s.ownedSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Status.IsLive() {
		return nil, ErrSessionNotEditable
	}
	if s.timer(session).Expired(s.now()) {
		if err := s.terminate(ctx, session, StatusExpired); err != nil && !errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		return nil, ErrSessionExpired
	}
	return session, nil
}

func (s *service) editableSession(ctx context.Context, customerID, sessionID string) (*BookingSession, error) {
	session, err := s.liveSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != StatusPending {
		return nil, ErrSessionNotEditable
	}
	return session, nil
}

func seatLabels(session *BookingSession) []string {
	labels := make([]string, 0, len(session.Seats))
	for _, seat := range session.Seats {
		labels = append(labels, seat.SeatLabel)
	}
	return labels
}

// sortedByPosition orders labels by row then column using the seat map;
// unknown labels sort last and fail validation afterwards.
func sortedByPosition(labels []string, sm *seatmap.SeatMap) []string {
	sorted := make([]string, len(labels))
	copy(sorted, labels)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sm.Seat(sorted[i]), sm.Seat(sorted[j])
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		if a.RowLabel != b.RowLabel {
			return a.RowLabel < b.RowLabel
		}
		return a.Column < b.Column
	})
	return sorted
}

// couponSettlements pairs each applied coupon with the discount it actually
// produced in the breakdown.
func couponSettlements(session *BookingSession, breakdown *pricing.Breakdown) []coupons.Settlement {
	settlements := make([]coupons.Settlement, 0, len(session.Coupons))
	for i, sc := range session.Coupons {
		var amount int64
		if i < len(breakdown.CouponDiscounts) {
			amount = breakdown.CouponDiscounts[i].Amount
		}
		settlements = append(settlements, coupons.Settlement{
			CouponID: sc.CouponID,
			Code:     sc.Code,
			Type:     sc.Type,
			Amount:   amount,
		})
	}
	return settlements
}
