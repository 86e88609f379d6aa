package payments

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripelib "github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/warmpaws/warmpaws-backend/pkg/db/models"
	"github.com/warmpaws/warmpaws-backend/pkg/enums"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
)

type stubOrderStore struct {
	orders map[uuid.UUID]*models.Order
	// listing stock, keyed by listing id
	stock    map[uuid.UUID]int
	attached map[uuid.UUID]string
	settled  map[uuid.UUID]string
}

func newStubOrderStore() *stubOrderStore {
	return &stubOrderStore{
		orders:   map[uuid.UUID]*models.Order{},
		stock:    map[uuid.UUID]int{},
		attached: map[uuid.UUID]string{},
		settled:  map[uuid.UUID]string{},
	}
}

func (s *stubOrderStore) FindPendingByIDsAndBuyer(_ context.Context, ids []uuid.UUID, buyerID uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	for _, id := range ids {
		if order, ok := s.orders[id]; ok && order.BuyerID == buyerID && order.Status == enums.OrderStatusPending {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *stubOrderStore) AttachPaymentIntent(_ context.Context, ids []uuid.UUID, intentID string) error {
	for _, id := range ids {
		s.attached[id] = intentID
	}
	return nil
}

func (s *stubOrderStore) FindForSettlement(_ *gorm.DB, id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrderStore) SettlePending(_ *gorm.DB, orderID uuid.UUID, paymentRef string) (bool, error) {
	order, ok := s.orders[orderID]
	if !ok || order.Status != enums.OrderStatusPending {
		return false, nil
	}
	order.Status = enums.OrderStatusPaid
	if paymentRef != "" {
		order.PaymentIntentID = paymentRef
	}
	s.settled[orderID] = paymentRef
	return true, nil
}

func (s *stubOrderStore) DecrementQuantity(_ *gorm.DB, listingID uuid.UUID, qty int) (bool, error) {
	if s.stock[listingID] < qty {
		return false, nil
	}
	s.stock[listingID] -= qty
	return true, nil
}

func (s *stubOrderStore) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubIntents struct {
	calls    int
	amount   int64
	currency string
	metadata map[string]string
	err      error
}

func (s *stubIntents) NewIntent(_ context.Context, amountCents int64, currency string, metadata map[string]string) (*stripelib.PaymentIntent, error) {
	s.calls++
	s.amount = amountCents
	s.currency = currency
	s.metadata = metadata
	if s.err != nil {
		return nil, s.err
	}
	return &stripelib.PaymentIntent{ID: "pi_test_123", ClientSecret: "pi_test_123_secret"}, nil
}

func seedPending(store *stubOrderStore, buyerID uuid.UUID, total string, qty, stock int) *models.Order {
	order := &models.Order{
		ID:        uuid.New(),
		BuyerID:   buyerID,
		SellerID:  uuid.New(),
		ListingID: uuid.New(),
		Quantity:  qty,
		Total:     decimal.RequireFromString(total),
		Status:    enums.OrderStatusPending,
	}
	store.orders[order.ID] = order
	store.stock[order.ListingID] = stock
	return order
}

func fixture(t *testing.T) (*Service, *stubOrderStore, *stubIntents) {
	t.Helper()
	store := newStubOrderStore()
	intents := &stubIntents{}
	settler, err := NewSettler(store, store, store)
	require.NoError(t, err)
	svc, err := NewService(store, intents, settler)
	require.NoError(t, err)
	return svc, store, intents
}

func TestCreateIntentHappyPath(t *testing.T) {
	svc, store, intents := fixture(t)
	buyer := uuid.New()
	a := seedPending(store, buyer, "105.00", 1, 1)
	b := seedPending(store, buyer, "52.50", 1, 1)

	intent, err := svc.CreateIntent(context.Background(), buyer, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, intents.calls)
	assert.Equal(t, int64(15750), intents.amount)
	assert.Equal(t, "usd", intents.currency)
	assert.Equal(t, buyer.String(), intents.metadata["userId"])
	assert.Equal(t, "warmpaws", intents.metadata["platform"])
	assert.ElementsMatch(t,
		[]string{a.ID.String(), b.ID.String()},
		strings.Split(intents.metadata["orderIds"], ","))

	assert.Equal(t, "pi_test_123_secret", intent.ClientSecret)
	assert.Equal(t, "pi_test_123", store.attached[a.ID])
	assert.Equal(t, "pi_test_123", store.attached[b.ID])
}

func TestCreateIntentRejectsForeignOrMissingOrders(t *testing.T) {
	svc, store, intents := fixture(t)
	buyer := uuid.New()
	mine := seedPending(store, buyer, "105.00", 1, 1)
	foreign := seedPending(store, uuid.New(), "105.00", 1, 1)

	_, err := svc.CreateIntent(context.Background(), buyer, []uuid.UUID{mine.ID, foreign.ID})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.As(err).Code())
	assert.Contains(t, err.Error(), "Some orders are not found, not yours, or already paid")
	assert.Equal(t, 0, intents.calls, "stripe must not be called")
}

func TestCreateIntentRejectsAlreadyPaidOrders(t *testing.T) {
	svc, store, intents := fixture(t)
	buyer := uuid.New()
	order := seedPending(store, buyer, "105.00", 1, 1)
	store.orders[order.ID].Status = enums.OrderStatusPaid

	_, err := svc.CreateIntent(context.Background(), buyer, []uuid.UUID{order.ID})
	require.Error(t, err)
	assert.Equal(t, 0, intents.calls)
}

func TestCreateIntentRejectsZeroAmount(t *testing.T) {
	svc, store, intents := fixture(t)
	buyer := uuid.New()
	order := seedPending(store, buyer, "0.00", 1, 1)

	_, err := svc.CreateIntent(context.Background(), buyer, []uuid.UUID{order.ID})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.As(err).Code())
	assert.Equal(t, 0, intents.calls)
}

func TestCreateIntentRequiresOrderIDs(t *testing.T) {
	svc, _, intents := fixture(t)

	_, err := svc.CreateIntent(context.Background(), uuid.New(), nil)
	require.Error(t, err)
	assert.Equal(t, 0, intents.calls)
}

func TestCreateIntentWrapsStripeFailure(t *testing.T) {
	svc, store, intents := fixture(t)
	intents.err = assert.AnError
	buyer := uuid.New()
	order := seedPending(store, buyer, "105.00", 1, 1)

	_, err := svc.CreateIntent(context.Background(), buyer, []uuid.UUID{order.ID})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDependency, apperrors.As(err).Code())
}

func TestConfirmSettlesOnceAndDecrements(t *testing.T) {
	svc, store, _ := fixture(t)
	buyer := uuid.New()
	order := seedPending(store, buyer, "105.00", 1, 1)

	res, err := svc.Confirm(context.Background(), buyer, []uuid.UUID{order.ID}, "pi_test_123")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Settled)
	assert.Equal(t, enums.OrderStatusPaid, store.orders[order.ID].Status)
	assert.Equal(t, "pi_test_123", store.orders[order.ID].PaymentIntentID)
	assert.Equal(t, 0, store.stock[order.ListingID])

	// Retry after the first settlement is a harmless no-op.
	res, err = svc.Confirm(context.Background(), buyer, []uuid.UUID{order.ID}, "pi_test_123")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Settled)
	assert.Equal(t, 0, store.stock[order.ListingID], "stock decremented exactly once")
}

func TestConfirmIgnoresForeignOrders(t *testing.T) {
	svc, store, _ := fixture(t)
	foreign := seedPending(store, uuid.New(), "105.00", 1, 1)

	res, err := svc.Confirm(context.Background(), uuid.New(), []uuid.UUID{foreign.ID}, "pi_test_123")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Settled)
	assert.Equal(t, enums.OrderStatusPending, store.orders[foreign.ID].Status)
}
