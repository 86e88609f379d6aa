package payments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warmpaws/warmpaws-backend/pkg/enums"
)

func TestSettleOrderWinsOnlyOnce(t *testing.T) {
	store := newStubOrderStore()
	settler, err := NewSettler(store, store, store)
	require.NoError(t, err)

	order := seedPending(store, uuid.New(), "105.00", 2, 5)

	settled, err := settler.SettleOrder(context.Background(), order.ID, "pi_settle_1")
	require.NoError(t, err)
	assert.True(t, settled)
	assert.Equal(t, "pi_settle_1", store.orders[order.ID].PaymentIntentID)
	assert.Equal(t, 3, store.stock[order.ListingID])

	settled, err = settler.SettleOrder(context.Background(), order.ID, "pi_settle_1")
	require.NoError(t, err)
	assert.False(t, settled)
	assert.Equal(t, 3, store.stock[order.ListingID], "no double decrement")
}

func TestSettleOrderOutOfStockStillSettles(t *testing.T) {
	store := newStubOrderStore()
	settler, err := NewSettler(store, store, store)
	require.NoError(t, err)

	order := seedPending(store, uuid.New(), "105.00", 3, 1)

	settled, err := settler.SettleOrder(context.Background(), order.ID, "pi_settle_2")
	require.NoError(t, err)
	assert.True(t, settled, "payment already happened, order stays paid")
	assert.Equal(t, enums.OrderStatusPaid, store.orders[order.ID].Status)
	assert.Equal(t, 1, store.stock[order.ListingID], "stock untouched on shortfall")
}

func TestSettleOrdersContinuesPastMissingOrder(t *testing.T) {
	store := newStubOrderStore()
	settler, err := NewSettler(store, store, store)
	require.NoError(t, err)

	good := seedPending(store, uuid.New(), "105.00", 1, 1)
	missing := uuid.New()

	settled, _ := settler.SettleOrders(context.Background(), []uuid.UUID{missing, good.ID}, "pi_settle_3")
	assert.Equal(t, 1, settled)
	assert.Equal(t, enums.OrderStatusPaid, store.orders[good.ID].Status)
}
