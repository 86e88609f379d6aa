package listings

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/warmpaws/warmpaws-backend/pkg/db"
	"github.com/warmpaws/warmpaws-backend/pkg/db/models"
	"github.com/warmpaws/warmpaws-backend/pkg/enums"
)

var dbSeq atomic.Int64

func testDB(t *testing.T) *db.Client {
	t.Helper()
	dsn := fmt.Sprintf("file:listings_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	for _, stmt := range []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'buyer',
			avatar_url TEXT,
			bio TEXT,
			city TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE listings (
			id TEXT PRIMARY KEY,
			seller_id TEXT NOT NULL,
			name TEXT NOT NULL,
			pet_type TEXT NOT NULL,
			breed TEXT,
			age_months INTEGER DEFAULT 0,
			description TEXT,
			price NUMERIC NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 1,
			status TEXT NOT NULL DEFAULT 'available',
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE listing_photos (
			id TEXT PRIMARY KEY,
			listing_id TEXT NOT NULL,
			url TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME
		)`,
	} {
		require.NoError(t, gdb.Exec(stmt).Error)
	}
	return db.FromGorm(gdb)
}

func seedSeller(t *testing.T, client *db.Client) uuid.UUID {
	t.Helper()
	seller := models.User{
		ID:          uuid.New(),
		Email:       fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		DisplayName: "Test Seller",
		Role:        enums.UserRoleSeller,
	}
	require.NoError(t, client.Gorm().Create(&seller).Error)
	return seller.ID
}

func seedListing(t *testing.T, client *db.Client, sellerID uuid.UUID, qty int, status enums.ListingStatus) *models.Listing {
	t.Helper()
	listing := models.Listing{
		ID:       uuid.New(),
		SellerID: sellerID,
		Name:     "Biscuit",
		PetType:  enums.PetTypeDog,
		Price:    decimal.RequireFromString("100.00"),
		Quantity: qty,
		Status:   status,
	}
	require.NoError(t, client.Gorm().Create(&listing).Error)
	return &listing
}

func TestCreateAndFindByIDWithPhotos(t *testing.T) {
	client := testDB(t)
	repo := NewRepo(client)
	sellerID := seedSeller(t, client)

	listing := &models.Listing{
		ID:       uuid.New(),
		SellerID: sellerID,
		Name:     "Mochi",
		PetType:  enums.PetTypeCat,
		Price:    decimal.RequireFromString("250.00"),
		Quantity: 1,
		Status:   enums.ListingStatusAvailable,
		Photos: []models.ListingPhoto{
			{ID: uuid.New(), URL: "https://cdn.example.com/b.jpg", Position: 1},
			{ID: uuid.New(), URL: "https://cdn.example.com/a.jpg", Position: 0},
		},
	}
	require.NoError(t, repo.Create(context.Background(), listing))

	found, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mochi", found.Name)
	require.Len(t, found.Photos, 2)
	assert.Equal(t, "https://cdn.example.com/a.jpg", found.Photos[0].URL)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := NewRepo(testDB(t))
	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindAvailableExcludesSoldAndRemoved(t *testing.T) {
	client := testDB(t)
	repo := NewRepo(client)
	sellerID := seedSeller(t, client)

	visible := seedListing(t, client, sellerID, 1, enums.ListingStatusAvailable)
	seedListing(t, client, sellerID, 0, enums.ListingStatusSold)
	seedListing(t, client, sellerID, 1, enums.ListingStatusRemoved)

	out, err := repo.FindAvailable(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, visible.ID, out[0].ID)
}

func TestDecrementQuantityHappyPath(t *testing.T) {
	client := testDB(t)
	repo := NewRepo(client)
	listing := seedListing(t, client, seedSeller(t, client), 3, enums.ListingStatusAvailable)

	ok, err := repo.DecrementQuantity(client.Gorm(), listing.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Quantity)
	assert.Equal(t, enums.ListingStatusAvailable, found.Status)
}

func TestDecrementQuantityFlipsSoldAtZero(t *testing.T) {
	client := testDB(t)
	repo := NewRepo(client)
	listing := seedListing(t, client, seedSeller(t, client), 2, enums.ListingStatusAvailable)

	ok, err := repo.DecrementQuantity(client.Gorm(), listing.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.Quantity)
	assert.Equal(t, enums.ListingStatusSold, found.Status)
}

func TestDecrementQuantityRefusesOverdraw(t *testing.T) {
	client := testDB(t)
	repo := NewRepo(client)
	listing := seedListing(t, client, seedSeller(t, client), 1, enums.ListingStatusAvailable)

	ok, err := repo.DecrementQuantity(client.Gorm(), listing.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Quantity)
	assert.Equal(t, enums.ListingStatusAvailable, found.Status)
}

func TestReplacePhotos(t *testing.T) {
	client := testDB(t)
	repo := NewRepo(client)
	listing := seedListing(t, client, seedSeller(t, client), 1, enums.ListingStatusAvailable)

	first := []models.ListingPhoto{{ID: uuid.New(), ListingID: listing.ID, URL: "https://cdn.example.com/old.jpg"}}
	require.NoError(t, repo.ReplacePhotos(context.Background(), listing.ID, first))

	second := []models.ListingPhoto{
		{ID: uuid.New(), ListingID: listing.ID, URL: "https://cdn.example.com/new-0.jpg", Position: 0},
		{ID: uuid.New(), ListingID: listing.ID, URL: "https://cdn.example.com/new-1.jpg", Position: 1},
	}
	require.NoError(t, repo.ReplacePhotos(context.Background(), listing.ID, second))

	found, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	require.Len(t, found.Photos, 2)
	assert.Equal(t, "https://cdn.example.com/new-0.jpg", found.Photos[0].URL)
}
