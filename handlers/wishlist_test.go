package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shakil880/B11-Assignment-12-category-008-server/models"
)

// fakeWishlistStore counts and stores items like a single Mongo collection,
// so sequential calls observe each other's inserts.
type fakeWishlistStore struct {
	items    []models.WishlistItem
	countErr error
}

func (f *fakeWishlistStore) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	email := filter.(bson.M)["userEmail"].(string)
	propertyID := filter.(bson.M)["propertyId"].(string)

	var count int64
	for _, item := range f.items {
		if item.UserEmail == email && item.PropertyID == propertyID {
			count++
		}
	}
	return count, nil
}

func (f *fakeWishlistStore) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	item := document.(models.WishlistItem)
	f.items = append(f.items, item)
	return &mongo.InsertOneResult{InsertedID: item.ID}, nil
}

func TestAddWishlistItemSequentialDuplicate(t *testing.T) {
	store := &fakeWishlistStore{}
	propertyID := primitive.NewObjectID().Hex()

	item, err := addWishlistItem(context.Background(), store, "a@x.com", propertyID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", item.UserEmail)
	assert.Equal(t, propertyID, item.PropertyID)
	assert.Len(t, store.items, 1)

	_, err = addWishlistItem(context.Background(), store, "a@x.com", propertyID)
	assert.ErrorIs(t, err, errAlreadyWishlisted)
	assert.Len(t, store.items, 1, "duplicate call must not insert a second item")
}

func TestAddWishlistItemDifferentUsersSameProperty(t *testing.T) {
	store := &fakeWishlistStore{}
	propertyID := primitive.NewObjectID().Hex()

	_, err := addWishlistItem(context.Background(), store, "a@x.com", propertyID)
	require.NoError(t, err)
	_, err = addWishlistItem(context.Background(), store, "b@x.com", propertyID)
	require.NoError(t, err)

	assert.Len(t, store.items, 2)
}

func TestAddWishlistItemCountError(t *testing.T) {
	store := &fakeWishlistStore{countErr: errors.New("store down")}

	_, err := addWishlistItem(context.Background(), store, "a@x.com", primitive.NewObjectID().Hex())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errAlreadyWishlisted)
	assert.Empty(t, store.items)
}
