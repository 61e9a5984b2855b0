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

// fakeOfferStore applies updates to an in-memory offer set the way a single
// Mongo collection would.
type fakeOfferStore struct {
	offers map[primitive.ObjectID]*models.Offer

	updateOneErr  error
	updateManyRan bool
}

func (f *fakeOfferStore) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	if f.updateOneErr != nil {
		return nil, f.updateOneErr
	}
	id := filter.(bson.M)["_id"].(primitive.ObjectID)
	status := update.(bson.M)["$set"].(bson.M)["status"].(string)
	if offer, ok := f.offers[id]; ok {
		offer.Status = status
		return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return &mongo.UpdateResult{}, nil
}

func (f *fakeOfferStore) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f.updateManyRan = true
	propertyID := filter.(bson.M)["propertyId"].(string)
	excluded := filter.(bson.M)["_id"].(bson.M)["$ne"].(primitive.ObjectID)
	status := update.(bson.M)["$set"].(bson.M)["status"].(string)

	var modified int64
	for id, offer := range f.offers {
		if offer.PropertyID == propertyID && id != excluded {
			offer.Status = status
			modified++
		}
	}
	return &mongo.UpdateResult{MatchedCount: modified, ModifiedCount: modified}, nil
}

func TestAcceptOfferCascadeSingleWinner(t *testing.T) {
	propertyID := primitive.NewObjectID().Hex()
	winner := primitive.NewObjectID()
	siblingA := primitive.NewObjectID()
	siblingB := primitive.NewObjectID()
	other := primitive.NewObjectID()

	store := &fakeOfferStore{offers: map[primitive.ObjectID]*models.Offer{
		winner:   {ID: winner, PropertyID: propertyID, Status: models.OfferPending},
		siblingA: {ID: siblingA, PropertyID: propertyID, Status: models.OfferPending},
		siblingB: {ID: siblingB, PropertyID: propertyID, Status: models.OfferAccepted},
		other:    {ID: other, PropertyID: primitive.NewObjectID().Hex(), Status: models.OfferPending},
	}}

	require.NoError(t, acceptOfferCascade(context.Background(), store, winner, propertyID))

	assert.Equal(t, models.OfferAccepted, store.offers[winner].Status)
	assert.Equal(t, models.OfferRejected, store.offers[siblingA].Status)
	assert.Equal(t, models.OfferRejected, store.offers[siblingB].Status)
	assert.Equal(t, models.OfferPending, store.offers[other].Status, "offers on other properties are untouched")

	accepted := 0
	for _, offer := range store.offers {
		if offer.PropertyID == propertyID && offer.Status == models.OfferAccepted {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}

func TestAcceptOfferCascadeStopsOnFirstWriteError(t *testing.T) {
	winner := primitive.NewObjectID()
	store := &fakeOfferStore{
		offers:       map[primitive.ObjectID]*models.Offer{},
		updateOneErr: errors.New("write failed"),
	}

	err := acceptOfferCascade(context.Background(), store, winner, primitive.NewObjectID().Hex())
	assert.Error(t, err)
	assert.False(t, store.updateManyRan, "sibling rejection must not run when the accept write fails")
}
