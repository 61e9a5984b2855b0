package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/shakil880/B11-Assignment-12-category-008-server/models"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, models.PropertyVerified, initialStatus(models.RoleAdmin))
	assert.Equal(t, models.PropertyPending, initialStatus(models.RoleAgent))
	assert.Equal(t, models.PropertyPending, initialStatus(models.RoleUser))
	assert.Equal(t, models.PropertyPending, initialStatus(""))
}

func TestBuildPropertyQuery(t *testing.T) {
	t.Run("empty params", func(t *testing.T) {
		assert.Equal(t, bson.M{}, buildPropertyQuery("", "", "", ""))
	})

	t.Run("search matches title location description", func(t *testing.T) {
		query := buildPropertyQuery("lake", "", "", "")
		regex := bson.M{"$regex": "lake", "$options": "i"}
		assert.Equal(t, []bson.M{
			{"title": regex},
			{"location": regex},
			{"description": regex},
		}, query["$or"])
	})

	t.Run("status filter", func(t *testing.T) {
		query := buildPropertyQuery("", "verified", "", "")
		assert.Equal(t, "verified", query["status"])
	})

	t.Run("price range", func(t *testing.T) {
		query := buildPropertyQuery("", "", "300000", "400000")
		assert.Equal(t, bson.M{"$gte": 300000.0, "$lte": 400000.0}, query["price"])
	})

	t.Run("min price only", func(t *testing.T) {
		query := buildPropertyQuery("", "", "250000", "")
		assert.Equal(t, bson.M{"$gte": 250000.0}, query["price"])
	})

	t.Run("unparsable price ignored", func(t *testing.T) {
		query := buildPropertyQuery("", "", "cheap", "")
		_, ok := query["price"]
		assert.False(t, ok)
	})
}

func TestSortOption(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, sortOption("price_asc"))
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, sortOption("price_desc"))
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, sortOption(""))
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, sortOption("newest"))
}
