package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shakil880/B11-Assignment-12-category-008-server/models"
)

func TestDecodeReviewsEmptyCursor(t *testing.T) {
	cursor, err := mongo.NewCursorFromDocuments([]interface{}{}, nil, nil)
	require.NoError(t, err)

	reviews := decodeReviews(cursor)

	require.NotNil(t, reviews)
	assert.Empty(t, reviews)

	// Empty result sets must serialize as [], not null.
	data, err := json.Marshal(reviews)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecodeReviews(t *testing.T) {
	cursor, err := mongo.NewCursorFromDocuments([]interface{}{
		models.Review{PropertyID: "64a7f0c2e4b0a1b2c3d4e5f6", Rating: 4, Comment: "quiet street"},
		models.Review{PropertyID: "64a7f0c2e4b0a1b2c3d4e5f6", Rating: 2, Comment: "leaky roof"},
	}, nil, nil)
	require.NoError(t, err)

	reviews := decodeReviews(cursor)

	require.Len(t, reviews, 2)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, "leaky roof", reviews[1].Comment)
}
