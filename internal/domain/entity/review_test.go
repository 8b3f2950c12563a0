package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewAuthorProjection(t *testing.T) {
	author := &User{
		ID:    uuid.New(),
		Name:  "Alice",
		Email: "alice@example.com",
	}

	projection := author.AsReviewAuthor()
	assert.Equal(t, "Alice", projection.Name)
	assert.Equal(t, author.Gravatar(), projection.Gravatar)
}

func TestStorePayloadHidesReviewAuthorEmail(t *testing.T) {
	author := &User{
		ID:    uuid.New(),
		Name:  "Alice",
		Email: "alice@example.com",
	}

	store := &Store{
		ID:   uuid.New(),
		Name: "Mission Chinese Food",
		Slug: "mission-chinese-food",
		Reviews: []*Review{{
			ID:        uuid.New(),
			AuthorID:  author.ID,
			Text:      "Great pierogi",
			Rating:    5,
			CreatedAt: time.Now(),
			Author:    author.AsReviewAuthor(),
		}},
	}

	payload, err := json.Marshal(store)
	require.NoError(t, err)

	body := string(payload)
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "gravatar.com/avatar/")
	assert.NotContains(t, body, "alice@example.com")
	assert.NotContains(t, body, "hearts")
}

func TestRatingValid(t *testing.T) {
	for rating, want := range map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, -1: false} {
		review := &Review{Rating: rating}
		assert.Equal(t, want, review.RatingValid(), "rating %d", rating)
	}
}
