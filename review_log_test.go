package cadence

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewLogJSON(t *testing.T) {
	rl := ReviewLog{
		CardID:        "7",
		Rating:        Hard,
		State:         Review,
		Due:           t0.Add(4 * day),
		Stability:     4.25,
		Difficulty:    6.5,
		ElapsedDays:   3,
		ScheduledDays: 4,
		ReviewedAt:    t0,
	}

	data, err := json.Marshal(rl)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rating":"Hard"`)
	assert.Contains(t, string(data), `"state":"Review"`)

	var got ReviewLog
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, rl, got)
}

func TestReviewLogNumericEnums(t *testing.T) {
	// Older exports store rating and state as numbers.
	data := `{"card_id":"1","rating":3,"state":2,"reviewed_at":"2025-06-15T10:00:00Z"}`
	var got ReviewLog
	require.NoError(t, json.Unmarshal([]byte(data), &got))
	assert.Equal(t, Good, got.Rating)
	assert.Equal(t, Review, got.State)
	assert.Equal(t, t0, got.ReviewedAt)
}
