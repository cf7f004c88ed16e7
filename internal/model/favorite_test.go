package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteSet_Dedupe(t *testing.T) {
	set := FavoriteSet{{ID: "a", ArtName: "first"}, {ID: "b"}, {ID: "a", ArtName: "second"}}

	got, dropped := set.Dedupe()
	assert.Equal(t, 1, dropped)
	assert.Equal(t, []string{"a", "b"}, got.IDs())
	assert.Equal(t, "first", got[0].ArtName)
}

func TestFavoriteSet_Without(t *testing.T) {
	set := FavoriteSet{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got, removed := set.Without(map[string]struct{}{"a": {}, "c": {}, "zzz": {}})
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"b"}, got.IDs())
	assert.Len(t, set, 3, "input is not modified")
}

func TestFavoriteEntry_JSONShape(t *testing.T) {
	// The blob format is shared with earlier releases of the app.
	blob := `[{"id":"1","artName":"Mona","price":12.5,"limitedTimeDeal":0.2,"image":"u"},{"id":"2","artName":"Bar","price":3,"image":"v"}]`

	var set FavoriteSet
	require.NoError(t, json.Unmarshal([]byte(blob), &set))
	require.Len(t, set, 2)

	assert.True(t, set[0].Discount.Valid)
	assert.Equal(t, "10", set[0].DiscountedPrice().String())
	assert.False(t, set[1].Discount.Valid)
	assert.True(t, set.Contains("2"))
	assert.Equal(t, -1, set.Index("3"))
}
