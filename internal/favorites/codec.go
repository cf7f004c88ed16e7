package favorites

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/model"
)

// encode serializes the set as a JSON array in insertion order.
func encode(set model.FavoriteSet) (string, error) {
	if set == nil {
		set = model.FavoriteSet{}
	}
	data, err := json.Marshal(set)
	if err != nil {
		return "", fmt.Errorf("failed to encode favorites: %w", err)
	}
	return string(data), nil
}

// decode parses a persisted blob. A JSON null decodes to the empty set.
// Duplicate identifiers left by an older writer are collapsed to the first
// occurrence.
func decode(blob string) (model.FavoriteSet, error) {
	var set model.FavoriteSet
	if err := json.Unmarshal([]byte(blob), &set); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}
	if set == nil {
		return model.FavoriteSet{}, nil
	}

	deduped, dropped := set.Dedupe()
	if dropped > 0 {
		common.LogWarn("Dropped duplicate favorites from stored blob", common.Fields{
			"dropped": dropped,
		})
	}
	return deduped, nil
}
