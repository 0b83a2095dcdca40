package usecase

import (
	"context"
	"strconv"

	"github.com/polkiloo/cleanorder/internal/domain/repository"
)

// boolPreference reads a flag stored as "true"/"false". Missing or malformed
// values read as false.
func boolPreference(ctx context.Context, prefs repository.PreferenceRepository, key string) (bool, error) {
	raw, ok, err := prefs.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, nil
	}
	return v, nil
}

func setBoolPreference(ctx context.Context, prefs repository.PreferenceRepository, key string, v bool) error {
	return prefs.Set(ctx, key, strconv.FormatBool(v))
}
