package kvstore

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/majesty-shop/internal/domain/repository"
)

// Storage keys, shared with the browser build of the shop.
const (
	KeyCart        = "carrito"
	KeyUsers       = "majestyUsers"
	KeyCurrentUser = "currentUser"
)

func setJSON(ctx context.Context, kv repository.KeyValueStore, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, string(b))
}

// getJSON decodes key into dest. A missing key reports false; so does a value
// that does not parse, which is logged and otherwise treated as no data.
// Only store failures are returned as errors.
func getJSON[T any](ctx context.Context, kv repository.KeyValueStore, logger *logrus.Logger, key string, dest *T) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		if logger != nil {
			logger.WithError(err).WithField("key", key).Warn("discarding unparseable stored value")
		}
		return false, nil
	}
	*dest = v
	return true, nil
}
