package mystore

import (
	"context"
	"os"
)

type ctxTransactionKey struct{}

// Filter follows the datastore conventions: Compare is one of "=", "!=", "<", "<=", ">", ">=".
type Filter struct {
	Field   string
	Compare string
	Value   any
}

//go:generate mockgen -source=api.go -package mystore -destination store_mock.go Store
type Store[T any] interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	Delete(c context.Context, uid string) error
	List(c context.Context) ([]T, error)
	// Query returns the items matching all filters; orderByField may be prefixed with "-" for descending order.
	Query(c context.Context, filters []Filter, orderByField string) ([]T, error)
}

// New selects the backend from the environment: datastore on gcloud, redis when REDIS_ADDR is set,
// in-memory otherwise.
func New[T any](c context.Context) (Store[T], func(), error) {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newGcloudStore[T](c)
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return newRedisStore[T](c, sharedRedisClient(addr), os.Getenv("REDIS_KEY_PREFIX"))
	}

	return NewInMemoryStore[T](c)
}
