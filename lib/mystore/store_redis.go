package mystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

var (
	redisClientsLock sync.Mutex
	redisClients     = map[string]*redis.Client{}
)

// Stores share one client per address so a transaction can span stores.
func sharedRedisClient(addr string) *redis.Client {
	redisClientsLock.Lock()
	defer redisClientsLock.Unlock()

	client, found := redisClients[addr]
	if !found {
		client = redis.NewClient(&redis.Options{Addr: addr})
		redisClients[addr] = client
	}
	return client
}

type redisTransaction struct {
	pipe redis.Pipeliner
}

type redisStore[T any] struct {
	client   *redis.Client
	kind     string
	prefix   string
	lock     *sync.Mutex
	indexKey string
}

var redisTransactionLocks sync.Map

func newRedisStore[T any](c context.Context, client *redis.Client, prefix string) (*redisStore[T], func(), error) {
	err := client.Ping(c).Err()
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting to redis at %s: %s", client.Options().Addr, err)
	}

	kind := kindOf[T]()
	lock, _ := redisTransactionLocks.LoadOrStore(client, &sync.Mutex{})

	return &redisStore[T]{
		client:   client,
		kind:     kind,
		prefix:   prefix,
		lock:     lock.(*sync.Mutex),
		indexKey: prefix + kind + ":_index",
	}, func() {}, nil
}

func (s *redisStore[T]) key(uid string) string {
	return s.prefix + s.kind + ":" + uid
}

func redisTransactionFromContext(c context.Context) *redisTransaction {
	tx, ok := c.Value(ctxTransactionKey{}).(*redisTransaction)
	if !ok {
		return nil
	}
	return tx
}

// RunInTransaction serializes transactions within this process and buffers all writes
// in a MULTI/EXEC pipeline that is only executed when f succeeds.
func (s *redisStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if redisTransactionFromContext(c) != nil {
		return f(c)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	tx := &redisTransaction{pipe: s.client.TxPipeline()}
	err := f(context.WithValue(c, ctxTransactionKey{}, tx))
	if err != nil {
		tx.pipe.Discard()
		return err
	}

	_, err = tx.pipe.Exec(c)
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("error committing redis transaction: %s", err)
	}
	return nil
}

func (s *redisStore[T]) Put(c context.Context, uid string, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshalling entity %s with uid %s: %s", s.kind, uid, err)
	}

	var cmdable redis.Cmdable = s.client
	if tx := redisTransactionFromContext(c); tx != nil {
		cmdable = tx.pipe
	}

	err = cmdable.Set(c, s.key(uid), payload, 0).Err()
	if err != nil {
		return fmt.Errorf("error storing entity %s with uid %s: %s", s.kind, uid, err)
	}
	err = cmdable.SAdd(c, s.indexKey, uid).Err()
	if err != nil {
		return fmt.Errorf("error indexing entity %s with uid %s: %s", s.kind, uid, err)
	}

	return nil
}

func (s *redisStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	var value T

	payload, err := s.client.Get(c, s.key(uid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return value, false, nil
		}
		return value, false, fmt.Errorf("error fetching entity %s with uid %s: %s", s.kind, uid, err)
	}

	err = json.Unmarshal(payload, &value)
	if err != nil {
		return value, false, fmt.Errorf("error unmarshalling entity %s with uid %s: %s", s.kind, uid, err)
	}

	return value, true, nil
}

func (s *redisStore[T]) Delete(c context.Context, uid string) error {
	var cmdable redis.Cmdable = s.client
	if tx := redisTransactionFromContext(c); tx != nil {
		cmdable = tx.pipe
	}

	err := cmdable.Del(c, s.key(uid)).Err()
	if err != nil {
		return fmt.Errorf("error deleting entity %s with uid %s: %s", s.kind, uid, err)
	}
	err = cmdable.SRem(c, s.indexKey, uid).Err()
	if err != nil {
		return fmt.Errorf("error unindexing entity %s with uid %s: %s", s.kind, uid, err)
	}

	return nil
}

func (s *redisStore[T]) List(c context.Context) ([]T, error) {
	uids, err := s.client.SMembers(c, s.indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("error listing entities %s: %s", s.kind, err)
	}

	result := make([]T, 0, len(uids))
	for _, uid := range uids {
		value, found, err := s.Get(c, uid)
		if err != nil {
			return nil, err
		}
		if found {
			result = append(result, value)
		}
	}

	return result, nil
}

func (s *redisStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	all, err := s.List(c)
	if err != nil {
		return nil, err
	}

	return applyQuery(all, filters, orderByField)
}
