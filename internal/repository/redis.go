package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/forgo/chapel/internal/model"
)

// redisScanBatch is the number of index entries fetched per round trip
const redisScanBatch = 100

// dateKey marks an encoded timestamp inside a stored JSON document
const dateKey = "$date"

// RedisStore implements DocumentStore on top of Redis.
//
// Key layout, for a store named "church":
//
//	church:collections         set of collection names
//	church:sermon              sorted set of sermon ids scored by insertion time
//	church:sermon:<id>         JSON document
type RedisStore struct {
	client *redis.Client
	name   string
	now    func() time.Time
}

// NewRedisStore creates a new Redis document store using name as key prefix
func NewRedisStore(client *redis.Client, name string) *RedisStore {
	return &RedisStore{
		client: client,
		name:   name,
		now:    time.Now,
	}
}

// Name returns the configured store name
func (s *RedisStore) Name() string {
	return s.name
}

// Ping checks the Redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return classifyRedis(err, ErrStoreRead)
	}
	return nil
}

// Insert stores doc as JSON under a new id and indexes it in its collection
func (s *RedisStore) Insert(ctx context.Context, collection string, doc model.Document) (string, error) {
	if !isIdentifier(collection) {
		return "", fmt.Errorf("%w: invalid collection name %q", ErrStoreWrite, collection)
	}

	id := uuid.NewString()
	stored := copyDocument(doc)
	delete(stored, model.FieldID)

	data, err := encodeRedisDocument(stored)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.docKey(collection, id), data, 0)
	pipe.ZAdd(ctx, s.indexKey(collection), &redis.Z{
		Score:  float64(s.now().UnixMicro()),
		Member: id,
	})
	pipe.SAdd(ctx, s.collectionsKey(), collection)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", classifyRedis(err, ErrStoreWrite)
	}

	return id, nil
}

// Query walks the collection index in insertion order, returning at most limit matching documents
func (s *RedisStore) Query(ctx context.Context, collection string, filter model.Filter, limit int) ([]model.Document, error) {
	if err := checkQuery(collection, filter, limit); err != nil {
		return nil, err
	}

	docs := make([]model.Document, 0)
	for start := int64(0); len(docs) < limit; start += redisScanBatch {
		ids, err := s.client.ZRange(ctx, s.indexKey(collection), start, start+redisScanBatch-1).Result()
		if err != nil {
			return nil, classifyRedis(err, ErrStoreRead)
		}
		if len(ids) == 0 {
			break
		}

		pipe := s.client.Pipeline()
		cmds := make([]*redis.StringCmd, len(ids))
		for i, id := range ids {
			cmds[i] = pipe.Get(ctx, s.docKey(collection, id))
		}
		if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
			return nil, classifyRedis(err, ErrStoreRead)
		}

		for i, cmd := range cmds {
			data, err := cmd.Bytes()
			if err != nil {
				if err == redis.Nil {
					continue
				}
				return nil, classifyRedis(err, ErrStoreRead)
			}
			doc, err := decodeRedisDocument(data)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
			}
			if !matchesFilter(doc, filter) {
				continue
			}
			doc[model.FieldID] = ids[i]
			docs = append(docs, doc)
			if len(docs) == limit {
				break
			}
		}

		if len(ids) < redisScanBatch {
			break
		}
	}

	return docs, nil
}

// Collections lists every collection that has received an insert
func (s *RedisStore) Collections(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.collectionsKey()).Result()
	if err != nil {
		return nil, classifyRedis(err, ErrStoreRead)
	}
	sort.Strings(names)
	return names, nil
}

func (s *RedisStore) collectionsKey() string {
	return s.name + ":collections"
}

func (s *RedisStore) indexKey(collection string) string {
	return s.name + ":" + collection
}

func (s *RedisStore) docKey(collection, id string) string {
	return s.name + ":" + collection + ":" + id
}

// classifyRedis maps connection failures to ErrStoreUnavailable
func classifyRedis(err error, fallback error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%w: %v", fallback, err)
}

// encodeRedisDocument marshals doc, wrapping timestamps as {"$date": "..."}
func encodeRedisDocument(doc model.Document) ([]byte, error) {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		switch t := v.(type) {
		case time.Time:
			out[k] = map[string]string{dateKey: t.UTC().Format(time.RFC3339Nano)}
		case *time.Time:
			if t != nil {
				out[k] = map[string]string{dateKey: t.UTC().Format(time.RFC3339Nano)}
			}
		default:
			out[k] = v
		}
	}
	return json.Marshal(out)
}

// decodeRedisDocument reverses encodeRedisDocument
func decodeRedisDocument(data []byte) (model.Document, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	doc := make(model.Document, len(raw))
	for k, v := range raw {
		if m, ok := v.(map[string]interface{}); ok && len(m) == 1 {
			if s, ok := m[dateKey].(string); ok {
				t, err := time.Parse(time.RFC3339Nano, s)
				if err != nil {
					return nil, fmt.Errorf("field %s: %w", k, err)
				}
				doc[k] = t
				continue
			}
		}
		doc[k] = v
	}
	return doc, nil
}
