// Package memory keeps every collection in process memory. It backs the
// `memory` database driver used for local runs and the service tests.
package memory

import (
	"context"
	"fitcoach/coaching-api/internal/repository"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// store is a mutex-guarded map of documents keyed by ObjectID.
// Documents are stored and returned by value.
type store[T any] struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]T
	id   func(*T) *primitive.ObjectID
}

func newStore[T any](id func(*T) *primitive.ObjectID) *store[T] {
	return &store[T]{docs: make(map[primitive.ObjectID]T), id: id}
}

func (s *store[T]) insert(_ context.Context, doc *T, unique func(existing *T) bool) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if unique != nil {
		for _, existing := range s.docs {
			if unique(&existing) {
				return primitive.NilObjectID, repository.ErrDuplicate
			}
		}
	}
	id := primitive.NewObjectID()
	*s.id(doc) = id
	s.docs[id] = *doc
	return id, nil
}

func (s *store[T]) get(_ context.Context, id primitive.ObjectID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &doc, nil
}

func (s *store[T]) exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[id]
	return ok, nil
}

// find returns the documents accepted by match (all when match is nil),
// ordered by less. The result is never nil.
func (s *store[T]) find(_ context.Context, match func(*T) bool, less func(a, b *T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := []T{}
	for _, doc := range s.docs {
		if match == nil || match(&doc) {
			docs = append(docs, doc)
		}
	}
	if less != nil {
		sort.SliceStable(docs, func(i, j int) bool { return less(&docs[i], &docs[j]) })
	}
	return docs
}

func (s *store[T]) findOne(ctx context.Context, match func(*T) bool) (*T, error) {
	docs := s.find(ctx, match, nil)
	if len(docs) == 0 {
		return nil, repository.ErrNotFound
	}
	return &docs[0], nil
}

// update applies mutate to the stored document under the write lock.
func (s *store[T]) update(_ context.Context, id primitive.ObjectID, mutate func(*T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	mutate(&doc)
	s.docs[id] = doc
	return nil
}

func (s *store[T]) delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}
