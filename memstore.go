package cipherfeed

import (
	"context"
	"errors"
	"sync"
)

// ErrPostNotFound is returned by ContentStore.Get for an unknown post.
var ErrPostNotFound = errors.New("cipherfeed: post not found")

// MemoryKeyRegistry is an in-process KeyRegistry. Handy for tests and
// single-process demos; real deployments back the registry with their
// user directory.
type MemoryKeyRegistry struct {
	mu   sync.RWMutex
	keys map[string]PublicKeys
}

// NewMemoryKeyRegistry returns an empty in-process registry.
func NewMemoryKeyRegistry() *MemoryKeyRegistry {
	return &MemoryKeyRegistry{keys: make(map[string]PublicKeys)}
}

func (r *MemoryKeyRegistry) Publish(ctx context.Context, userID string, keys PublicKeys) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[userID] = keys
	return nil
}

func (r *MemoryKeyRegistry) Lookup(ctx context.Context, userID string) (PublicKeys, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys, ok := r.keys[userID]
	if !ok {
		return PublicKeys{}, ErrUnknownRecipient
	}
	return keys, nil
}

// MemoryContentStore is an in-process ContentStore with fan-out to
// subscribers. Posts are held in append order. Subscriber channels are
// buffered; a subscriber that falls far enough behind misses posts.
type MemoryContentStore struct {
	mu    sync.RWMutex
	posts []*EncryptedPost
	byID  map[string]*EncryptedPost
	subs  map[chan *EncryptedPost]struct{}
}

// NewMemoryContentStore returns an empty in-process store.
func NewMemoryContentStore() *MemoryContentStore {
	return &MemoryContentStore{
		byID: make(map[string]*EncryptedPost),
		subs: make(map[chan *EncryptedPost]struct{}),
	}
}

func (s *MemoryContentStore) Append(ctx context.Context, post *EncryptedPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, post)
	s.byID[post.ID] = post
	for ch := range s.subs {
		// Slow subscribers lose posts rather than blocking the writer.
		select {
		case ch <- post:
		default:
		}
	}
	return nil
}

func (s *MemoryContentStore) Get(ctx context.Context, postID string) (*EncryptedPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.byID[postID]
	if !ok {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *MemoryContentStore) List(ctx context.Context) ([]*EncryptedPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*EncryptedPost, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *MemoryContentStore) Subscribe(ctx context.Context) (<-chan *EncryptedPost, error) {
	ch := make(chan *EncryptedPost, 16)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}
