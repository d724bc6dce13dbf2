package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sort"
	"sync"
)

// SubscriberRepository abstracts persistence of the daily digest audience.
type SubscriberRepository interface {
	Add(ctx context.Context, chatID int64) error
	Remove(ctx context.Context, chatID int64) error
	Contains(ctx context.Context, chatID int64) (bool, error)
	Snapshot(ctx context.Context) ([]int64, error)
}

// FileSubscriberRepository stores the subscriber set in a JSON file holding a
// flat array of chat ids. The file is read once at construction and rewritten
// wholesale after every mutation.
type FileSubscriberRepository struct {
	path string
	mu   sync.Mutex
	ids  map[int64]struct{}
}

// NewFileSubscriberRepository loads subscribers from the given JSON file or
// starts empty if it does not exist yet.
func NewFileSubscriberRepository(path string) (*FileSubscriberRepository, error) {
	r := &FileSubscriberRepository{path: path, ids: map[int64]struct{}{}}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileSubscriberRepository) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer file.Close()
	var ids []int64
	if err := json.NewDecoder(file).Decode(&ids); err != nil {
		return err
	}
	for _, id := range ids {
		r.ids[id] = struct{}{}
	}
	return nil
}

func (r *FileSubscriberRepository) saveLocked() error {
	file, err := os.Create(r.path)
	if err != nil {
		return err
	}
	defer file.Close()
	return json.NewEncoder(file).Encode(r.snapshotLocked())
}

func (r *FileSubscriberRepository) snapshotLocked() []int64 {
	ids := make([]int64, 0, len(r.ids))
	for id := range r.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Add inserts a subscriber and persists the set. Adding an existing
// subscriber is a no-op.
func (r *FileSubscriberRepository) Add(ctx context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[chatID]; ok {
		return nil
	}
	r.ids[chatID] = struct{}{}
	return r.saveLocked()
}

// Remove deletes a subscriber and persists the set.
func (r *FileSubscriberRepository) Remove(ctx context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[chatID]; !ok {
		return nil
	}
	delete(r.ids, chatID)
	return r.saveLocked()
}

// Contains reports whether the chat is subscribed.
func (r *FileSubscriberRepository) Contains(ctx context.Context, chatID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[chatID]
	return ok, nil
}

// Snapshot returns the subscriber ids in ascending order.
func (r *FileSubscriberRepository) Snapshot(ctx context.Context) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked(), nil
}
