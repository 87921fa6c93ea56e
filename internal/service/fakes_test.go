package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/coaching-conflict-api/internal/models"
	appErrors "github.com/noah-isme/coaching-conflict-api/pkg/errors"
)

func strPtr(s string) *string { return &s }

type fakeCartRepo struct {
	items   map[string][]models.CartItem
	listErr error
	lockErr error
	nextID  int

	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	locked   int
	released int
}

func (f *fakeCartRepo) LockStudent(_ context.Context, studentID string) (func() error, error) {
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	f.mu.Lock()
	if f.locks == nil {
		f.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := f.locks[studentID]
	if !ok {
		lock = &sync.Mutex{}
		f.locks[studentID] = lock
	}
	f.mu.Unlock()

	lock.Lock()
	f.locked++
	return func() error {
		f.released++
		lock.Unlock()
		return nil
	}, nil
}

func (f *fakeCartRepo) ListByStudent(_ context.Context, studentID string) ([]models.CartItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.CartItem(nil), f.items[studentID]...), nil
}

func (f *fakeCartRepo) FindByID(_ context.Context, studentID, itemID string) (*models.CartItem, error) {
	for _, item := range f.items[studentID] {
		if item.ID == itemID {
			copied := item
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCartRepo) CountByStudent(_ context.Context, studentID string) (int, error) {
	return len(f.items[studentID]), nil
}

func (f *fakeCartRepo) Create(_ context.Context, item *models.CartItem) error {
	if f.items == nil {
		f.items = make(map[string][]models.CartItem)
	}
	f.nextID++
	item.ID = "new-" + string(rune('0'+f.nextID))
	f.items[item.StudentID] = append(f.items[item.StudentID], *item)
	return nil
}

func (f *fakeCartRepo) Delete(_ context.Context, studentID, itemID string) (bool, error) {
	items := f.items[studentID]
	for i, item := range items {
		if item.ID == itemID {
			f.items[studentID] = append(items[:i], items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakePassRepo struct {
	passes map[string][]models.Pass
	err    error
}

func (f *fakePassRepo) ListByStudent(_ context.Context, studentID string) ([]models.Pass, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.passes[studentID], nil
}

type fakeBatchRepo struct {
	batches map[string]models.Batch
	calls   int
}

func (f *fakeBatchRepo) FindByID(_ context.Context, id string) (*models.Batch, error) {
	f.calls++
	batch, ok := f.batches[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &batch, nil
}

type stubCacheRepo struct {
	store   map[string][]byte
	deleted []string
	getErr  error
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if s.getErr != nil {
		return s.getErr
	}
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range s.store {
		if key == pattern || (prefix != pattern && strings.HasPrefix(key, prefix)) {
			delete(s.store, key)
			s.deleted = append(s.deleted, key)
		}
	}
	return nil
}

var errBoom = errors.New("boom")

func eveningPhysics() models.Batch {
	return models.Batch{
		ID:              "b-phy",
		Name:            "Evening",
		BusinessID:      "biz-1",
		BusinessName:    "Apex Academy",
		SubjectID:       strPtr("phy"),
		SubjectName:     strPtr("Physics"),
		SchedulePattern: "mwf",
		StartTime:       "16:00",
		EndTime:         "18:00",
	}
}

func mathsCartItem(studentID string) models.CartItem {
	return models.CartItem{
		ID:           "c-math",
		StudentID:    studentID,
		Vertical:     models.VerticalCoaching,
		BusinessID:   "biz-2",
		BusinessName: "Zenith Tutors",
		SubjectID:    strPtr("math"),
		SubjectName:  strPtr("Maths"),
		BatchID:      strPtr("b-math"),
		BatchName:    strPtr("Late"),
		ScheduleDays: []string{"wed"},
		TimeSlot:     "17:00-19:00",
	}
}
