package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
)

// MemoryStore implements Store with in-memory storage. Suitable for local
// development and tests; results do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	analyses map[string]*Analysis
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{analyses: make(map[string]*Analysis)}
}

func (m *MemoryStore) CreateAnalysis(_ context.Context, a *Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	m.analyses[a.ID] = a
	return nil
}

func (m *MemoryStore) GetAnalysis(_ context.Context, id string) (*Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.analyses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (m *MemoryStore) ListAnalyses(_ context.Context) ([]*Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Analysis, 0, len(m.analyses))
	for _, a := range m.analyses {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) ListMemberships(ctx context.Context) ([]domain.MembershipRecord, error) {
	analyses, err := m.ListAnalyses(ctx)
	if err != nil {
		return nil, err
	}
	var records []domain.MembershipRecord
	for _, a := range analyses {
		records = append(records, a.Memberships...)
	}
	return records, nil
}
