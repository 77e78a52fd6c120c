package otp

import (
	"context"
	"sync"
	"time"

	"github.com/JonasLeetTheWay/clashon-go/internal/models"
)

// MemoryStore keeps records in process. Expired records read as missing.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]models.OTPRecord
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.OTPRecord), now: time.Now}
}

func memoryKey(ns Namespace, phone string) string {
	return string(ns) + ":" + phone
}

func (m *MemoryStore) Replace(_ context.Context, ns Namespace, rec models.OTPRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[memoryKey(ns, rec.Phone)] = rec
	return nil
}

func (m *MemoryStore) Get(_ context.Context, ns Namespace, phone string) (*models.OTPRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memoryKey(ns, phone)
	rec, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	if rec.Expired(m.now().UTC()) {
		delete(m.records, key)
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (m *MemoryStore) MarkVerified(_ context.Context, ns Namespace, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memoryKey(ns, phone)
	rec, ok := m.records[key]
	if !ok {
		return ErrNotFound
	}
	rec.Verified = true
	m.records[key] = rec
	return nil
}
