package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"medsumm/internal/repository"
)

type entry struct {
	key     string
	text    string
	written time.Time
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// RecordMemory is a process-local implementation of repository.RecordStore.
// Writes to one patient are serialized; different patients proceed in parallel.
// When full, the least recently written record is evicted.
type RecordMemory struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front is least recently written
	locks   map[string]*keyLock

	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// NewRecordMemory creates a store holding at most maxEntries records
// (non-positive means unbounded). A positive ttl expires records that long
// after their last write.
func NewRecordMemory(maxEntries int, ttl time.Duration) *RecordMemory {
	return &RecordMemory{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		locks:      make(map[string]*keyLock),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

var _ repository.RecordStore = (*RecordMemory)(nil)

// Get returns the record text for patientID.
func (s *RecordMemory) Get(_ context.Context, patientID string) (string, bool, error) {
	if patientID == "" {
		return "", false, repository.ErrPatientIDRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.getLocked(patientID)
	return text, ok, nil
}

// Put stores text for patientID, evicting the oldest record if needed.
func (s *RecordMemory) Put(_ context.Context, patientID, text string) error {
	if patientID == "" {
		return repository.ErrPatientIDRequired
	}
	unlock := s.lockKey(patientID)
	defer unlock()

	s.mu.Lock()
	s.setLocked(patientID, text)
	s.mu.Unlock()
	return nil
}

// Delete removes the record for patientID.
func (s *RecordMemory) Delete(_ context.Context, patientID string) error {
	if patientID == "" {
		return repository.ErrPatientIDRequired
	}
	unlock := s.lockKey(patientID)
	defer unlock()

	s.mu.Lock()
	s.removeLocked(patientID)
	s.mu.Unlock()
	return nil
}

// Update runs fn under the patient's lock. fn must not call back into the
// store for the same patient.
func (s *RecordMemory) Update(ctx context.Context, patientID string, fn repository.UpdateFunc) (string, error) {
	if patientID == "" {
		return "", repository.ErrPatientIDRequired
	}
	unlock := s.lockKey(patientID)
	defer unlock()

	s.mu.Lock()
	current, ok := s.getLocked(patientID)
	s.mu.Unlock()

	next, err := fn(current, ok)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.setLocked(patientID, next)
	s.mu.Unlock()
	return next, nil
}

// Len returns the number of live records.
func (s *RecordMemory) Len(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked()
	return len(s.entries), nil
}

func (s *RecordMemory) getLocked(key string) (string, bool) {
	el, ok := s.entries[key]
	if !ok {
		return "", false
	}
	e := el.Value.(*entry)
	if s.expired(e) {
		s.order.Remove(el)
		delete(s.entries, key)
		return "", false
	}
	return e.text, true
}

func (s *RecordMemory) setLocked(key, text string) {
	now := s.now()
	if el, ok := s.entries[key]; ok {
		e := el.Value.(*entry)
		e.text = text
		e.written = now
		s.order.MoveToBack(el)
		return
	}
	if s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.purgeExpiredLocked()
		for len(s.entries) >= s.maxEntries {
			oldest := s.order.Front()
			s.order.Remove(oldest)
			delete(s.entries, oldest.Value.(*entry).key)
		}
	}
	s.entries[key] = s.order.PushBack(&entry{key: key, text: text, written: now})
}

func (s *RecordMemory) removeLocked(key string) {
	if el, ok := s.entries[key]; ok {
		s.order.Remove(el)
		delete(s.entries, key)
	}
}

func (s *RecordMemory) purgeExpiredLocked() {
	if s.ttl <= 0 {
		return
	}
	for el := s.order.Front(); el != nil; {
		next := el.Next()
		e := el.Value.(*entry)
		if s.expired(e) {
			s.order.Remove(el)
			delete(s.entries, e.key)
		}
		el = next
	}
}

func (s *RecordMemory) expired(e *entry) bool {
	return s.ttl > 0 && s.now().Sub(e.written) >= s.ttl
}

// lockKey acquires the per-patient mutex and returns its release func.
func (s *RecordMemory) lockKey(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}
}
