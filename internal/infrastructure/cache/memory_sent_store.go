// Package cache guarda los ids de órdenes ya notificadas para no avisar dos veces.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type sentEntry struct {
	key       string
	expiresAt time.Time
}

// MemorySentStore conjunto acotado en memoria: cada id expira tras ttl y, si
// se supera la capacidad, se descartan los más antiguos.
type MemorySentStore struct {
	mu       sync.Mutex
	entries  map[string]time.Time
	queue    []sentEntry // orden de inserción = orden de expiración
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// NewMemorySentStore capacity <= 0 significa sin límite de tamaño.
func NewMemorySentStore(ttl time.Duration, capacity int) *MemorySentStore {
	return &MemorySentStore{
		entries:  make(map[string]time.Time),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

func sentKey(sellerID int64, orderID string) string {
	return fmt.Sprintf("%d:%s", sellerID, orderID)
}

// Seen indica si la orden ya se notificó y no ha expirado.
func (s *MemorySentStore) Seen(_ context.Context, sellerID int64, orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.entries[sentKey(sellerID, orderID)]
	return ok && s.now().Before(exp), nil
}

// Mark registra la orden como notificada.
func (s *MemorySentStore) Mark(_ context.Context, sellerID int64, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.evictExpired(now)

	key := sentKey(sellerID, orderID)
	exp := now.Add(s.ttl)
	s.entries[key] = exp
	s.queue = append(s.queue, sentEntry{key: key, expiresAt: exp})

	for s.capacity > 0 && len(s.entries) > s.capacity && len(s.queue) > 0 {
		s.dropFront()
	}
	return nil
}

// Len número de ids vigentes.
func (s *MemorySentStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired(s.now())
	return len(s.entries)
}

func (s *MemorySentStore) evictExpired(now time.Time) {
	for len(s.queue) > 0 && !now.Before(s.queue[0].expiresAt) {
		s.dropFront()
	}
}

// dropFront saca el más antiguo; si la clave se volvió a marcar después, la
// entrada vigente del mapa no se toca.
func (s *MemorySentStore) dropFront() {
	e := s.queue[0]
	s.queue = s.queue[1:]
	if exp, ok := s.entries[e.key]; ok && exp.Equal(e.expiresAt) {
		delete(s.entries, e.key)
	}
}
