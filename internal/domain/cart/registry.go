package cart

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/Tpv-api/internal/domain"
)

// Registry asocia carritos a sesiones de caja. Cada sesión posee su propio
// Cart; nada se comparte entre sesiones.
type Registry struct {
	mu          sync.RWMutex
	maxQuantity int
	carts       map[string]*Cart
}

// NewRegistry crea un registro vacío. maxQuantity se propaga a cada carrito.
func NewRegistry(maxQuantity int) *Registry {
	return &Registry{
		maxQuantity: maxQuantity,
		carts:       make(map[string]*Cart),
	}
}

// Open crea una sesión nueva con carrito vacío y devuelve su identificador.
func (r *Registry) Open() string {
	id := uuid.NewString()
	r.mu.Lock()
	r.carts[id] = New(r.maxQuantity)
	r.mu.Unlock()
	return id
}

// Get devuelve el carrito de la sesión.
func (r *Registry) Get(sessionID string) (*Cart, error) {
	r.mu.RLock()
	c, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: sesión %s", domain.ErrNotFound, sessionID)
	}
	return c, nil
}

// Close descarta la sesión y su carrito.
func (r *Registry) Close(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[sessionID]; !ok {
		return fmt.Errorf("%w: sesión %s", domain.ErrNotFound, sessionID)
	}
	delete(r.carts, sessionID)
	return nil
}
