// Package memory implementa el puerto DocumentStore en proceso, con la
// misma semántica que el backend Firestore (claves asignadas por el
// store, merge parcial, igualdad AND en queries). Se usa en desarrollo
// local (STORE_MODE=memory) y como colaborador real en los tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"dario.cat/mergo"
	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// Store almacén de documentos en memoria, seguro para uso concurrente.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

var _ repository.DocumentStore = (*Store)(nil)

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{collections: make(map[string]map[string]map[string]any)}
}

// Insert crea un documento con clave UUID asignada por el store.
func (s *Store) Insert(_ context.Context, collection string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New().String()
	s.coll(collection)[id] = cloneFields(fields)
	return id, nil
}

// Set crea o reemplaza el documento con la clave dada.
func (s *Store) Set(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coll(collection)[id] = cloneFields(fields)
	return nil
}

// GetByID lee un documento puntual. ErrNotFound si no existe.
func (s *Store) GetByID(_ context.Context, collection, id string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneFields(doc), nil
}

// UpdateMerge fusiona los campos dados sobre el documento existente.
func (s *Store) UpdateMerge(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	// Todo campo presente en el patch reemplaza al existente, incluso con
	// valor cero; los demás se conservan.
	merged := cloneFields(doc)
	if err := mergo.Merge(&merged, fields, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
		return fmt.Errorf("memory merge: %w", err)
	}
	s.collections[collection][id] = merged
	return nil
}

// DeleteByID elimina el documento. ErrNotFound si no existe.
func (s *Store) DeleteByID(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection][id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

// QueryEquals filtra por igualdad de campos (AND) con límite de resultados.
func (s *Store) QueryEquals(_ context.Context, collection string, filters map[string]any, limit int) ([]repository.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]repository.Document, 0)
	for id, fields := range s.collections[collection] {
		if limit > 0 && len(docs) >= limit {
			break
		}
		if matchesAll(fields, filters) {
			docs = append(docs, repository.Document{ID: id, Fields: cloneFields(fields)})
		}
	}
	return docs, nil
}

// coll devuelve la colección, creándola si no existe. Requiere mu tomado.
func (s *Store) coll(name string) map[string]map[string]any {
	c, ok := s.collections[name]
	if !ok {
		c = make(map[string]map[string]any)
		s.collections[name] = c
	}
	return c
}

func matchesAll(fields, filters map[string]any) bool {
	for k, want := range filters {
		if fields[k] != want {
			return false
		}
	}
	return true
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
