package repository

import "context"

// Document es un documento del store con su clave.
type Document struct {
	ID     string
	Fields map[string]any
}

// DocumentStore define el puerto hacia el almacén de documentos (DIP).
// Opera sobre colecciones nombradas de documentos con clave string.
// Las implementaciones devuelven domain.ErrNotFound cuando el documento
// no existe (GetByID, UpdateMerge, DeleteByID).
type DocumentStore interface {
	// Insert crea un documento; el store asigna la clave.
	Insert(ctx context.Context, collection string, fields map[string]any) (string, error)
	// Set crea o reemplaza el documento con la clave dada (upsert).
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	GetByID(ctx context.Context, collection, id string) (map[string]any, error)
	// UpdateMerge fusiona los campos dados sobre el documento existente.
	UpdateMerge(ctx context.Context, collection, id string, fields map[string]any) error
	DeleteByID(ctx context.Context, collection, id string) error
	// QueryEquals filtra por igualdad de campos (AND) con límite de resultados.
	QueryEquals(ctx context.Context, collection string, filters map[string]any, limit int) ([]Document, error)
}
