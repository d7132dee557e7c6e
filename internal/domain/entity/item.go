package entity

import "time"

// Item representa un producto del catálogo. Se persiste como documento
// schemaless en el Document Store; el ID lo asigna el store al crear.
type Item struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Precio      float64   `json:"precio"`
	Categoria   string    `json:"categoria"`
	Stock       int64     `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
}

// Fields devuelve la representación documento del item, sin el ID
// (el ID es la clave del documento, no un campo).
func (i *Item) Fields() map[string]any {
	f := map[string]any{
		"nombre":      i.Nombre,
		"descripcion": i.Descripcion,
		"precio":      i.Precio,
		"categoria":   i.Categoria,
		"stock":       i.Stock,
		"createdAt":   i.CreatedAt,
		"createdBy":   i.CreatedBy,
	}
	if i.UpdatedBy != "" {
		f["updatedBy"] = i.UpdatedBy
	}
	return f
}

// ItemFromFields reconstruye un Item desde un documento del store.
// Tolera valores numéricos como int64 o float64 según el backend.
func ItemFromFields(id string, fields map[string]any) *Item {
	item := &Item{ID: id}
	if v, ok := fields["nombre"].(string); ok {
		item.Nombre = v
	}
	if v, ok := fields["descripcion"].(string); ok {
		item.Descripcion = v
	}
	item.Precio = asFloat(fields["precio"])
	if v, ok := fields["categoria"].(string); ok {
		item.Categoria = v
	}
	item.Stock = asInt(fields["stock"])
	if v, ok := fields["createdAt"].(time.Time); ok {
		item.CreatedAt = v
	}
	if v, ok := fields["createdBy"].(string); ok {
		item.CreatedBy = v
	}
	if v, ok := fields["updatedBy"].(string); ok {
		item.UpdatedBy = v
	}
	return item
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
