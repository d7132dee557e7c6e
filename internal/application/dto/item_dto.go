package dto

// CreateItemRequest entrada para crear un item del catálogo.
// createdBy nunca se acepta del cliente: lo estampa el use case
// con el uid autenticado.
type CreateItemRequest struct {
	Nombre      string   `json:"nombre" validate:"required,min=3,max=100"`
	Descripcion string   `json:"descripcion" validate:"max=500"`
	Precio      *float64 `json:"precio" validate:"required,gt=0"`
	Categoria   string   `json:"categoria" validate:"required"`
	Stock       *int64   `json:"stock" validate:"omitempty,min=0"`
}

// UpdateItemRequest entrada para actualización parcial (merge sobre el
// documento existente; solo los campos presentes se modifican).
type UpdateItemRequest struct {
	Nombre      *string  `json:"nombre" validate:"omitempty,min=3,max=100"`
	Descripcion *string  `json:"descripcion" validate:"omitempty,max=500"`
	Precio      *float64 `json:"precio" validate:"omitempty,gt=0"`
	Categoria   *string  `json:"categoria"`
	Stock       *int64   `json:"stock" validate:"omitempty,min=0"`
}

// ListItemsFilter filtros opcionales para el listado.
// CreatedBy solo se honra para callers admin; para el resto el use case
// fuerza el uid del caller.
type ListItemsFilter struct {
	Categoria string `query:"categoria"`
	CreatedBy string `query:"createdBy"`
}

// DeleteItemResponse confirmación de borrado.
type DeleteItemResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
