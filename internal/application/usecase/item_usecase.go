package usecase

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// itemsCollection colección de items del catálogo.
const itemsCollection = "items"

// Campos permitidos en SearchByField.
var searchableFields = []string{"nombre", "categoria", "createdBy"}

// ItemUseCase media todos los accesos a items contra el Document Store,
// aplicando la regla de propiedad: un item solo lo puede ver/mutar su
// creador o un admin.
type ItemUseCase struct {
	store repository.DocumentStore
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(store repository.DocumentStore) *ItemUseCase {
	return &ItemUseCase{store: store}
}

// isOwnerOrAdmin es la única regla de autorización del sistema: el caller
// puede actuar sobre el registro si es admin o si lo creó.
func isOwnerOrAdmin(uid, role, createdBy string) bool {
	return role == entity.RoleAdmin || uid == createdBy
}

// Create valida y persiste un item nuevo. createdBy se estampa con el uid
// autenticado; nada del payload puede suplantarlo. Descripcion vacía y
// stock 0 son los defaults.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest, uid string) (*entity.Item, error) {
	if in.Nombre == "" || in.Precio == nil || in.Categoria == "" {
		return nil, fmt.Errorf("%w: nombre, precio y categoría son requeridos", domain.ErrInvalidInput)
	}
	if *in.Precio <= 0 {
		return nil, fmt.Errorf("%w: el precio debe ser un número positivo", domain.ErrInvalidInput)
	}
	// Longitudes en caracteres, no en bytes: los nombres llevan acentos.
	if n := utf8.RuneCountInString(in.Nombre); n < 3 || n > 100 {
		return nil, fmt.Errorf("%w: nombre debe tener entre 3 y 100 caracteres", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(in.Descripcion) > 500 {
		return nil, fmt.Errorf("%w: descripcion no puede exceder 500 caracteres", domain.ErrInvalidInput)
	}
	var stock int64
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
		}
		stock = *in.Stock
	}

	item := &entity.Item{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Precio:      *in.Precio,
		Categoria:   in.Categoria,
		Stock:       stock,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   uid,
	}
	id, err := uc.store.Insert(ctx, itemsCollection, item.Fields())
	if err != nil {
		return nil, err
	}
	item.ID = id
	return item, nil
}

// GetByID lee un item puntual. ErrNotFound si no existe; ErrForbidden si
// el caller no es el creador ni admin.
func (uc *ItemUseCase) GetByID(ctx context.Context, id, uid, role string) (*entity.Item, error) {
	fields, err := uc.store.GetByID(ctx, itemsCollection, id)
	if err != nil {
		return nil, err
	}
	item := entity.ItemFromFields(id, fields)
	if !isOwnerOrAdmin(uid, role, item.CreatedBy) {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

// ListAll lista items con filtros de igualdad. Para callers no admin el
// filtro efectivo fuerza createdBy = uid, ignorando cualquier createdBy
// del caller; un admin puede filtrar por creador o ver todos. Cero
// coincidencias devuelve lista vacía, nunca error.
func (uc *ItemUseCase) ListAll(ctx context.Context, f dto.ListItemsFilter, uid, role string, limit int) ([]*entity.Item, error) {
	filters := make(map[string]any)
	if f.Categoria != "" {
		filters["categoria"] = f.Categoria
	}
	if role != entity.RoleAdmin {
		filters["createdBy"] = uid
	} else if f.CreatedBy != "" {
		filters["createdBy"] = f.CreatedBy
	}

	docs, err := uc.store.QueryEquals(ctx, itemsCollection, filters, limit)
	if err != nil {
		return nil, err
	}
	items := make([]*entity.Item, 0, len(docs))
	for _, d := range docs {
		items = append(items, entity.ItemFromFields(d.ID, d.Fields))
	}
	return items, nil
}

// Update aplica una actualización parcial: lectura puntual, autorización
// creador-o-admin, validación del patch, merge de los campos presentes con
// updatedBy estampado, y relectura del documento resultante.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest, uid, role string) (*entity.Item, error) {
	existing, err := uc.store.GetByID(ctx, itemsCollection, id)
	if err != nil {
		return nil, err
	}
	item := entity.ItemFromFields(id, existing)
	if !isOwnerOrAdmin(uid, role, item.CreatedBy) {
		return nil, domain.ErrForbidden
	}

	patch := map[string]any{"updatedBy": uid}
	if in.Precio != nil {
		if *in.Precio <= 0 {
			return nil, fmt.Errorf("%w: el precio debe ser un número positivo", domain.ErrInvalidInput)
		}
		patch["precio"] = *in.Precio
	}
	if in.Nombre != nil {
		if n := utf8.RuneCountInString(*in.Nombre); n < 3 || n > 100 {
			return nil, fmt.Errorf("%w: nombre debe tener entre 3 y 100 caracteres", domain.ErrInvalidInput)
		}
		patch["nombre"] = *in.Nombre
	}
	if in.Descripcion != nil {
		if utf8.RuneCountInString(*in.Descripcion) > 500 {
			return nil, fmt.Errorf("%w: descripcion no puede exceder 500 caracteres", domain.ErrInvalidInput)
		}
		patch["descripcion"] = *in.Descripcion
	}
	if in.Categoria != nil {
		patch["categoria"] = *in.Categoria
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
		}
		patch["stock"] = *in.Stock
	}

	if err := uc.store.UpdateMerge(ctx, itemsCollection, id, patch); err != nil {
		return nil, err
	}
	merged, err := uc.store.GetByID(ctx, itemsCollection, id)
	if err != nil {
		return nil, err
	}
	return entity.ItemFromFields(id, merged), nil
}

// Delete elimina el item (borrado duro). Lectura puntual para autorizar
// y después borrado incondicional.
func (uc *ItemUseCase) Delete(ctx context.Context, id, uid, role string) error {
	existing, err := uc.store.GetByID(ctx, itemsCollection, id)
	if err != nil {
		return err
	}
	item := entity.ItemFromFields(id, existing)
	if !isOwnerOrAdmin(uid, role, item.CreatedBy) {
		return domain.ErrForbidden
	}
	return uc.store.DeleteByID(ctx, itemsCollection, id)
}

// SearchByField busca por igualdad en un único campo del allow-list
// (nombre, categoria, createdBy). A diferencia de ListAll, la búsqueda NO
// restringe por propiedad: cualquier caller autenticado puede buscar por
// cualquier createdBy y ver los resultados. Comportamiento heredado del
// contrato original.
func (uc *ItemUseCase) SearchByField(ctx context.Context, field, value string, limit int) ([]*entity.Item, error) {
	if field == "" || value == "" {
		return nil, fmt.Errorf("%w: los parámetros field y value son requeridos", domain.ErrInvalidInput)
	}
	allowed := false
	for _, f := range searchableFields {
		if field == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: campo no válido, use uno de: nombre, categoria, createdBy", domain.ErrInvalidInput)
	}

	docs, err := uc.store.QueryEquals(ctx, itemsCollection, map[string]any{field: value}, limit)
	if err != nil {
		return nil, err
	}
	items := make([]*entity.Item, 0, len(docs))
	for _, d := range docs {
		items = append(items, entity.ItemFromFields(d.ID, d.Fields))
	}
	return items, nil
}
