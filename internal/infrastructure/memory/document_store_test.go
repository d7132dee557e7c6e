package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
)

func TestInsertYGetByID(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	id, err := store.Insert(ctx, "items", map[string]any{"nombre": "Laptop", "precio": 10.0})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	fields, err := store.GetByID(ctx, "items", id)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", fields["nombre"])
	assert.Equal(t, 10.0, fields["precio"])
}

func TestGetByID_NoExiste(t *testing.T) {
	store := memory.NewStore()
	_, err := store.GetByID(context.Background(), "items", "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSet_UpsertConClavePropia(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "users", "uid-1", map[string]any{"nombre": "Ana"}))
	// Set sobre clave existente reemplaza el documento completo
	require.NoError(t, store.Set(ctx, "users", "uid-1", map[string]any{"email": "ana@ejemplo.com"}))

	fields, err := store.GetByID(ctx, "users", "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "ana@ejemplo.com", fields["email"])
	_, tieneNombre := fields["nombre"]
	assert.False(t, tieneNombre, "Set reemplaza, no fusiona")
}

func TestUpdateMerge_FusionaYConservaElResto(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	id, err := store.Insert(ctx, "items", map[string]any{
		"nombre": "Laptop", "precio": 10.0, "stock": int64(3),
	})
	require.NoError(t, err)

	// El patch reemplaza los campos presentes, incluso con valor cero
	require.NoError(t, store.UpdateMerge(ctx, "items", id, map[string]any{
		"precio": 20.0, "stock": int64(0),
	}))

	fields, err := store.GetByID(ctx, "items", id)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", fields["nombre"])
	assert.Equal(t, 20.0, fields["precio"])
	assert.Equal(t, int64(0), fields["stock"], "el valor cero explícito debe persistirse")
}

func TestUpdateMerge_NoExiste(t *testing.T) {
	store := memory.NewStore()
	err := store.UpdateMerge(context.Background(), "items", "nada", map[string]any{"x": 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteByID(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	id, err := store.Insert(ctx, "items", map[string]any{"nombre": "Laptop"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(ctx, "items", id))
	_, err = store.GetByID(ctx, "items", id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.DeleteByID(ctx, "items", id), domain.ErrNotFound)
}

func TestQueryEquals_ANDyLimite(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	seeds := []map[string]any{
		{"categoria": "tech", "createdBy": "u1"},
		{"categoria": "tech", "createdBy": "u2"},
		{"categoria": "hogar", "createdBy": "u1"},
	}
	for _, s := range seeds {
		_, err := store.Insert(ctx, "items", s)
		require.NoError(t, err)
	}

	docs, err := store.QueryEquals(ctx, "items", map[string]any{"categoria": "tech", "createdBy": "u1"}, 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "u1", docs[0].Fields["createdBy"])

	// Sin filtros devuelve todo, acotado por el límite
	todos, err := store.QueryEquals(ctx, "items", nil, 2)
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	vacio, err := store.QueryEquals(ctx, "items", map[string]any{"categoria": "juguetes"}, 10)
	require.NoError(t, err)
	assert.Empty(t, vacio)
}

func TestGetByID_DevuelveCopia(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	id, err := store.Insert(ctx, "items", map[string]any{"nombre": "Laptop"})
	require.NoError(t, err)

	fields, err := store.GetByID(ctx, "items", id)
	require.NoError(t, err)
	fields["nombre"] = "mutado"

	otra, err := store.GetByID(ctx, "items", id)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", otra["nombre"], "mutar la lectura no debe afectar al documento")
}
