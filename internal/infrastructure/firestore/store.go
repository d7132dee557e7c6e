package firestore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

const defaultBaseURL = "https://firestore.googleapis.com"

// Config credenciales y destino del proyecto Firestore.
type Config struct {
	ProjectID   string
	DatabaseID  string // "(default)" salvo bases nombradas
	BearerToken string // token OAuth; vacío contra el emulador
	BaseURL     string // override para el emulador
	Timeout     time.Duration
}

// Store implementa repository.DocumentStore sobre la API REST de Firestore.
type Store struct {
	client *resty.Client
	parent string // projects/{p}/databases/{d}/documents
}

var _ repository.DocumentStore = (*Store)(nil)

// NewStore construye el cliente REST. Requiere ProjectID.
func NewStore(cfg Config) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore: %w: FIREBASE_PROJECT_ID requerido", domain.ErrConfiguration)
	}
	if cfg.DatabaseID == "" {
		cfg.DatabaseID = "(default)"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/v1").
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.BearerToken != "" {
		cli.SetAuthToken(cfg.BearerToken)
	}

	parent := fmt.Sprintf("projects/%s/databases/%s/documents", cfg.ProjectID, cfg.DatabaseID)
	return &Store{client: cli, parent: parent}, nil
}

// Insert crea un documento; Firestore asigna la clave.
func (s *Store) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	encoded, err := encodeFields(fields)
	if err != nil {
		return "", fmt.Errorf("firestore insert: %w", err)
	}
	var created document
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(document{Fields: encoded}).
		SetResult(&created).
		Post("/" + s.parent + "/" + collection)
	if err != nil {
		return "", fmt.Errorf("firestore insert: %w", err)
	}
	if err := s.checkStatus("insert", resp); err != nil {
		return "", err
	}
	return path.Base(created.Name), nil
}

// Set crea o reemplaza el documento con la clave dada (PATCH sin precondición).
func (s *Store) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	encoded, err := encodeFields(fields)
	if err != nil {
		return fmt.Errorf("firestore set: %w", err)
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(document{Fields: encoded}).
		Patch(s.docPath(collection, id))
	if err != nil {
		return fmt.Errorf("firestore set: %w", err)
	}
	return s.checkStatus("set", resp)
}

// GetByID lee un documento puntual. ErrNotFound si no existe.
func (s *Store) GetByID(ctx context.Context, collection, id string) (map[string]any, error) {
	var doc document
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&doc).
		Get(s.docPath(collection, id))
	if err != nil {
		return nil, fmt.Errorf("firestore get: %w", err)
	}
	if err := s.checkStatus("get", resp); err != nil {
		return nil, err
	}
	return decodeFields(doc.Fields), nil
}

// UpdateMerge fusiona los campos dados sobre el documento existente.
// El updateMask limita la escritura a esos campos; la precondición
// exists=true convierte el documento ausente en ErrNotFound.
func (s *Store) UpdateMerge(ctx context.Context, collection, id string, fields map[string]any) error {
	encoded, err := encodeFields(fields)
	if err != nil {
		return fmt.Errorf("firestore update: %w", err)
	}
	params := url.Values{"currentDocument.exists": {"true"}}
	for k := range fields {
		params.Add("updateMask.fieldPaths", k)
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetBody(document{Fields: encoded}).
		Patch(s.docPath(collection, id))
	if err != nil {
		return fmt.Errorf("firestore update: %w", err)
	}
	return s.checkStatus("update", resp)
}

// DeleteByID elimina el documento. ErrNotFound si no existe.
func (s *Store) DeleteByID(ctx context.Context, collection, id string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("currentDocument.exists", "true").
		Delete(s.docPath(collection, id))
	if err != nil {
		return fmt.Errorf("firestore delete: %w", err)
	}
	return s.checkStatus("delete", resp)
}

// runQuery shapes de la API :runQuery (solo lo que se usa).
type structuredQuery struct {
	From  []collectionSelector `json:"from"`
	Where *filter              `json:"where,omitempty"`
	Limit int                  `json:"limit,omitempty"`
}

type collectionSelector struct {
	CollectionID string `json:"collectionId"`
}

type filter struct {
	CompositeFilter *compositeFilter `json:"compositeFilter,omitempty"`
	FieldFilter     *fieldFilter     `json:"fieldFilter,omitempty"`
}

type compositeFilter struct {
	Op      string   `json:"op"` // AND
	Filters []filter `json:"filters"`
}

type fieldFilter struct {
	Field fieldReference `json:"field"`
	Op    string         `json:"op"` // EQUAL
	Value value          `json:"value"`
}

type fieldReference struct {
	FieldPath string `json:"fieldPath"`
}

type queryResult struct {
	Document *document `json:"document,omitempty"`
}

// QueryEquals filtra por igualdad de campos (AND) con límite de resultados.
func (s *Store) QueryEquals(ctx context.Context, collection string, filters map[string]any, limit int) ([]repository.Document, error) {
	where, err := equalityFilter(filters)
	if err != nil {
		return nil, fmt.Errorf("firestore query: %w", err)
	}
	body := map[string]any{
		"structuredQuery": structuredQuery{
			From:  []collectionSelector{{CollectionID: collection}},
			Where: where,
			Limit: limit,
		},
	}
	var results []queryResult
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&results).
		Post("/" + s.parent + ":runQuery")
	if err != nil {
		return nil, fmt.Errorf("firestore query: %w", err)
	}
	if err := s.checkStatus("query", resp); err != nil {
		return nil, err
	}

	docs := make([]repository.Document, 0, len(results))
	for _, r := range results {
		// runQuery intercala entradas sin documento (readTime de progreso)
		if r.Document == nil {
			continue
		}
		docs = append(docs, repository.Document{
			ID:     path.Base(r.Document.Name),
			Fields: decodeFields(r.Document.Fields),
		})
	}
	return docs, nil
}

func equalityFilter(filters map[string]any) (*filter, error) {
	if len(filters) == 0 {
		return nil, nil
	}
	fieldFilters := make([]filter, 0, len(filters))
	for k, v := range filters {
		ev, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("filtro %q: %w", k, err)
		}
		fieldFilters = append(fieldFilters, filter{FieldFilter: &fieldFilter{
			Field: fieldReference{FieldPath: k},
			Op:    "EQUAL",
			Value: ev,
		}})
	}
	if len(fieldFilters) == 1 {
		return &fieldFilters[0], nil
	}
	return &filter{CompositeFilter: &compositeFilter{Op: "AND", Filters: fieldFilters}}, nil
}

func (s *Store) docPath(collection, id string) string {
	return "/" + s.parent + "/" + collection + "/" + id
}

func (s *Store) checkStatus(op string, resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}
	if resp.StatusCode() == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return fmt.Errorf("firestore %s: estado %d", op, resp.StatusCode())
}
