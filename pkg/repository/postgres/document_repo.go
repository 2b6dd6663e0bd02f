package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unipath/backend/pkg/document"
)

// DocumentRepository stores document version chains. Optional metadata
// lives in a JSONB column.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) (*DocumentRepository, error) {
	r := &DocumentRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *DocumentRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS documents (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	doc_type TEXT NOT NULL,
	university TEXT NOT NULL DEFAULT 'All',
	status TEXT NOT NULL,
	upload_date TIMESTAMPTZ NOT NULL,
	size TEXT NOT NULL DEFAULT '',
	format TEXT NOT NULL DEFAULT '',
	file_path TEXT NOT NULL,
	version INT NOT NULL CHECK (version >= 1),
	parent_document_id UUID NOT NULL,
	is_latest_version BOOLEAN NOT NULL,
	uploaded_by UUID NOT NULL,
	metadata JSONB NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_documents_owner ON documents(uploaded_by);
CREATE INDEX IF NOT EXISTS idx_documents_chain ON documents(parent_document_id);
CREATE INDEX IF NOT EXISTS idx_documents_identity ON documents(uploaded_by, name, doc_type);
`)
	return err
}

const documentColumns = `id, name, doc_type, university, status, upload_date, size, format, file_path, version, parent_document_id, is_latest_version, uploaded_by, metadata`

func scanDocument(row pgx.Row) (document.Document, error) {
	var d document.Document
	var uploaded time.Time
	var metadata []byte
	if err := row.Scan(&d.ID, &d.Name, &d.Type, &d.University, &d.Status, &uploaded, &d.Size, &d.Format, &d.FilePath, &d.Version, &d.ParentDocumentID, &d.IsLatestVersion, &d.UploadedBy, &metadata); err != nil {
		return document.Document{}, err
	}
	_ = json.Unmarshal(metadata, &d.Metadata)
	d.UploadDate = uploaded.UTC()
	return d, nil
}

func (r *DocumentRepository) Create(ctx context.Context, d document.Document) error {
	metadata, err := json.Marshal(d.Metadata)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO documents (id, name, doc_type, university, status, upload_date, size, format, file_path, version, parent_document_id, is_latest_version, uploaded_by, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`, d.ID, d.Name, d.Type, d.University, d.Status, d.UploadDate, d.Size, d.Format, d.FilePath, d.Version, d.ParentDocumentID, d.IsLatestVersion, d.UploadedBy, metadata)
	return err
}

func (r *DocumentRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (document.Document, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+documentColumns+` FROM documents WHERE id = $1 AND uploaded_by = $2
`, id, ownerID)
	d, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return document.Document{}, document.ErrNotFound
	}
	return d, err
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]document.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+documentColumns+` FROM documents
WHERE uploaded_by = $1 AND is_latest_version = TRUE
ORDER BY upload_date DESC
LIMIT $2 OFFSET $3
`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func (r *DocumentRepository) ChainPeers(ctx context.Context, ownerID uuid.UUID, name string, t document.Type) ([]document.Document, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+documentColumns+` FROM documents
WHERE uploaded_by = $1 AND name = $2 AND doc_type = $3
ORDER BY version DESC
`, ownerID, name, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func (r *DocumentRepository) Versions(ctx context.Context, ownerID, parentID uuid.UUID) ([]document.Document, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+documentColumns+` FROM documents
WHERE uploaded_by = $1 AND parent_document_id = $2
ORDER BY version DESC
`, ownerID, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func (r *DocumentRepository) ClearLatest(ctx context.Context, parentID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
UPDATE documents SET is_latest_version = FALSE WHERE parent_document_id = $1
`, parentID)
	return err
}

func (r *DocumentRepository) SetLatest(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE documents SET is_latest_version = TRUE WHERE id = $1
`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return document.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return document.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository) DeleteChain(ctx context.Context, ownerID, parentID uuid.UUID) ([]document.Document, error) {
	rows, err := r.pool.Query(ctx, `
DELETE FROM documents WHERE uploaded_by = $1 AND parent_document_id = $2
RETURNING `+documentColumns+`
`, ownerID, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func collectDocuments(rows pgx.Rows) ([]document.Document, error) {
	var res []document.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}
