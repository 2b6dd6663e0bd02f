package document

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Errors surfaced by the document use case.
var (
	ErrNotFound        = errors.New("document not found")
	ErrMissingFile     = errors.New("file is required")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrValidation      = errors.New("validation failed")
)

// Type classifies an uploaded document.
type Type string

const (
	TypeCV                   Type = "CV/Resume"
	TypePortfolio            Type = "Portfolio"
	TypeTranscript           Type = "Transcript"
	TypePersonalStatement    Type = "Personal Statement"
	TypeRecommendationLetter Type = "Recommendation Letter"
	TypeResearchPaper        Type = "Research Paper"
	TypeCertificate          Type = "Certificate"
	TypeOther                Type = "Other"
)

var knownTypes = map[Type]bool{
	TypeCV: true, TypePortfolio: true, TypeTranscript: true,
	TypePersonalStatement: true, TypeRecommendationLetter: true,
	TypeResearchPaper: true, TypeCertificate: true, TypeOther: true,
}

// Valid reports whether t is one of the known document types.
func (t Type) Valid() bool { return knownTypes[t] }

// Status is the document lifecycle state.
type Status string

const (
	StatusUploaded Status = "Uploaded"
	StatusDraft    Status = "Draft"
	StatusPending  Status = "Pending"
	StatusRejected Status = "Rejected"
)

// Metadata carries optional bookkeeping for one upload.
type Metadata struct {
	OriginalName string `json:"originalName,omitempty"`
	MimeType     string `json:"mimeType,omitempty"`
	Checksum     string `json:"checksum,omitempty"`
	Description  string `json:"description,omitempty"`
	Excerpt      string `json:"excerpt,omitempty"`
}

// Document is one uploaded file. Records sharing a ParentDocumentID form
// a version chain: Version is strictly increasing along the chain in
// upload order, the first member has Version 1 and ParentDocumentID equal
// to its own ID, and exactly one live member has IsLatestVersion true.
type Document struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Type             Type      `json:"type"`
	University       string    `json:"university"`
	Status           Status    `json:"status"`
	UploadDate       time.Time `json:"uploadDate"`
	Size             string    `json:"size"`
	Format           string    `json:"format"`
	FilePath         string    `json:"filePath"`
	Version          int       `json:"version"`
	ParentDocumentID uuid.UUID `json:"parentDocumentId"`
	IsLatestVersion  bool      `json:"isLatestVersion"`
	UploadedBy       uuid.UUID `json:"uploadedBy"`
	Metadata         Metadata  `json:"metadata"`
}

// Repository is the persistence port for documents.
type Repository interface {
	Create(ctx context.Context, d Document) error
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Document, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Document, error)
	// ChainPeers returns the records matching {name, owner, type},
	// ordered by version descending.
	ChainPeers(ctx context.Context, ownerID uuid.UUID, name string, t Type) ([]Document, error)
	// Versions returns every record sharing the chain root, ordered by
	// version descending.
	Versions(ctx context.Context, ownerID, parentID uuid.UUID) ([]Document, error)
	// ClearLatest drops the latest flag on every member of a chain.
	ClearLatest(ctx context.Context, parentID uuid.UUID) error
	// SetLatest flips the latest flag on for one record.
	SetLatest(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteChain removes every member of a chain and returns the removed
	// records so their backing files can be cleaned up.
	DeleteChain(ctx context.Context, ownerID, parentID uuid.UUID) ([]Document, error)
}

// FileStore abstracts the on-disk upload store.
type FileStore interface {
	// Save writes data under the given name and returns the storage path
	// and the content checksum. A failed write leaves nothing behind.
	Save(name string, data []byte) (path string, checksum string, err error)
	Remove(path string) error
}
