package document

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// allowedExtensions is the upload allow-list, checked against the
// original filename's extension.
var allowedExtensions = map[string]bool{
	"pdf": true, "doc": true, "docx": true,
	"jpg": true, "jpeg": true, "png": true, "gif": true, "zip": true,
}

// allowedMimeTypes mirrors the extension allow-list for the declared
// Content-Type. An empty declared type is accepted; browsers are not
// consistent about it.
var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"application/zip": true,
	"application/x-zip-compressed": true,
	"application/octet-stream":     true,
}

// UploadInput is the caller-supplied metadata for a new logical document.
type UploadInput struct {
	Name        string
	Type        Type
	University  string
	Description string
	Filename    string
	MimeType    string
}

// UseCase maintains document version chains.
type UseCase interface {
	Upload(ctx context.Context, ownerID uuid.UUID, in UploadInput, data []byte) (Document, error)
	AddVersion(ctx context.Context, ownerID, existingID uuid.UUID, filename, mimeType string, data []byte) (Document, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Document, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Document, error)
	Versions(ctx context.Context, ownerID, id uuid.UUID) ([]Document, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID, allVersions bool) error
}

type service struct {
	repo     Repository
	store    FileStore
	maxBytes int64
	chains   keyedMutex
}

// NewService builds the default tracker. maxBytes caps a single upload.
func NewService(repo Repository, store FileStore, maxBytes int64) UseCase {
	return &service{repo: repo, store: store, maxBytes: maxBytes}
}

// keyedMutex serializes chain mutations per {owner, name, type} key so
// two concurrent uploads of the same logical document cannot both decide
// they are the next version.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}

func chainKey(ownerID uuid.UUID, name string, t Type) string {
	return ownerID.String() + "|" + strings.ToLower(name) + "|" + string(t)
}

func (s *service) checkFile(filename, mimeType string, data []byte) (ext string, err error) {
	if len(data) == 0 {
		return "", ErrMissingFile
	}
	ext = strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: .%s", ErrUnsupportedType, ext)
	}
	if mimeType != "" {
		if mt := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0])); !allowedMimeTypes[mt] {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt)
		}
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.maxBytes)
	}
	return ext, nil
}

func (s *service) Upload(ctx context.Context, ownerID uuid.UUID, in UploadInput, data []byte) (Document, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		in.Name = in.Filename
	}
	if in.Name == "" {
		return Document{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !in.Type.Valid() {
		return Document{}, fmt.Errorf("%w: unknown document type %q", ErrValidation, in.Type)
	}
	if strings.TrimSpace(in.University) == "" {
		in.University = "All"
	}
	ext, err := s.checkFile(in.Filename, in.MimeType, data)
	if err != nil {
		return Document{}, err
	}

	unlock := s.chains.lock(chainKey(ownerID, in.Name, in.Type))
	defer unlock()

	id := uuid.New()
	path, checksum, err := s.store.Save(id.String()+"."+ext, data)
	if err != nil {
		return Document{}, err
	}

	peers, err := s.repo.ChainPeers(ctx, ownerID, in.Name, in.Type)
	if err != nil {
		s.cleanup(path)
		return Document{}, err
	}

	version := 1
	parentID := id
	if len(peers) > 0 {
		prior := peers[0] // highest version
		parentID = prior.ParentDocumentID
		if parentID == uuid.Nil {
			parentID = prior.ID
		}
		version = prior.Version + 1
		if err := s.repo.ClearLatest(ctx, parentID); err != nil {
			s.cleanup(path)
			return Document{}, err
		}
	}

	doc := Document{
		ID:               id,
		Name:             in.Name,
		Type:             in.Type,
		University:       in.University,
		Status:           StatusUploaded,
		UploadDate:       time.Now().UTC(),
		Size:             humanSize(int64(len(data))),
		Format:           ext,
		FilePath:         path,
		Version:          version,
		ParentDocumentID: parentID,
		IsLatestVersion:  true,
		UploadedBy:       ownerID,
		Metadata: Metadata{
			OriginalName: in.Filename,
			MimeType:     in.MimeType,
			Checksum:     checksum,
			Description:  in.Description,
			Excerpt:      excerpt(in.Filename, data),
		},
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		s.cleanup(path)
		return Document{}, err
	}
	return doc, nil
}

func (s *service) AddVersion(ctx context.Context, ownerID, existingID uuid.UUID, filename, mimeType string, data []byte) (Document, error) {
	existing, err := s.repo.GetByIDForOwner(ctx, ownerID, existingID)
	if err != nil {
		return Document{}, ErrNotFound
	}
	ext, err := s.checkFile(filename, mimeType, data)
	if err != nil {
		return Document{}, err
	}

	unlock := s.chains.lock(chainKey(ownerID, existing.Name, existing.Type))
	defer unlock()

	parentID := existing.ParentDocumentID
	if parentID == uuid.Nil {
		parentID = existing.ID
	}
	chain, err := s.repo.Versions(ctx, ownerID, parentID)
	if err != nil {
		return Document{}, err
	}
	version := 1
	if len(chain) > 0 {
		version = chain[0].Version + 1
	}

	id := uuid.New()
	path, checksum, err := s.store.Save(id.String()+"."+ext, data)
	if err != nil {
		return Document{}, err
	}
	if err := s.repo.ClearLatest(ctx, parentID); err != nil {
		s.cleanup(path)
		return Document{}, err
	}

	doc := Document{
		ID:               id,
		Name:             existing.Name,
		Type:             existing.Type,
		University:       existing.University,
		Status:           StatusUploaded,
		UploadDate:       time.Now().UTC(),
		Size:             humanSize(int64(len(data))),
		Format:           ext,
		FilePath:         path,
		Version:          version,
		ParentDocumentID: parentID,
		IsLatestVersion:  true,
		UploadedBy:       ownerID,
		Metadata: Metadata{
			OriginalName: filename,
			MimeType:     mimeType,
			Checksum:     checksum,
			Excerpt:      excerpt(filename, data),
		},
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		s.cleanup(path)
		return Document{}, err
	}
	return doc, nil
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Document, error) {
	return s.repo.GetByIDForOwner(ctx, ownerID, id)
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Document, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Versions(ctx context.Context, ownerID, id uuid.UUID) ([]Document, error) {
	doc, err := s.repo.GetByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, ErrNotFound
	}
	parentID := doc.ParentDocumentID
	if parentID == uuid.Nil {
		parentID = doc.ID
	}
	return s.repo.Versions(ctx, ownerID, parentID)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID, allVersions bool) error {
	doc, err := s.repo.GetByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return ErrNotFound
	}
	parentID := doc.ParentDocumentID
	if parentID == uuid.Nil {
		parentID = doc.ID
	}

	unlock := s.chains.lock(chainKey(ownerID, doc.Name, doc.Type))
	defer unlock()

	if allVersions {
		removed, err := s.repo.DeleteChain(ctx, ownerID, parentID)
		if err != nil {
			return err
		}
		for _, d := range removed {
			s.cleanup(d.FilePath)
		}
		return nil
	}

	if err := s.repo.Delete(ctx, doc.ID); err != nil {
		return err
	}
	s.cleanup(doc.FilePath)

	if doc.IsLatestVersion {
		remaining, err := s.repo.Versions(ctx, ownerID, parentID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			// Promote the highest remaining version.
			return s.repo.SetLatest(ctx, remaining[0].ID)
		}
	}
	return nil
}

// cleanup removes a stored file best-effort; failures are logged only.
func (s *service) cleanup(path string) {
	if path == "" {
		return
	}
	if err := s.store.Remove(path); err != nil {
		log.Printf("document: failed to remove file %s: %v", path, err)
	}
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
