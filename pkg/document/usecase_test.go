package document

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository with the same ordering guarantees
// as the Postgres implementation.
type fakeRepo struct {
	docs map[uuid.UUID]Document
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[uuid.UUID]Document)}
}

func (r *fakeRepo) Create(_ context.Context, d Document) error {
	r.docs[d.ID] = d
	return nil
}

func (r *fakeRepo) GetByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (Document, error) {
	d, ok := r.docs[id]
	if !ok || d.UploadedBy != ownerID {
		return Document{}, ErrNotFound
	}
	return d, nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]Document, error) {
	var out []Document
	for _, d := range r.docs {
		if d.UploadedBy == ownerID && d.IsLatestVersion {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadDate.After(out[j].UploadDate) })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) ChainPeers(_ context.Context, ownerID uuid.UUID, name string, t Type) ([]Document, error) {
	var out []Document
	for _, d := range r.docs {
		if d.UploadedBy == ownerID && strings.EqualFold(d.Name, name) && d.Type == t {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

func (r *fakeRepo) Versions(_ context.Context, ownerID, parentID uuid.UUID) ([]Document, error) {
	var out []Document
	for _, d := range r.docs {
		if d.UploadedBy == ownerID && d.ParentDocumentID == parentID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

func (r *fakeRepo) ClearLatest(_ context.Context, parentID uuid.UUID) error {
	for id, d := range r.docs {
		if d.ParentDocumentID == parentID && d.IsLatestVersion {
			d.IsLatestVersion = false
			r.docs[id] = d
		}
	}
	return nil
}

func (r *fakeRepo) SetLatest(_ context.Context, id uuid.UUID) error {
	d, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	d.IsLatestVersion = true
	r.docs[id] = d
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *fakeRepo) DeleteChain(_ context.Context, ownerID, parentID uuid.UUID) ([]Document, error) {
	var removed []Document
	for id, d := range r.docs {
		if d.UploadedBy == ownerID && d.ParentDocumentID == parentID {
			removed = append(removed, d)
			delete(r.docs, id)
		}
	}
	return removed, nil
}

// latestOf returns the chain members flagged latest, for invariant checks.
func (r *fakeRepo) latestOf(parentID uuid.UUID) []Document {
	var out []Document
	for _, d := range r.docs {
		if d.ParentDocumentID == parentID && d.IsLatestVersion {
			out = append(out, d)
		}
	}
	return out
}

type fakeStore struct {
	files map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: make(map[string][]byte)}
}

func (s *fakeStore) Save(name string, data []byte) (string, string, error) {
	path := "mem/" + name
	s.files[path] = append([]byte(nil), data...)
	return path, "checksum-" + name, nil
}

func (s *fakeStore) Remove(path string) error {
	delete(s.files, path)
	return nil
}

func newTestService() (UseCase, *fakeRepo, *fakeStore) {
	repo := newFakeRepo()
	store := newFakeStore()
	return NewService(repo, store, 1<<20), repo, store
}

func pdfUpload(name string) UploadInput {
	return UploadInput{
		Name:     name,
		Type:     TypeCV,
		Filename: "resume.pdf",
		MimeType: "application/pdf",
	}
}

func TestUpload_FirstVersion(t *testing.T) {
	svc, repo, store := newTestService()
	owner := uuid.New()

	doc, err := svc.Upload(context.Background(), owner, pdfUpload("My CV"), []byte("%PDF-1.4 data"))
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Version)
	assert.Equal(t, doc.ID, doc.ParentDocumentID)
	assert.True(t, doc.IsLatestVersion)
	assert.Equal(t, StatusUploaded, doc.Status)
	assert.Equal(t, "pdf", doc.Format)
	assert.Equal(t, "All", doc.University)
	assert.Equal(t, owner, doc.UploadedBy)
	assert.Equal(t, "resume.pdf", doc.Metadata.OriginalName)
	assert.NotEmpty(t, doc.Metadata.Checksum)
	assert.Contains(t, store.files, doc.FilePath)
	assert.Len(t, repo.docs, 1)
}

func TestUpload_SameNameBecomesNextVersion(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	v1, err := svc.Upload(ctx, owner, pdfUpload("My CV"), []byte("first"))
	require.NoError(t, err)
	v2, err := svc.Upload(ctx, owner, pdfUpload("My CV"), []byte("second"))
	require.NoError(t, err)

	assert.Equal(t, 2, v2.Version)
	assert.Equal(t, v1.ID, v2.ParentDocumentID)
	assert.True(t, v2.IsLatestVersion)
	assert.False(t, repo.docs[v1.ID].IsLatestVersion, "prior version must be demoted")
	require.Len(t, repo.latestOf(v1.ID), 1)
}

func TestUpload_DifferentTypeStartsNewChain(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	cv, err := svc.Upload(ctx, owner, pdfUpload("Shared Name"), []byte("cv"))
	require.NoError(t, err)

	in := pdfUpload("Shared Name")
	in.Type = TypeTranscript
	tr, err := svc.Upload(ctx, owner, in, []byte("transcript"))
	require.NoError(t, err)

	assert.Equal(t, 1, tr.Version)
	assert.NotEqual(t, cv.ParentDocumentID, tr.ParentDocumentID)
}

func TestUpload_OwnersAreIsolated(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Upload(ctx, uuid.New(), pdfUpload("My CV"), []byte("a"))
	require.NoError(t, err)
	b, err := svc.Upload(ctx, uuid.New(), pdfUpload("My CV"), []byte("b"))
	require.NoError(t, err)

	assert.Equal(t, 1, a.Version)
	assert.Equal(t, 1, b.Version)
}

func TestUpload_NameDefaultsToFilename(t *testing.T) {
	svc, _, _ := newTestService()

	in := pdfUpload("")
	doc, err := svc.Upload(context.Background(), uuid.New(), in, []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", doc.Name)
}

func TestUpload_Validation(t *testing.T) {
	svc, repo, store := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	t.Run("unknown document type", func(t *testing.T) {
		in := pdfUpload("Doc")
		in.Type = "Selfie"
		_, err := svc.Upload(ctx, owner, in, []byte("data"))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := svc.Upload(ctx, owner, pdfUpload("Doc"), nil)
		assert.ErrorIs(t, err, ErrMissingFile)
	})

	t.Run("disallowed extension", func(t *testing.T) {
		in := pdfUpload("Doc")
		in.Filename = "malware.exe"
		in.MimeType = ""
		_, err := svc.Upload(ctx, owner, in, []byte("data"))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("disallowed mime type", func(t *testing.T) {
		in := pdfUpload("Doc")
		in.MimeType = "video/mp4"
		_, err := svc.Upload(ctx, owner, in, []byte("data"))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("mime type parameters are ignored", func(t *testing.T) {
		in := pdfUpload("Param Doc")
		in.MimeType = "application/pdf; charset=binary"
		_, err := svc.Upload(ctx, owner, in, []byte("data"))
		assert.NoError(t, err)
	})

	t.Run("empty mime type is accepted", func(t *testing.T) {
		in := pdfUpload("No Mime Doc")
		in.MimeType = ""
		_, err := svc.Upload(ctx, owner, in, []byte("data"))
		assert.NoError(t, err)
	})

	t.Run("oversized file", func(t *testing.T) {
		before := len(repo.docs)
		_, err := svc.Upload(ctx, owner, pdfUpload("Doc"), make([]byte, (1<<20)+1))
		assert.ErrorIs(t, err, ErrFileTooLarge)
		assert.Len(t, repo.docs, before, "nothing may be persisted")
		for path := range store.files {
			assert.NotContains(t, path, "Doc")
		}
	})
}

func TestAddVersion(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	v1, err := svc.Upload(ctx, owner, pdfUpload("Essay"), []byte("one"))
	require.NoError(t, err)
	v2, err := svc.AddVersion(ctx, owner, v1.ID, "essay-v2.pdf", "application/pdf", []byte("two"))
	require.NoError(t, err)

	assert.Equal(t, 2, v2.Version)
	assert.Equal(t, v1.ID, v2.ParentDocumentID)
	assert.True(t, v2.IsLatestVersion)
	assert.False(t, repo.docs[v1.ID].IsLatestVersion)

	// Adding through a non-latest member still appends to the chain head.
	v3, err := svc.AddVersion(ctx, owner, v1.ID, "essay-v3.pdf", "application/pdf", []byte("three"))
	require.NoError(t, err)
	assert.Equal(t, 3, v3.Version)
	require.Len(t, repo.latestOf(v1.ID), 1)

	versions, err := svc.Versions(ctx, owner, v1.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, 3, versions[0].Version)
	assert.Equal(t, 1, versions[2].Version)
}

func TestAddVersion_UnknownDocument(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.AddVersion(context.Background(), uuid.New(), uuid.New(), "f.pdf", "application/pdf", []byte("x"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddVersion_ForeignDocument(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, uuid.New(), pdfUpload("Essay"), []byte("one"))
	require.NoError(t, err)

	_, err = svc.AddVersion(ctx, uuid.New(), doc.ID, "f.pdf", "application/pdf", []byte("x"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_LatestPromotesPrevious(t *testing.T) {
	svc, repo, store := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	v1, err := svc.Upload(ctx, owner, pdfUpload("Essay"), []byte("one"))
	require.NoError(t, err)
	v2, err := svc.AddVersion(ctx, owner, v1.ID, "v2.pdf", "application/pdf", []byte("two"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, v2.ID, false))

	assert.NotContains(t, repo.docs, v2.ID)
	assert.NotContains(t, store.files, v2.FilePath)
	assert.True(t, repo.docs[v1.ID].IsLatestVersion, "previous version must be promoted")
	require.Len(t, repo.latestOf(v1.ID), 1)
}

func TestDelete_NonLatestKeepsLatest(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	v1, err := svc.Upload(ctx, owner, pdfUpload("Essay"), []byte("one"))
	require.NoError(t, err)
	v2, err := svc.AddVersion(ctx, owner, v1.ID, "v2.pdf", "application/pdf", []byte("two"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, v1.ID, false))

	assert.NotContains(t, repo.docs, v1.ID)
	assert.True(t, repo.docs[v2.ID].IsLatestVersion)
}

func TestDelete_AllVersions(t *testing.T) {
	svc, repo, store := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	v1, err := svc.Upload(ctx, owner, pdfUpload("Essay"), []byte("one"))
	require.NoError(t, err)
	_, err = svc.AddVersion(ctx, owner, v1.ID, "v2.pdf", "application/pdf", []byte("two"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, v1.ID, true))

	assert.Empty(t, repo.docs)
	assert.Empty(t, store.files)
}

func TestDelete_Unknown(t *testing.T) {
	svc, _, _ := newTestService()
	err := svc.Delete(context.Background(), uuid.New(), uuid.New(), false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_ReturnsOnlyLatestVersions(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	v1, err := svc.Upload(ctx, owner, pdfUpload("Essay"), []byte("one"))
	require.NoError(t, err)
	v2, err := svc.AddVersion(ctx, owner, v1.ID, "v2.pdf", "application/pdf", []byte("two"))
	require.NoError(t, err)

	docs, err := svc.List(ctx, owner, 10, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, v2.ID, docs[0].ID)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.0 KB", humanSize(1024))
	assert.Equal(t, "2.5 MB", humanSize(5<<20>>1))
}
