package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/unipath/backend/api/http/presenter"
	"github.com/unipath/backend/pkg/document"
)

// DocumentHandler serves the versioned document workspace.
type DocumentHandler struct {
	uc document.UseCase
	// Limit on bytes read into memory from an upload.
	maxBytes int64
}

func NewDocumentHandler(uc document.UseCase, maxBytes int64) *DocumentHandler {
	return &DocumentHandler{uc: uc, maxBytes: maxBytes}
}

// Upload registers a new document or, when a document with the same
// name/type already exists for the user, the next version in its chain.
// @Summary Upload a document
// @Tags    documents
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "document file"
// @Param   name formData string false "display name (defaults to the filename)"
// @Param   type formData string true "document type"
// @Param   university formData string false "target university, defaults to All"
// @Param   description formData string false "free-text description"
// @Security BearerAuth
// @Success 201 {object} document.Document
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 413 {object} presenter.ErrorResponse
// @Router  /documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, document.ErrMissingFile.Error())
	}
	data, err := readUpload(fh, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusRequestEntityTooLarge, err.Error())
	}

	in := document.UploadInput{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Type:        document.Type(strings.TrimSpace(c.FormValue("type"))),
		University:  strings.TrimSpace(c.FormValue("university")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Filename:    fh.Filename,
		MimeType:    fh.Header.Get("Content-Type"),
	}
	doc, err := h.uc.Upload(c.Context(), ownerID, in, data)
	if err != nil {
		return documentError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, doc)
}

// AddVersion appends a new version to an existing document chain.
// @Summary Upload a new version of an existing document
// @Tags    documents
// @Accept  multipart/form-data
// @Produce json
// @Param   id path string true "existing document ID (UUID)"
// @Param   file formData file true "document file"
// @Security BearerAuth
// @Success 201 {object} document.Document
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /documents/{id}/versions [post]
func (h *DocumentHandler) AddVersion(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, document.ErrMissingFile.Error())
	}
	data, err := readUpload(fh, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusRequestEntityTooLarge, err.Error())
	}
	doc, err := h.uc.AddVersion(c.Context(), ownerID, id, fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		return documentError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, doc)
}

// @Summary List documents
// @Description Returns the latest version of each of the user's document chains.
// @Tags    documents
// @Produce json
// @Security BearerAuth
// @Success 200 {array} document.Document
// @Router  /documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	limit, offset := parseLimitOffset(c, 50)
	docs, err := h.uc.List(c.Context(), ownerID, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list documents")
	}
	if docs == nil {
		docs = []document.Document{}
	}
	return presenter.JSON(c, http.StatusOK, docs)
}

// @Summary Get document by ID
// @Tags    documents
// @Produce json
// @Param   id path string true "document ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} document.Document
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	doc, err := h.uc.Get(c.Context(), ownerID, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "document not found")
	}
	return presenter.JSON(c, http.StatusOK, doc)
}

// @Summary List versions of a document's chain
// @Tags    documents
// @Produce json
// @Param   id path string true "document ID (UUID)"
// @Security BearerAuth
// @Success 200 {array} document.Document
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /documents/{id}/versions [get]
func (h *DocumentHandler) Versions(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	versions, err := h.uc.Versions(c.Context(), ownerID, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "document not found")
	}
	return presenter.JSON(c, http.StatusOK, versions)
}

// @Summary Delete a document version or its whole chain
// @Tags    documents
// @Param   id path string true "document ID (UUID)"
// @Param   allVersions query bool false "delete every version in the chain"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	allVersions := c.QueryBool("allVersions")
	if err := h.uc.Delete(c.Context(), ownerID, id, allVersions); err != nil {
		return documentError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func documentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, document.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "document not found")
	case errors.Is(err, document.ErrMissingFile),
		errors.Is(err, document.ErrUnsupportedType),
		errors.Is(err, document.ErrValidation):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, document.ErrFileTooLarge):
		return presenter.Error(c, http.StatusRequestEntityTooLarge, err.Error())
	default:
		return presenter.Error(c, http.StatusInternalServerError, "failed to process document")
	}
}

func readUpload(fh *multipart.FileHeader, max int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, document.ErrMissingFile
	}
	defer f.Close()
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, document.ErrFileTooLarge
	}
	return b, nil
}
