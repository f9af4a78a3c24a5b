package handlers

import (
	"net/http"

	portssvc "github.com/centbook/centbook_backend/internal/core/ports/services"
	"github.com/centbook/centbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// DocumentHandler handles document metadata CRUD.
type DocumentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(ds portssvc.DocumentSvcFacade) *DocumentHandler {
	return &DocumentHandler{documentService: ds}
}

// registerDocumentRoutes sets up the routes for document management.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := NewDocumentHandler(documentService)
	documents := rg.Group("/documents")
	{
		documents.POST("", h.CreateDocument)
		documents.GET("", h.ListDocuments)
		documents.GET("/:id", h.GetDocument)
		documents.DELETE("/:id", h.DeleteDocument)
	}
}

// CreateDocument godoc
// @Summary Register a document
// @Description Registers metadata for a file already uploaded to external storage.
// @Tags documents
// @Accept json
// @Produce json
// @Param document body dto.CreateDocumentRequest true "Document metadata"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	doc, err := h.documentService.CreateDocument(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// ListDocuments godoc
// @Summary List documents
// @Tags documents
// @Produce json
// @Success 200 {array} dto.DocumentResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	docs, err := h.documentService.ListDocuments(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListDocumentResponse(docs))
}

// GetDocument godoc
// @Summary Get document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// DeleteDocument godoc
// @Summary Delete document
// @Description Deletes the document metadata and any transaction links.
// @Tags documents
// @Param id path string true "Document ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.documentService.DeleteDocument(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
