package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"
	"unicode"

	"tawzif_backend/internal/clients/pdf"
	"tawzif_backend/internal/cv"
	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/services/dto"
	"tawzif_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultPDFName = "cv.pdf"

// PDFRenderer - внешний сервис HTML -> PDF
type PDFRenderer interface {
	Render(ctx context.Context, html, fileName string) ([]byte, error)
}

type CVHandler struct {
	*BaseHandler
	assembler *cv.Assembler
	renderer  PDFRenderer
	archive   storage.Storage // nil - архив выключен
}

func NewCVHandler(base *BaseHandler, assembler *cv.Assembler, renderer PDFRenderer, archive storage.Storage) *CVHandler {
	return &CVHandler{BaseHandler: base, assembler: assembler, renderer: renderer, archive: archive}
}

func (h *CVHandler) GetTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": cv.Templates()})
}

// RenderPreview - HTML для предпросмотра в конструкторе
func (h *CVHandler) RenderPreview(c *gin.Context) {
	var req dto.RenderCVRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	html, err := h.assembler.Render(req.Data, req.TemplateID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GeneratePDF - прокси к сервису рендеринга. Тела ответов фиксированы, их разбирает фронтенд.
func (h *CVHandler) GeneratePDF(c *gin.Context) {
	var req dto.GeneratePDFRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.HTMLContent) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "htmlContent is required"})
		return
	}
	h.renderPDF(c, req.HTMLContent, req.FileName)
}

// GenerateCVPDF собирает HTML по шаблону и отправляет в рендер
func (h *CVHandler) GenerateCVPDF(c *gin.Context) {
	var req dto.CVPDFRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	html, err := h.assembler.Render(req.Data, req.TemplateID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.renderPDF(c, html, req.FileName)
}

func (h *CVHandler) renderPDF(c *gin.Context, html, requestedName string) {
	ctx := c.Request.Context()
	fileName := SanitizePDFName(requestedName)

	doc, err := h.renderer.Render(ctx, html, fileName)
	if err != nil {
		var upstream *pdf.RenderServiceError
		switch {
		case errors.Is(err, pdf.ErrNotConfigured):
			logger.CtxError(ctx, "pdf render service key is not configured", "key", "pdf.api_key")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "PDF service is not configured"})
		case errors.As(err, &upstream):
			logger.CtxWarn(ctx, "pdf render service rejected document", "status", upstream.Status, "details", upstream.Message)
			c.JSON(upstream.Status, gin.H{"error": "Failed to generate PDF", "details": upstream.Message})
		default:
			logger.CtxWithError(ctx, "pdf render service call failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		}
		return
	}

	h.archivePDF(ctx, doc)

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// archivePDF - копия в хранилище, ошибка на ответ не влияет
func (h *CVHandler) archivePDF(ctx context.Context, doc []byte) {
	if h.archive == nil {
		return
	}
	key := "cv/" + time.Now().UTC().Format(time.DateOnly) + "/" + uuid.NewString() + ".pdf"
	if err := h.archive.Put(ctx, key, bytes.NewReader(doc), "application/pdf"); err != nil {
		logger.CtxWarn(ctx, "cv archive failed", "key", key, "error", err.Error())
	}
}

// SanitizePDFName оставляет только имя файла без пути и управляющих символов, с расширением .pdf
func SanitizePDFName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == '"' || r == ';' {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)

	if name == "" || name == "." || name == "/" || name == ".." {
		return defaultPDFName
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
