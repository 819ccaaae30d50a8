package dto

import "tawzif_backend/internal/cv"

type RenderCVRequest struct {
	TemplateID string   `json:"template_id" validate:"required,is-cv-template"`
	Data       *cv.Data `json:"data" validate:"required"`
}

type CVPDFRequest struct {
	RenderCVRequest
	FileName string `json:"file_name" validate:"max=120"`
}

// GeneratePDFRequest - поля в camelCase, их шлёт фронтенд
type GeneratePDFRequest struct {
	HTMLContent string `json:"htmlContent"`
	FileName    string `json:"fileName"`
}

type RecaptchaRequest struct {
	Token string `json:"token"`
}
