package utils

import (
	"golang.org/x/text/language"
)

// Message keys used by the HTTP layer
const (
	MsgNotFound            = "errors.not_found"
	MsgValidation          = "errors.validation"
	MsgDuplicateEntry      = "errors.duplicate_entry"
	MsgAssetUpload         = "errors.asset_upload"
	MsgInvalidTransition   = "errors.invalid_transition"
	MsgUnauthorized        = "errors.unauthorized"
	MsgForbidden           = "errors.forbidden"
	MsgInternalServerError = "errors.internal_server_error"
	MsgInvalidCredentials  = "auth.invalid_credentials"
	MsgTooManyRequests     = "errors.too_many_requests"
)

type Translator interface {
	T(acceptLanguage, key string) string
}

// Translate falls back to the key itself when no translator is configured
func Translate(tr Translator, acceptLanguage, key string) string {
	if tr == nil {
		return key
	}
	return tr.T(acceptLanguage, key)
}

type CatalogTranslator struct {
	matcher  language.Matcher
	tags     []language.Tag
	messages map[language.Tag]map[string]string
}

func NewCatalogTranslator() *CatalogTranslator {
	messages := map[language.Tag]map[string]string{
		language.English: {
			MsgNotFound:            "Resource not found",
			MsgValidation:          "Validation failed",
			MsgDuplicateEntry:      "Duplicate entry or invalid relation",
			MsgAssetUpload:         "Image upload failed",
			MsgInvalidTransition:   "Status change not allowed",
			MsgUnauthorized:        "Authentication required",
			MsgForbidden:           "Insufficient permissions",
			MsgInternalServerError: "Internal server error",
			MsgInvalidCredentials:  "Invalid credentials",
			MsgTooManyRequests:     "Too many requests, please try again later",
		},
		language.Spanish: {
			MsgNotFound:            "Recurso no encontrado",
			MsgValidation:          "La validación falló",
			MsgDuplicateEntry:      "Registro duplicado o relación inválida",
			MsgAssetUpload:         "Error al subir la imagen",
			MsgInvalidTransition:   "Cambio de estado no permitido",
			MsgUnauthorized:        "Se requiere autenticación",
			MsgForbidden:           "Permisos insuficientes",
			MsgInternalServerError: "Error interno del servidor",
			MsgInvalidCredentials:  "Credenciales inválidas",
			MsgTooManyRequests:     "Demasiadas solicitudes, intente más tarde",
		},
	}

	// first tag is the fallback
	tags := []language.Tag{language.English, language.Spanish}
	return &CatalogTranslator{
		matcher:  language.NewMatcher(tags),
		tags:     tags,
		messages: messages,
	}
}

func (c *CatalogTranslator) T(acceptLanguage, key string) string {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		prefs = []language.Tag{language.English}
	}
	_, idx, _ := c.matcher.Match(prefs...)
	if msg, ok := c.messages[c.tags[idx]][key]; ok {
		return msg
	}
	return key
}
