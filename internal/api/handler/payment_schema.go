package handler

import "github.com/paydesk/payment-service/internal/core/domain"

type loginRequest struct {
	UserName string `query:"userName" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// payRequest keeps amount as text so a non-numeric value is reported by the
// handler rather than by the binder.
type payRequest struct {
	Method string `query:"method" validate:"required"`
	Amount string `query:"amount" validate:"required"`
}

type methodsResponse struct {
	Methods []string `json:"methods"`
}

type statsResponse struct {
	Methods []domain.MethodStats `json:"methods"`
}

type errorResponse struct {
	Error string `json:"error"`
}
