package dto

type ValidationError struct {
	Field   string `json:"field" example:"query"`
	Message string `json:"message" example:"query is required"`
}
