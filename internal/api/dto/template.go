package dto

type CreateTemplateRequest struct {
	Name string `json:"name" validate:"required,not_empty,max=255"`
}

type TemplateResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
