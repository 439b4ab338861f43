package dto

type ClassifyRequest struct {
	Message string `json:"message"`
}

type ClassifyResponse struct {
	Category string `json:"category"`
}
