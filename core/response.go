package core

type ResponseBase[T any] struct {
	Status  string `json:"status"`
	Content T      `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}
