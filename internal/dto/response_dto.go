package dto

// BaseResponse is the envelope every Session Authority and Resource Store
// endpoint answers with.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}
