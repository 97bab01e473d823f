// File: internal/api/response.go
package api

// Response 成功回應包封
// swagger:model api.Response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK 建立成功回應
func OK(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// ErrorResponse 失敗回應包封
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Success bool `json:"success"`
	// Error 錯誤描述
	Error string `json:"error"`
	// Details 欄位層級的驗證錯誤
	Details []FieldError `json:"details,omitempty"`
	// RetryAfter 被限流時的建議等待分鐘數
	RetryAfter int `json:"retryAfter,omitempty"`
}

// FieldError 單一欄位的驗證錯誤
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error 建立失敗回應
func Error(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}
