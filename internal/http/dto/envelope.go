package dto

// Response is the uniform envelope every endpoint answers with.
type Response struct {
	Result  bool   `json:"result"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func OK(message string, data any) Response {
	return Response{Result: true, Message: message, Data: data}
}

func Fail(message string) Response {
	return Response{Result: false, Message: message}
}
