package models

type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func SuccessResponse(data interface{}, message string) Response {
	return Response{
		Status:  true,
		Message: message,
		Data:    data,
	}
}

func MessageResponse(message string) Response {
	return Response{Status: true, Message: message}
}

func ErrorResponse(message string) Response {
	return Response{
		Status:  false,
		Message: message,
	}
}

func ValidationResponse(errors interface{}) Response {
	return Response{
		Status:  false,
		Message: "Validation failed",
		Errors:  errors,
	}
}

// Page carries the pagination fields list endpoints add next to their payload.
type Page struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

func NewPage(page, limit int, total int64) Page {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Page{CurrentPage: page, TotalPages: pages, TotalItems: total}
}
