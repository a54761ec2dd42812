// Package http реализует HTTP-обработчики коллекции участников,
// push-канал и служебные эндпоинты memberd.
package http

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// deleteErrorResponse — плоский формат ошибки DELETE-эндпоинта,
// который клиент разбирает напрямую: {"error": "..."}.
type deleteErrorResponse struct {
	Error string `json:"error"`
}
