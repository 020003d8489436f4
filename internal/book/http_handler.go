package book

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"bookcatalog/internal/httpx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxPageSize = 100

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Create handles POST /api/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	created, err := h.svc.AddBook(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	httpx.JSONSuccessCreated(w, r, created)
}

// List handles GET /api/books?page=&size=
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 0 {
		page = 0
	}
	size, _ := strconv.Atoi(query.Get("size"))
	if size < 1 {
		size = DefaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	books, err := h.svc.GetAllBooks(r.Context(), page, size)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	httpx.JSONSuccess(w, r, books, map[string]interface{}{
		"page":  page,
		"size":  size,
		"count": len(books),
	})
}

// Update handles PUT /api/books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	updated, err := h.svc.UpdateBook(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err, fmt.Sprintf("Book not found with id %d", id))
		return
	}

	httpx.JSONSuccess(w, r, updated, nil)
}

// Delete handles DELETE /api/books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	message, err := h.svc.DeleteBook(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, fmt.Sprintf("Book not found with id %d", id))
		return
	}

	httpx.JSONSuccess(w, r, map[string]string{"message": message}, nil)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Book id must be an integer", nil)
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	var invalid *InvalidInputError
	switch {
	case errors.As(err, &invalid):
		details := make([]httpx.ErrorDetail, 0, len(invalid.Fields))
		for _, f := range invalid.Fields {
			details = append(details, httpx.ErrorDetail{Field: f.Field, Message: f.Message})
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
	case errors.Is(err, ErrNotFound):
		if notFoundMessage == "" {
			notFoundMessage = "Book not found"
		}
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", notFoundMessage, nil)
	case errors.Is(err, ErrStorage):
		httpx.JSONError(w, r, http.StatusInternalServerError, "STORAGE_ERROR", "Storage unavailable", nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
