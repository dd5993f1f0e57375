package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/pkg/response"
)

type CategoryHandler struct {
	service   CategoryService
	validator *validator.Validate
}

func NewCategoryHandler(service CategoryService, validate *validator.Validate) *CategoryHandler {
	return &CategoryHandler{
		service:   service,
		validator: validate,
	}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateCategoryRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	category, err := h.service.Create(r.Context(), &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, category)
}

// List returns categories ordered for display, optionally narrowed by ?type=
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var categoryType *domain.CategoryType
	if raw := r.URL.Query().Get("type"); raw != "" {
		value := domain.CategoryType(raw)
		if value != domain.CategoryTypeIncome && value != domain.CategoryTypeExpense {
			response.BadRequest(w, "type must be income or expense", nil)
			return
		}
		categoryType = &value
	}

	categories, err := h.service.List(r.Context(), categoryType)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	category, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var request domain.UpdateCategoryRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	category, err := h.service.Update(r.Context(), id, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *CategoryHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var request domain.ReorderCategoriesRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	if err := h.service.Reorder(r.Context(), &request); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// SeedDefaults installs the default category set on an empty installation
func (h *CategoryHandler) SeedDefaults(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.SeedDefaults(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, categories)
}
