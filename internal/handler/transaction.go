package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/pkg/response"
)

type TransactionHandler struct {
	service   TransactionService
	validator *validator.Validate
}

func NewTransactionHandler(service TransactionService, validate *validator.Validate) *TransactionHandler {
	return &TransactionHandler{
		service:   service,
		validator: validate,
	}
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateTransactionRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	transaction, err := h.service.Create(r.Context(), &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, transaction)
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r.URL.Query())
	if err != nil {
		response.BadRequest(w, "Invalid query parameters", err)
		return
	}

	if err := h.validator.Struct(filter); err != nil {
		response.FromError(w, customError.WrapValidationError(err))
		return
	}

	page, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, page)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	transaction, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, transaction)
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var request domain.UpdateTransactionRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	transaction, err := h.service.Update(r.Context(), id, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, transaction)
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// parseTransactionFilter reads the list filters from the query string on top
// of the default paging and ordering
func parseTransactionFilter(query url.Values) (domain.TransactionFilter, error) {
	filter := domain.NewTransactionFilter()

	if raw := query.Get("type"); raw != "" {
		value := domain.TransactionType(raw)
		filter.Type = &value
	}

	if raw := query.Get("payment_status"); raw != "" {
		value := domain.PaymentStatus(raw)
		filter.PaymentStatus = &value
	}

	if raw := query.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("category_id: %w", err)
		}
		filter.CategoryID = &id
	}

	for name, target := range map[string]**domain.Date{
		"start_date": &filter.StartDate,
		"end_date":   &filter.EndDate,
	} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		date, err := domain.ParseDate(raw)
		if err != nil {
			return filter, fmt.Errorf("%s: %w", name, err)
		}
		*target = &date
	}

	filter.CompetencyPeriod = query.Get("competency_period")
	filter.Search = query.Get("search")

	for name, target := range map[string]*int{
		"page":  &filter.Page,
		"limit": &filter.Limit,
	} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("%s: %w", name, err)
		}
		*target = value
	}

	if raw := query.Get("sort_by"); raw != "" {
		filter.SortBy = raw
	}
	if raw := query.Get("sort_order"); raw != "" {
		filter.SortOrder = raw
	}

	return filter, nil
}
