// AngelaMos | 2026
// handler.go

package customer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/loyalty-backend/internal/core"
)

const (
	resourceName = "Customer"

	msgInvalidBody         = "invalid request body"
	msgInvalidAmount       = "Invalid purchase amount"
	msgInvalidEmail        = "Invalid email address"
	msgEmailAlreadyPresent = "Customer already has an email address"

	customerIDParam      = "customerID"
	customerRoutePattern = "/customers/{" + customerIDParam + "}"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route(customerRoutePattern, func(r chi.Router) {
		r.Get("/", h.GetCustomer)
		r.Post("/purchase", h.RecordPurchase)
		r.Patch("/preferences", h.UpdatePreferences)
		r.Patch("/update-email", h.UpdateEmail)
	})
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(r)
	if !ok {
		core.NotFound(w, resourceName)
		return
	}

	c, err := h.service.GetCustomer(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToCustomerResponse(c))
}

func (h *Handler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(r)
	if !ok {
		core.NotFound(w, resourceName)
		return
	}

	var req PurchaseRequest
	if err := DecodeBody(r.Body, &req); err != nil {
		core.BadRequest(w, msgInvalidBody)
		return
	}

	res, err := h.service.RecordPurchase(r.Context(), id, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToPurchaseResponse(res))
}

func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(r)
	if !ok {
		core.NotFound(w, resourceName)
		return
	}

	var patch PreferencesPatch
	if err := DecodeBody(r.Body, &patch); err != nil {
		core.BadRequest(w, msgInvalidBody)
		return
	}

	c, err := h.service.UpdatePreferences(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToCustomerResponse(c))
}

func (h *Handler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(r)
	if !ok {
		core.NotFound(w, resourceName)
		return
	}

	var req EmailBackfillRequest
	if err := DecodeBody(r.Body, &req); err != nil {
		core.BadRequest(w, msgInvalidBody)
		return
	}

	c, err := h.service.BackfillEmail(r.Context(), id, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, EmailUpdateResponse{
		Message:  MessageEmailUpdated,
		Customer: ToCustomerResponse(c),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resourceName)
	case errors.Is(err, ErrInvalidPurchaseAmount):
		core.JSONError(w, core.ValidationError(msgInvalidAmount))
	case errors.Is(err, ErrInvalidEmail):
		core.JSONError(w, core.ValidationError(msgInvalidEmail))
	case errors.Is(err, ErrEmailAlreadyPresent):
		core.JSONError(w, core.PreconditionError(msgEmailAlreadyPresent))
	default:
		core.InternalServerError(w, err)
	}
}

// customerID parses the id URL segment. Non-numeric ids never match a
// customer and are reported as not found.
func customerID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, customerIDParam))
	if err != nil {
		return 0, false
	}
	return id, true
}
