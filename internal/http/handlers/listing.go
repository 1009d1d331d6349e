package handlers

import (
	"net/http"

	"github.com/josecleyvison-eng/jau-emprega/internal/app"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/listing"
	"github.com/josecleyvison-eng/jau-emprega/internal/http/response"
)

type ListingHandler struct {
	listings *app.ListingService
}

func NewListingHandler(listings *app.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

type submitRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Salary      string `json:"salary"`
	Contact     string `json:"contact"`
	Whatsapp    string `json:"whatsapp,omitempty"`
	Category    string `json:"category,omitempty"`
}

type submitResponse struct {
	Message      string `json:"message"`
	ID           string `json:"id"`
	ChargeID     string `json:"charge_id,omitempty"`
	QRCode       string `json:"qr_code,omitempty"`
	QRCodeBase64 string `json:"qr_code_base64,omitempty"`
}

type statusRequest struct {
	State string `json:"state"`
}

type confirmationResponse struct {
	Message string `json:"message"`
}

// ListPublished serves the public feed: published listings, newest first.
func (h *ListingHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	items, err := h.listings.ListPublished(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []listing.Listing{}
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ListingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.listings.Submit(r.Context(), app.SubmitInput{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Salary:      req.Salary,
		Contact:     req.Contact,
		Whatsapp:    req.Whatsapp,
		Category:    req.Category,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	resp := submitResponse{
		Message: "Vaga enviada para analise!",
		ID:      result.Listing.ID.String(),
	}
	if result.Charge != nil {
		resp.Message = "Vaga recebida! Conclua o pagamento para envia-la para analise."
		resp.ChargeID = result.Charge.ID
		resp.QRCode = result.Charge.QRCode
		resp.QRCodeBase64 = result.Charge.QRCodeBase64
	}
	response.JSON(w, http.StatusCreated, resp)
}

func (h *ListingHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, listing.StatusPendingReview)
}

func (h *ListingHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, listing.StatusPublished)
}

func (h *ListingHandler) listByStatus(w http.ResponseWriter, r *http.Request, status listing.Status) {
	items, err := h.listings.ListByStatus(r.Context(), status)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []listing.Listing{}
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ListingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.listings.SetStatus(r.Context(), id, listing.Status(req.State))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, struct {
		Message string         `json:"message"`
		State   listing.Status `json:"state"`
	}{Message: "Status da vaga atualizado!", State: updated.Status})
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.listings.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, confirmationResponse{Message: "Vaga removida."})
}
