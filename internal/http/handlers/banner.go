package handlers

import (
	"net/http"
	"strconv"

	"github.com/josecleyvison-eng/jau-emprega/internal/app"
	"github.com/josecleyvison-eng/jau-emprega/internal/common"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/banner"
	"github.com/josecleyvison-eng/jau-emprega/internal/http/response"
)

type BannerHandler struct {
	banners *app.BannerService
}

func NewBannerHandler(banners *app.BannerService) *BannerHandler {
	return &BannerHandler{banners: banners}
}

type bannerRequest struct {
	Image    string `json:"image"`
	Position int    `json:"position"`
}

func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.banners.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []banner.Banner{}
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *BannerHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req bannerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	saved, err := h.banners.Upsert(r.Context(), banner.Banner{Image: req.Image, Position: req.Position})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, saved)
}

func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(pathSegment(r, 1))
	if err != nil {
		response.Error(w, common.NewValidationError("invalid position", map[string]string{"position": "position must be an integer"}))
		return
	}
	if err := h.banners.DeleteByPosition(r.Context(), position); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, confirmationResponse{Message: "Banner removido."})
}
