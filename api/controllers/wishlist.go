package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verdantly/verdantly-backend/api/middleware"
	"github.com/verdantly/verdantly-backend/api/responses"
	"github.com/verdantly/verdantly-backend/api/validators"
	"github.com/verdantly/verdantly-backend/internal/wishlist"
	"github.com/verdantly/verdantly-backend/pkg/logger"
)

type addWishlistItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

func ListWishlist(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		items, err := svc.List(ctx, middleware.SessionID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

func AddWishlistItem(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req addWishlistItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := svc.Add(ctx, middleware.SessionID(ctx), req.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"items": items})
	}
}

func RemoveWishlistItem(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		items, err := svc.Remove(ctx, middleware.SessionID(ctx), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}
