package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/stockd/stockd/internal/errors"
	"github.com/stockd/stockd/internal/utils"
	"github.com/stockd/stockd/products"
)

type productCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
}

// productUpdateRequest uses pointer fields so a PUT can carry a subset of
// fields; omitted fields keep their stored values.
type productUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Quantity    *int    `json:"quantity" validate:"omitempty,gte=0"`
}

// ProductListHandler returns all products, newest first.
// Endpoint: GET /api/products/
func (s *Server) ProductListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Products.List(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("product list failed")
			respondDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// ProductCreateHandler creates a product owned by the authenticated user.
// Endpoint: POST /api/products/
func (s *Server) ProductCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := s.validate.Struct(req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Name and price are required")
			return
		}

		if err := products.ValidatePrice(req.Price); err != nil {
			respondDetail(w, http.StatusBadRequest, err.Error())
			return
		}

		creator, err := s.repos.Users.Get(r.Context(), userIDFromContext(r.Context()))
		if err != nil {
			respondDetail(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		now := time.Now()
		product := &products.Product{
			ID:           uuid.New().String(),
			Name:         req.Name,
			Description:  req.Description,
			Price:        req.Price,
			Quantity:     req.Quantity,
			CreatorID:    creator.ID,
			CreatorEmail: creator.Email,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := s.repos.Products.Create(r.Context(), product); err != nil {
			log.Error().Err(err).Msg("product create failed")
			respondDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondJSON(w, http.StatusCreated, product)
	}
}

// ProductGetHandler returns a single product.
// Endpoint: GET /api/products/{id}/
func (s *Server) ProductGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := s.repos.Products.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			s.respondProductError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, product)
	}
}

// ProductUpdateHandler applies a partial update to a product. Only the
// creator may update it.
// Endpoint: PUT /api/products/{id}/
func (s *Server) ProductUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := s.repos.Products.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			s.respondProductError(w, err)
			return
		}

		if product.CreatorID != userIDFromContext(r.Context()) {
			respondDetail(w, http.StatusForbidden, "You can only update your own products")
			return
		}

		var req productUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := s.validate.Struct(req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Quantity must not be negative")
			return
		}

		if req.Price != nil {
			if err := products.ValidatePrice(*req.Price); err != nil {
				respondDetail(w, http.StatusBadRequest, err.Error())
				return
			}
			product.Price = *req.Price
		}
		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Quantity != nil {
			product.Quantity = utils.Value(req.Quantity)
		}
		product.UpdatedAt = time.Now()

		if err := s.repos.Products.Update(r.Context(), product); err != nil {
			s.respondProductError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, product)
	}
}

// ProductDeleteHandler deletes a product. Only the creator may delete it.
// Endpoint: DELETE /api/products/{id}/
func (s *Server) ProductDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := s.repos.Products.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			s.respondProductError(w, err)
			return
		}

		if product.CreatorID != userIDFromContext(r.Context()) {
			respondDetail(w, http.StatusForbidden, "You can only delete your own products")
			return
		}

		if err := s.repos.Products.Delete(r.Context(), product.ID); err != nil {
			s.respondProductError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) respondProductError(w http.ResponseWriter, err error) {
	if apperrors.Is(err, apperrors.ErrProductNotFound) {
		respondDetail(w, http.StatusNotFound, "Not found")
		return
	}
	log.Error().Err(err).Msg("product operation failed")
	respondDetail(w, http.StatusInternalServerError, "Internal server error")
}
