package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tharun69CS/EcoFinds/internal/adapter/http/middleware"
	"github.com/tharun69CS/EcoFinds/internal/listing/domain"
	"github.com/tharun69CS/EcoFinds/internal/listing/usecase"
	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
)

type ListingHandler struct {
	listings *usecase.ListingUsecase
	logger   *logger.Logger
}

func NewListingHandler(listings *usecase.ListingUsecase, log *logger.Logger) *ListingHandler {
	return &ListingHandler{listings: listings, logger: log}
}

type createListingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
}

type updateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
}

// List handles GET /api/products with optional search, category and sort
// query parameters.
func (h *ListingHandler) List(c *gin.Context) {
	listings, err := h.listings.List(c.Request.Context(), c.Query("search"), c.Query("category"), c.Query("sort"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	respondSuccess(c, http.StatusOK, out)
}

func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, toListingResponse(listing))
}

func (h *ListingHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized"})
		return
	}

	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	listing, err := h.listings.Create(c.Request.Context(), identity, domain.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, toListingResponse(listing))
}

func (h *ListingHandler) Update(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized"})
		return
	}

	var req updateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	input := domain.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if req.Category != nil {
		category := domain.Category(*req.Category)
		input.Category = &category
	}

	listing, err := h.listings.Update(c.Request.Context(), identity, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, toListingResponse(listing))
}

func (h *ListingHandler) Delete(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized"})
		return
	}

	if err := h.listings.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
