package transport

import (
	"net/http"

	"stockroom/internal/middleware"
	"stockroom/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateCategoryRequest is the category creation payload. ParentCategoryID is
// empty for root categories.
type CreateCategoryRequest struct {
	Name             string `json:"name" validate:"required"`
	ParentCategoryID string `json:"parent_category_id,omitempty"`
}

// UpdateCategoryRequest is the partial category update payload.
type UpdateCategoryRequest struct {
	Name             *string `json:"name,omitempty"`
	ParentCategoryID *string `json:"parent_category_id,omitempty"`
}

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// RegisterRoutes registers all category routes. Mutating routes are wrapped
// with guard.
func (h *CategoryHandler) RegisterRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{categoryID}", h.GetByID)
		r.Get("/{categoryID}/subcategories", h.ListSubcategories)

		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Post("/", h.Create)
			r.Patch("/{categoryID}", h.Update)
			r.Delete("/{categoryID}", h.Delete)
		})
	})
}

// Create handles category creation.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !decodeOrRespond(w, r, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), service.CreateCategoryInput{
		Name:             req.Name,
		ParentCategoryID: req.ParentCategoryID,
	})
	if err != nil {
		h.logger.Debug("Category creation failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// List returns all categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.GetAllCategories(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// GetByID returns a single category.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	category, err := h.categoryService.GetCategoryByID(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// ListSubcategories returns the direct children of a category.
func (h *CategoryHandler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.GetSubcategories(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// Update applies a partial category update.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if !decodeOrRespond(w, r, &req) {
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), chi.URLParam(r, "categoryID"), service.UpdateCategoryInput{
		Name:             req.Name,
		ParentCategoryID: req.ParentCategoryID,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Delete removes a category.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categoryService.DeleteCategory(r.Context(), chi.URLParam(r, "categoryID")); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
