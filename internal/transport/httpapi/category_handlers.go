package httpapi

import (
	"net/http"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
	"github.com/vladislavdragonenkov/eshop/internal/service/catalog"
)

type categoryRequest struct {
	Name         string  `json:"name"`
	ParentID     *string `json:"parentId"`
	ImageURL     *string `json:"imageUrl"`
	DisplayOrder int32   `json:"displayOrder"`
}

type categoryResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ParentID     *string `json:"parentId,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	DisplayOrder int32   `json:"displayOrder"`
}

type categoryNodeResponse struct {
	categoryResponse
	Children []categoryNodeResponse `json:"children"`
}

func toCategoryResponse(category domain.Category) categoryResponse {
	return categoryResponse{
		ID:           category.ID,
		Name:         category.Name,
		ParentID:     category.ParentID,
		ImageURL:     category.ImageURL,
		DisplayOrder: category.DisplayOrder,
	}
}

func toCategoryTreeResponse(nodes []domain.CategoryNode) []categoryNodeResponse {
	responses := make([]categoryNodeResponse, 0, len(nodes))
	for _, node := range nodes {
		responses = append(responses, categoryNodeResponse{
			categoryResponse: toCategoryResponse(node.Category),
			Children:         toCategoryTreeResponse(node.Children),
		})
	}
	return responses
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	tree, err := s.catalog.GetCategoryTree()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toCategoryTreeResponse(tree))
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id, err := s.catalog.CreateCategory(catalog.CategoryInput{
		Name:         req.Name,
		ParentID:     req.ParentID,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.catalog.GetCategory(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	err := s.catalog.UpdateCategory(r.PathValue("id"), catalog.CategoryInput{
		Name:         req.Name,
		ParentID:     req.ParentID,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteCategory(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
