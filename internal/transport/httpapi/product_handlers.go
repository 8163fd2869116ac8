package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/eshop/internal/pagination"
	"github.com/vladislavdragonenkov/eshop/internal/service/catalog"
)

type productRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int32           `json:"stock"`
	CategoryID  *string         `json:"categoryId"`
	Description string          `json:"description"`
}

type productResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int32           `json:"stock"`
	CategoryID   *string         `json:"categoryId,omitempty"`
	CategoryName *string         `json:"categoryName,omitempty"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type createdResponse struct {
	ID string `json:"id"`
}

func toProductResponse(view catalog.ProductView) productResponse {
	return productResponse{
		ID:           view.ID,
		Name:         view.Name,
		Price:        view.Price,
		Stock:        view.Stock,
		CategoryID:   view.CategoryID,
		CategoryName: view.CategoryName,
		Description:  view.Description,
		CreatedAt:    view.CreatedAt,
		UpdatedAt:    view.UpdatedAt,
	}
}

// pageParams читает page и pageSize из query-строки. Невалидные значения
// нормализует pagination.New.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = pagination.DefaultPageSize
	}
	return page, size
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	views, err := s.catalog.GetProducts()
	if err != nil {
		s.writeError(w, err)
		return
	}

	responses := make([]productResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, toProductResponse(view))
	}

	page, size := pageParams(r)
	s.writeJSON(w, http.StatusOK, pagination.New(responses, page, size))
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id, err := s.catalog.CreateProduct(catalog.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	view, err := s.catalog.GetProduct(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProductResponse(view))
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	err := s.catalog.UpdateProduct(r.PathValue("id"), catalog.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteProduct(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) assignProductCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.AssignProductToCategory(r.PathValue("id"), r.PathValue("categoryID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
