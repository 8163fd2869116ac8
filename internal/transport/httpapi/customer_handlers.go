package httpapi

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
	"github.com/vladislavdragonenkov/eshop/internal/pagination"
	"github.com/vladislavdragonenkov/eshop/internal/service/customer"
)

type createCustomerRequest struct {
	Name       string `json:"name"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
}

type updateCustomerRequest struct {
	Name string `json:"name"`
}

type customerResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	City       string    `json:"city"`
	Street     string    `json:"street"`
	PostalCode string    `json:"postalCode"`
	CreatedAt  time.Time `json:"createdAt"`
}

type customerTotalResponse struct {
	CustomerID   string          `json:"customerId"`
	InvoiceCount int             `json:"invoiceCount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:         c.ID,
		Name:       c.Name,
		City:       c.Address.City,
		Street:     c.Address.Street,
		PostalCode: c.Address.PostalCode,
		CreatedAt:  c.CreatedAt,
	}
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.List()
	if err != nil {
		s.writeError(w, err)
		return
	}

	responses := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		responses = append(responses, toCustomerResponse(c))
	}

	page, size := pageParams(r)
	s.writeJSON(w, http.StatusOK, pagination.New(responses, page, size))
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id, err := s.customers.Create(customer.CreateInput{
		Name:       req.Name,
		City:       req.City,
		Street:     req.Street,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := s.customers.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toCustomerResponse(c))
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var req updateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.customers.UpdateName(r.PathValue("id"), req.Name); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := s.customers.Delete(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) customerTotal(w http.ResponseWriter, r *http.Request) {
	total, err := s.billing.CustomerTotal(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, customerTotalResponse{
		CustomerID:   total.CustomerID,
		InvoiceCount: total.InvoiceCount,
		TotalAmount:  total.TotalAmount,
	})
}
