package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
	"github.com/vladislavdragonenkov/eshop/internal/service/billing"
)

type lineRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type createInvoiceRequest struct {
	CustomerID    string        `json:"customerId"`
	Date          *time.Time    `json:"date"`
	PaymentMethod string        `json:"paymentMethod"`
	Items         []lineRequest `json:"items"`
}

type updateInvoiceRequest struct {
	CustomerID    string        `json:"customerId"`
	Date          time.Time     `json:"date"`
	Status        string        `json:"status"`
	PaymentMethod string        `json:"paymentMethod"`
	Items         []lineRequest `json:"items"`
}

type updateInvoiceItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type invoiceItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type invoiceResponse struct {
	ID            string                `json:"id"`
	CustomerID    string                `json:"customerId"`
	Date          time.Time             `json:"date"`
	PaymentMethod string                `json:"paymentMethod"`
	Status        string                `json:"status"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	Items         []invoiceItemResponse `json:"items"`
}

func toInvoiceResponse(view billing.InvoiceView) invoiceResponse {
	items := make([]invoiceItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, invoiceItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return invoiceResponse{
		ID:            view.ID,
		CustomerID:    view.CustomerID,
		Date:          view.Date,
		PaymentMethod: string(view.PaymentMethod),
		Status:        string(view.Status),
		TotalAmount:   view.TotalAmount,
		Items:         items,
	}
}

func toInvoiceResponses(views []billing.InvoiceView) []invoiceResponse {
	responses := make([]invoiceResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, toInvoiceResponse(view))
	}
	return responses
}

func toLineInputs(lines []lineRequest) []billing.LineInput {
	inputs := make([]billing.LineInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, billing.LineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return inputs
}

// parseFilterTime принимает RFC3339 и короткую форму YYYY-MM-DD.
func parseFilterTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", raw, err)
	}
	return t, nil
}

func (s *Server) listInvoices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter domain.InvoiceFilter
	filtered := false
	if v := query.Get("customerId"); v != "" {
		filter.CustomerID = &v
		filtered = true
	}
	if v := query.Get("from"); v != "" {
		t, err := parseFilterTime(v)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		filter.From = &t
		filtered = true
	}
	if v := query.Get("to"); v != "" {
		t, err := parseFilterTime(v)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		filter.To = &t
		filtered = true
	}

	var (
		views []billing.InvoiceView
		err   error
	)
	if filtered {
		views, err = s.billing.ListFiltered(filter)
	} else {
		views, err = s.billing.ListInvoices()
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toInvoiceResponses(views))
}

func (s *Server) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	input := billing.CreateInvoiceInput{
		CustomerID: req.CustomerID,
		Items:      toLineInputs(req.Items),
	}
	if req.Date != nil {
		input.Date = *req.Date
	}
	if req.PaymentMethod != "" {
		method, err := domain.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			s.writeError(w, err)
			return
		}
		input.PaymentMethod = method
	}

	id, err := s.billing.CreateInvoice(input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) getInvoice(w http.ResponseWriter, r *http.Request) {
	view, err := s.billing.GetInvoice(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toInvoiceResponse(view))
}

func (s *Server) updateInvoice(w http.ResponseWriter, r *http.Request) {
	var req updateInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	status, err := domain.ParseInvoiceStatus(req.Status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		s.writeError(w, err)
		return
	}

	err = s.billing.UpdateInvoice(billing.UpdateInvoiceInput{
		ID:            r.PathValue("id"),
		CustomerID:    req.CustomerID,
		Date:          req.Date,
		Status:        status,
		PaymentMethod: method,
		Items:         toLineInputs(req.Items),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := s.billing.DeleteInvoice(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listInvoiceItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.billing.InvoiceItems(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	responses := make([]invoiceItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, invoiceItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	s.writeJSON(w, http.StatusOK, responses)
}

func (s *Server) updateInvoiceItem(w http.ResponseWriter, r *http.Request) {
	var req updateInvoiceItemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	err := s.billing.UpdateItem(billing.UpdateItemInput{
		ID:        r.PathValue("id"),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteInvoiceItem(w http.ResponseWriter, r *http.Request) {
	if err := s.billing.DeleteItem(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
