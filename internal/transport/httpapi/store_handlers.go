package httpapi

import (
	"net/http"

	"github.com/vladislavdragonenkov/eshop/internal/service/store"
)

type storeInfoRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

type storeInfoResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

func (s *Server) getStoreInfo(w http.ResponseWriter, _ *http.Request) {
	info, err := s.storeInfo.Get()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, storeInfoResponse{
		ID:      info.ID,
		Name:    info.Name,
		Address: info.Address,
		Phone:   info.Phone,
		Website: info.Website,
	})
}

func (s *Server) createStoreInfo(w http.ResponseWriter, r *http.Request) {
	var req storeInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id, err := s.storeInfo.Create(store.Input{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Website: req.Website,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) updateStoreInfo(w http.ResponseWriter, r *http.Request) {
	var req storeInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	err := s.storeInfo.Update(r.PathValue("id"), store.Input{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Website: req.Website,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
