package httpapi

import (
	"net/http"
	"time"

	"github.com/vladislavdragonenkov/eshop/internal/service/user"
)

type registerUserRequest struct {
	Name     string `json:"name"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(view user.View) userResponse {
	return userResponse{
		ID:        view.ID,
		Name:      view.Name,
		UserName:  view.UserName,
		Email:     view.Email,
		Role:      view.Role,
		CreatedAt: view.CreatedAt,
	}
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id, err := s.users.Register(user.RegisterInput{
		Name:     req.Name,
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) loginUser(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	view, err := s.users.Login(req.UserName, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toUserResponse(view))
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	views, err := s.users.List()
	if err != nil {
		s.writeError(w, err)
		return
	}

	responses := make([]userResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, toUserResponse(view))
	}
	s.writeJSON(w, http.StatusOK, responses)
}
