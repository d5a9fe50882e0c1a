// Package user provides HTTP handlers for registration and user lookup.
package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"content-hub/internal/domain/entity"
	"content-hub/internal/handler/http/pathutil"
	"content-hub/internal/handler/http/respond"
	userUC "content-hub/internal/usecase/user"
)

// DTO represents a user. The password hash is never serialized.
type DTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username" example:"alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	UserType  string    `json:"userType" example:"CREATOR"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toDTO(u *entity.User) DTO {
	return DTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		UserType:  string(u.UserType),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType" enums:"ADMIN,CREATOR,READER"`
}

type RegisterHandler struct{ Svc *userUC.Service }

// ServeHTTP ユーザー登録
// @Summary      ユーザー登録
// @Description  パスワードは 8 文字以上。ユーザー名またはメールアドレスが重複している場合は 409
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user body registerRequest true "登録情報"
// @Success      201 {object} DTO
// @Failure      400 {object} respond.ErrorBody "Bad request"
// @Failure      409 {object} respond.ErrorBody "重複"
// @Router       /users/register [post]
func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	u, err := h.Svc.Register(r.Context(), userUC.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		UserType: entity.UserType(req.UserType),
	})
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(u))
}

type GetHandler struct{ Svc *userUC.Service }

// ServeHTTP ユーザー取得
// @Summary      ユーザー取得
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "ユーザーID"
// @Success      200 {object} DTO
// @Failure      403 {object} respond.ErrorBody "Forbidden - ADMIN required"
// @Failure      404 {object} respond.ErrorBody "not found"
// @Router       /users/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	u, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(u))
}

type ListHandler struct{ Svc *userUC.Service }

// ServeHTTP ユーザー一覧
// @Summary      ユーザー一覧
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} DTO
// @Failure      403 {object} respond.ErrorBody "Forbidden - ADMIN required"
// @Router       /users [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context())
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	out := make([]DTO, 0, len(list))
	for _, u := range list {
		out = append(out, toDTO(u))
	}
	respond.JSON(w, http.StatusOK, out)
}

// Register registers the user routes.
func Register(mux *http.ServeMux, svc *userUC.Service) {
	mux.Handle("POST   /users/register", RegisterHandler{svc})
	mux.Handle("GET    /users", ListHandler{svc})
	mux.Handle("GET    /users/{id}", GetHandler{svc})
}
