// Package category provides HTTP handlers for category endpoints.
package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"content-hub/internal/domain/entity"
	"content-hub/internal/handler/http/pathutil"
	"content-hub/internal/handler/http/respond"
	catUC "content-hub/internal/usecase/category"
)

// DTO represents the JSON structure for category data transfer.
type DTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" example:"Photos"`
	Type       string    `json:"type" example:"IMAGE"`
	CoverImage string    `json:"coverImage,omitempty" example:"https://example.com/cover.png"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toDTO(c *entity.Category) DTO {
	return DTO{
		ID:         c.ID,
		Name:       c.Name,
		Type:       string(c.Type),
		CoverImage: c.CoverImage,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

type createRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type" enums:"IMAGE,VIDEO,TEXT"`
	CoverImage string `json:"coverImage"`
}

type updateRequest struct {
	Name       *string `json:"name"`
	Type       *string `json:"type" enums:"IMAGE,VIDEO,TEXT"`
	CoverImage *string `json:"coverImage"`
}

type ListHandler struct{ Svc *catUC.Service }

// ServeHTTP カテゴリ一覧
// @Summary      カテゴリ一覧
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} DTO
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /categories [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context())
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	out := make([]DTO, 0, len(list))
	for _, c := range list {
		out = append(out, toDTO(c))
	}
	respond.JSON(w, http.StatusOK, out)
}

type GetHandler struct{ Svc *catUC.Service }

// ServeHTTP カテゴリ取得
// @Summary      カテゴリ取得
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "カテゴリID"
// @Success      200 {object} DTO
// @Failure      404 {object} respond.ErrorBody "not found"
// @Router       /categories/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	c, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(c))
}

type CreateHandler struct{ Svc *catUC.Service }

// ServeHTTP カテゴリ作成
// @Summary      カテゴリ作成
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        category body createRequest true "カテゴリ情報"
// @Success      201 {object} DTO
// @Failure      400 {object} respond.ErrorBody "Bad request"
// @Failure      403 {object} respond.ErrorBody "Forbidden - ADMIN required"
// @Failure      409 {object} respond.ErrorBody "名前が重複"
// @Router       /categories [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	c, err := h.Svc.Create(r.Context(), catUC.CreateInput{
		Name:       req.Name,
		Type:       entity.ContentType(req.Type),
		CoverImage: req.CoverImage,
	})
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(c))
}

type UpdateHandler struct{ Svc *catUC.Service }

// ServeHTTP カテゴリ更新
// @Summary      カテゴリ更新
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "カテゴリID"
// @Param        category body updateRequest true "更新するフィールド"
// @Success      200 {object} DTO
// @Failure      400 {object} respond.ErrorBody "Bad request"
// @Failure      404 {object} respond.ErrorBody "not found"
// @Failure      409 {object} respond.ErrorBody "名前が重複"
// @Router       /categories/{id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	in := catUC.UpdateInput{Name: req.Name, CoverImage: req.CoverImage}
	if req.Type != nil {
		t := entity.ContentType(*req.Type)
		in.Type = &t
	}
	c, err := h.Svc.Update(r.Context(), id, in)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(c))
}

type DeleteHandler struct{ Svc *catUC.Service }

// ServeHTTP カテゴリ削除
// @Summary      カテゴリ削除
// @Description  コンテンツから参照されているカテゴリは削除できません
// @Tags         categories
// @Security     BearerAuth
// @Param        id path string true "カテゴリID"
// @Success      204 "No Content"
// @Failure      404 {object} respond.ErrorBody "not found"
// @Failure      409 {object} respond.ErrorBody "参照中"
// @Router       /categories/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.NoContent(w)
}

// Register registers the category routes.
func Register(mux *http.ServeMux, svc *catUC.Service) {
	mux.Handle("GET    /categories", ListHandler{svc})
	mux.Handle("GET    /categories/{id}", GetHandler{svc})
	mux.Handle("POST   /categories", CreateHandler{svc})
	mux.Handle("PATCH  /categories/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /categories/{id}", DeleteHandler{svc})
}
