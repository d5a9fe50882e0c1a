// Package topic provides HTTP handlers for topics and their category associations.
package topic

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"content-hub/internal/domain/entity"
	"content-hub/internal/handler/http/pathutil"
	"content-hub/internal/handler/http/respond"
	topicUC "content-hub/internal/usecase/topic"
)

// DTO represents the JSON structure for topic data transfer.
type DTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" example:"Science"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type assignRequest struct {
	CategoryIDs []string `json:"categoryIds"`
}

type categoriesResponse struct {
	CategoryIDs []string `json:"categoryIds"`
}

func toDTOs(list []*entity.Topic) []DTO {
	out := make([]DTO, 0, len(list))
	for _, t := range list {
		out = append(out, DTO{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt})
	}
	return out
}

type Handlers struct{ Svc *topicUC.Service }

// List トピック一覧
// @Summary      トピック一覧
// @Tags         topics
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} DTO
// @Router       /topics [get]
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context())
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(list))
}

// Search トピック名検索
// @Summary      トピック名検索
// @Tags         topics
// @Security     BearerAuth
// @Produce      json
// @Param        name query string false "名前の部分一致"
// @Success      200 {array} DTO
// @Router       /topics/search [get]
func (h Handlers) Search(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.Search(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(list))
}

// Get トピック取得
// @Summary      トピック取得
// @Tags         topics
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "トピックID"
// @Success      200 {object} DTO
// @Failure      404 {object} respond.ErrorBody "not found"
// @Router       /topics/{id} [get]
func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs([]*entity.Topic{t})[0])
}

// Create トピック作成
// @Summary      トピック作成
// @Tags         topics
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        topic body nameRequest true "トピック名"
// @Success      201 {object} DTO
// @Failure      400 {object} respond.ErrorBody "Bad request"
// @Failure      409 {object} respond.ErrorBody "名前が重複"
// @Router       /topics [post]
func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	t, err := h.Svc.Create(r.Context(), req.Name)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTOs([]*entity.Topic{t})[0])
}

// Update トピック名変更
// @Summary      トピック名変更
// @Tags         topics
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "トピックID"
// @Param        topic body nameRequest true "新しい名前"
// @Success      200 {object} DTO
// @Failure      404 {object} respond.ErrorBody "not found"
// @Failure      409 {object} respond.ErrorBody "名前が重複"
// @Router       /topics/{id} [patch]
func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	t, err := h.Svc.Rename(r.Context(), id, req.Name)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs([]*entity.Topic{t})[0])
}

// Delete トピック削除
// @Summary      トピック削除
// @Tags         topics
// @Security     BearerAuth
// @Param        id path string true "トピックID"
// @Success      204 "No Content"
// @Failure      404 {object} respond.ErrorBody "not found"
// @Failure      409 {object} respond.ErrorBody "参照中"
// @Router       /topics/{id} [delete]
func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.NoContent(w)
}

// AssignCategories カテゴリ関連付けの置き換え
// @Summary      カテゴリ関連付けの置き換え
// @Description  トピックに関連付けるカテゴリ集合を丸ごと置き換えます。重複は無視され、空配列で全解除します
// @Tags         topics
// @Security     BearerAuth
// @Accept       json
// @Param        id path string true "トピックID"
// @Param        body body assignRequest true "カテゴリID一覧"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "未知のカテゴリ"
// @Failure      404 {object} respond.ErrorBody "トピックが存在しない"
// @Router       /topics/{id}/categories [post]
func (h Handlers) AssignCategories(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := h.Svc.AssignCategories(r.Context(), id, req.CategoryIDs); err != nil {
		if errors.Is(err, topicUC.ErrUnknownCategory) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.DomainError(w, err)
		return
	}
	respond.NoContent(w)
}

// ListCategories 関連カテゴリ一覧
// @Summary      関連カテゴリ一覧
// @Tags         topics
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "トピックID"
// @Success      200 {object} categoriesResponse
// @Failure      404 {object} respond.ErrorBody "not found"
// @Router       /topics/{id}/categories [get]
func (h Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ids, err := h.Svc.ListCategories(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	respond.JSON(w, http.StatusOK, categoriesResponse{CategoryIDs: ids})
}

func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return "", false
	}
	return id, true
}

// Register registers the topic routes.
func Register(mux *http.ServeMux, svc *topicUC.Service) {
	h := Handlers{svc}
	mux.HandleFunc("GET    /topics", h.List)
	mux.HandleFunc("GET    /topics/search", h.Search)
	mux.HandleFunc("GET    /topics/{id}", h.Get)
	mux.HandleFunc("GET    /topics/{id}/categories", h.ListCategories)

	mux.HandleFunc("POST   /topics", h.Create)
	mux.HandleFunc("PATCH  /topics/{id}", h.Update)
	mux.HandleFunc("DELETE /topics/{id}", h.Delete)
	mux.HandleFunc("POST   /topics/{id}/categories", h.AssignCategories)
}
