package content

import (
	"encoding/json"
	"errors"
	"net/http"

	"content-hub/internal/handler/http/auth"
	"content-hub/internal/handler/http/respond"
	contentUC "content-hub/internal/usecase/content"
)

type CreateHandler struct{ Svc *contentUC.Service }

// ServeHTTP コンテンツ作成
// @Summary      コンテンツ作成
// @Description  カテゴリとトピックが関連付けられている場合のみ作成します。作成後に contentCreated を配信します
// @Tags         content
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        content body createRequest true "コンテンツ情報"
// @Success      201 {object} DTO "作成されたコンテンツ"
// @Failure      400 {object} respond.ErrorBody "入力不正、またはカテゴリがトピックに関連付けられていない"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - ADMIN or CREATOR required"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /content [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	c, err := h.Svc.Create(r.Context(), principal.UserID, contentUC.CreateInput{
		Title:      req.Title,
		Type:       req.Type,
		Credits:    req.Credits,
		CategoryID: req.CategoryID,
		TopicID:    req.TopicID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, ToDTO(c))
}

// writeError maps content use case errors to responses.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, contentUC.ErrCategoryNotAssociatedWithTopic) {
		respond.SafeError(w, http.StatusBadRequest, contentUC.ErrCategoryNotAssociatedWithTopic)
		return
	}
	respond.DomainError(w, err)
}
