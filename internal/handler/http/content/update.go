package content

import (
	"encoding/json"
	"errors"
	"net/http"

	"content-hub/internal/handler/http/pathutil"
	"content-hub/internal/handler/http/respond"
	contentUC "content-hub/internal/usecase/content"
)

type UpdateHandler struct{ Svc *contentUC.Service }

// ServeHTTP コンテンツ更新
// @Summary      コンテンツ更新
// @Description  指定したフィールドのみ更新します。カテゴリまたはトピックを変更する場合は関連付けを再検証します
// @Tags         content
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "コンテンツID"
// @Param        content body updateRequest true "更新するフィールド"
// @Success      200 {object} DTO
// @Failure      400 {object} respond.ErrorBody "入力不正、または関連付けなし"
// @Failure      404 {object} respond.ErrorBody "not found"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /content/{id} [patch]
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

	c, err := h.Svc.Update(r.Context(), id, contentUC.UpdateInput{
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
	respond.JSON(w, http.StatusOK, ToDTO(c))
}
