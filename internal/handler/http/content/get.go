package content

import (
	"net/http"

	"content-hub/internal/handler/http/pathutil"
	"content-hub/internal/handler/http/respond"
	contentUC "content-hub/internal/usecase/content"
)

type GetHandler struct{ Svc *contentUC.Service }

// ServeHTTP コンテンツ取得
// @Summary      コンテンツ取得
// @Tags         content
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "コンテンツID"
// @Success      200 {object} DTO
// @Failure      400 {object} respond.ErrorBody "invalid id"
// @Failure      404 {object} respond.ErrorBody "not found"
// @Router       /content/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	c, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTO(c))
}
