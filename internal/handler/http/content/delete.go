package content

import (
	"net/http"

	"content-hub/internal/handler/http/pathutil"
	"content-hub/internal/handler/http/respond"
	contentUC "content-hub/internal/usecase/content"
)

type DeleteHandler struct{ Svc *contentUC.Service }

// ServeHTTP コンテンツ削除
// @Summary      コンテンツ削除
// @Tags         content
// @Security     BearerAuth
// @Param        id path string true "コンテンツID"
// @Success      204 "No Content"
// @Failure      403 {object} respond.ErrorBody "Forbidden - ADMIN required"
// @Failure      404 {object} respond.ErrorBody "not found"
// @Router       /content/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	respond.NoContent(w)
}
