package content

import (
	"net/http"

	"content-hub/internal/domain/entity"
	"content-hub/internal/handler/http/respond"
	contentUC "content-hub/internal/usecase/content"
)

type ListHandler struct{ Svc *contentUC.Service }

// ServeHTTP コンテンツ一覧・検索
// @Summary      コンテンツ一覧・検索
// @Description  パラメータがなければ全件、あれば条件検索します（AND）。日付は作成日時に対して両方指定時のみ適用されます
// @Tags         content
// @Security     BearerAuth
// @Produce      json
// @Param        topicId query string false "トピックID"
// @Param        name query string false "タイトルの部分一致（大文字小文字を区別しない）"
// @Param        startDate query string false "作成日時の開始（RFC3339 または YYYY-MM-DD）"
// @Param        endDate query string false "作成日時の終了（RFC3339 または YYYY-MM-DD）"
// @Param        orderBy query string false "asc | desc" Enums(asc, desc)
// @Success      200 {array} DTO
// @Failure      400 {object} respond.ErrorBody "Bad request"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /content [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := SearchQuery{
		TopicID:   qs.Get("topicId"),
		Name:      qs.Get("name"),
		StartDate: qs.Get("startDate"),
		EndDate:   qs.Get("endDate"),
		OrderBy:   qs.Get("orderBy"),
	}

	var (
		list []*entity.Content
		err  error
	)
	if q.Empty() {
		list, err = h.Svc.List(r.Context())
	} else {
		filters, ferr := q.Filters()
		if ferr != nil {
			respond.SafeError(w, http.StatusBadRequest, ferr)
			return
		}
		list, err = h.Svc.Search(r.Context(), filters)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTOs(list))
}

type CountHandler struct{ Svc *contentUC.Service }

// ServeHTTP カテゴリ別件数
// @Summary      カテゴリ別コンテンツ件数
// @Description  コンテンツが 1 件以上あるカテゴリのみ返します
// @Tags         content
// @Security     BearerAuth
// @Produce      json
// @Param        topicId query string false "トピックID"
// @Success      200 {array} CountDTO
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /content/count-by-category [get]
func (h CountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var topicID *string
	if v := r.URL.Query().Get("topicId"); v != "" {
		topicID = &v
	}

	counts, err := h.Svc.CountByCategory(r.Context(), topicID)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToCountDTOs(counts))
}
