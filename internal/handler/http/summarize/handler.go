package summarize

import (
	"encoding/json"
	"errors"
	"net/http"

	httph "vidbrief/internal/handler/http"
	"vidbrief/internal/handler/http/respond"
	"vidbrief/internal/locale"
	"vidbrief/internal/usecase/summary"
)

// Handler serves POST /api/summarize.
type Handler struct{ Svc *summary.Service }

var errInvalidBody = errors.New("invalid request body")

// ServeHTTP 動画要約
// @Summary      動画要約
// @Description  YouTube 動画のURLを受け取り、メタデータを取得して要約を生成します
// @Tags         summarize
// @Accept       json
// @Produce      json
// @Param        request body summarize.Request true "要約リクエスト"
// @Success      200 {object} summarize.Response
// @Failure      400 {object} summarize.ErrorResponse "Bad request - invalid URL or no content"
// @Failure      429 {string} string "Too many requests - rate limit exceeded"
// @Failure      500 {object} summarize.ErrorResponse "Upstream or generation failure"
// @Router       /api/summarize [post]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// 生のデコードエラーは返さない。固定メッセージのみ
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	loc := locale.Parse(req.Locale)

	result, err := h.Svc.Summarize(r.Context(), req.VideoURL, loc)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httph.RecordVideoSummarized("success")
	respond.JSON(w, http.StatusOK, Response{Summary: result})
}

// respondError translates the use case's typed errors into HTTP responses.
// The error messages are already locale-specific user-facing text, so they
// are returned verbatim rather than passed through sanitization.
func (h Handler) respondError(w http.ResponseWriter, err error) {
	var inputErr *summary.InputError
	if errors.As(err, &inputErr) {
		httph.RecordVideoSummarized("invalid_input")
		// The received URL is echoed even when empty.
		received := inputErr.ReceivedURL
		respond.JSON(w, http.StatusBadRequest, ErrorResponse{
			Error:       inputErr.Message,
			ReceivedURL: &received,
		})
		return
	}

	var noContentErr *summary.NoContentError
	if errors.As(err, &noContentErr) {
		httph.RecordVideoSummarized("no_content")
		respond.JSON(w, http.StatusBadRequest, ErrorResponse{Error: noContentErr.Message})
		return
	}

	var upstreamErr *summary.UpstreamError
	if errors.As(err, &upstreamErr) {
		httph.RecordVideoSummarized("upstream_error")
		respond.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: upstreamErr.Message})
		return
	}

	var genErr *summary.GenerationError
	if errors.As(err, &genErr) {
		httph.RecordVideoSummarized("generation_error")
		respond.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: genErr.Message})
		return
	}

	httph.RecordVideoSummarized("upstream_error")
	respond.SafeError(w, http.StatusInternalServerError, err)
}
