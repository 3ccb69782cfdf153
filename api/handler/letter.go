package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/pkg/httpcontext"
	activityUC "github.com/fastygo/alphadate/usecase/activity"
)

// LetterHandler serves the letter grid, the random picker and the calendar.
type LetterHandler struct {
	baseHandler
	uc *activityUC.UseCase
}

func NewLetterHandler(uc *activityUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *LetterHandler {
	return &LetterHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Letter board
// @Tags letters
// @Router /api/v1/letters [get]
func (h *LetterHandler) Board(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.Letters(stdCtx))
}

// @Summary Spin for a letter
// @Tags letters
// @Router /api/v1/letters/spin [post]
func (h *LetterHandler) Spin(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	letter, err := h.uc.Spin(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"letter":      letter,
		"suggestions": domain.Suggestions(letter),
	})
}

// @Summary Select a letter
// @Tags letters
// @Router /api/v1/letters/{letter} [get]
func (h *LetterHandler) Select(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	choice, err := h.uc.Select(stdCtx, pathParam(ctx, "letter"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, choice)
}

// @Summary Completion calendar
// @Tags calendar
// @Router /api/v1/calendar [get]
func (h *LetterHandler) Calendar(ctx *fasthttp.RequestCtx) {
	loc := time.UTC
	if tz := string(ctx.QueryArgs().Peek("tz")); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			h.respondError(ctx, domain.WrapError(domain.ErrCodeInvalid, "unknown time zone", err))
			return
		}
		loc = parsed
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.Calendar(stdCtx, loc))
}
