package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/alphadate/api/transport"
	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/pkg/httpcontext"
	activityUC "github.com/fastygo/alphadate/usecase/activity"
	gateUC "github.com/fastygo/alphadate/usecase/gate"
)

type ActivityHandler struct {
	baseHandler
	uc   *activityUC.UseCase
	gate *gateUC.UseCase
}

// NewActivityHandler wires the activity flows. gate supplies the device's
// current user when a feedback request does not name one; it may be nil.
func NewActivityHandler(uc *activityUC.UseCase, gate *gateUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		gate:        gate,
	}
}

// @Summary List activities
// @Tags activities
// @Router /api/v1/activities [get]
func (h *ActivityHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.List(stdCtx))
}

// @Summary Create activity
// @Tags activities
// @Router /api/v1/activities [post]
func (h *ActivityHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CreateActivityRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	res, err := h.uc.Create(stdCtx, req.Letter, req.Name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondResult(ctx, http.StatusCreated, res)
}

// @Summary Rename activity
// @Tags activities
// @Router /api/v1/activities/{id} [put]
func (h *ActivityHandler) Rename(ctx *fasthttp.RequestCtx) {
	var req transport.RenameActivityRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	res, err := h.uc.Rename(stdCtx, pathParam(ctx, "id"), req.Name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondResult(ctx, http.StatusOK, res)
}

// @Summary Delete activity
// @Tags activities
// @Router /api/v1/activities/{id} [delete]
func (h *ActivityHandler) Delete(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondResult(ctx, http.StatusOK, h.uc.Delete(stdCtx, pathParam(ctx, "id")))
}

// @Summary Complete activity
// @Tags activities
// @Router /api/v1/activities/{id}/complete [post]
func (h *ActivityHandler) Complete(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	res, err := h.uc.Complete(stdCtx, pathParam(ctx, "id"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondResult(ctx, http.StatusOK, res)
}

// @Summary List feedback
// @Tags activities
// @Router /api/v1/activities/{id}/feedback [get]
func (h *ActivityHandler) Feedbacks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.Feedbacks(stdCtx, pathParam(ctx, "id")))
}

// @Summary Submit feedback
// @Tags activities
// @Router /api/v1/activities/{id}/feedback [post]
func (h *ActivityHandler) SubmitFeedback(ctx *fasthttp.RequestCtx) {
	var req transport.FeedbackRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user := domain.User(req.User)
	if user == "" && h.gate != nil {
		current, err := h.gate.CurrentUser(stdCtx)
		if err != nil {
			h.respondError(ctx, domain.ErrUnknownUser)
			return
		}
		user = current
	}

	res, err := h.uc.SubmitFeedback(stdCtx, pathParam(ctx, "id"), user, req.Rating, req.Comment)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondResult(ctx, http.StatusOK, res)
}

// @Summary Attach photos
// @Tags activities
// @Router /api/v1/activities/{id}/photos [post]
func (h *ActivityHandler) AttachPhotos(ctx *fasthttp.RequestCtx) {
	var req transport.PhotosRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	res, err := h.uc.AttachPhotos(stdCtx, pathParam(ctx, "id"), req.Photos...)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondResult(ctx, http.StatusOK, res)
}

// @Summary Remove photo
// @Tags activities
// @Router /api/v1/activities/{id}/photos/{index} [delete]
func (h *ActivityHandler) RemovePhoto(ctx *fasthttp.RequestCtx) {
	index, err := strconv.Atoi(pathParam(ctx, "index"))
	if err != nil {
		h.respondError(ctx, domain.ErrPhotoNotFound)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	res, err := h.uc.RemovePhoto(stdCtx, pathParam(ctx, "id"), index)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondResult(ctx, http.StatusOK, res)
}

// respondResult reports a mutation. Unpersisted writes still answer with the
// reloaded collection and flag it in meta.
func (h *ActivityHandler) respondResult(ctx *fasthttp.RequestCtx, status int, res *activityUC.Result) {
	h.respondJSON(ctx, status, transport.NewSuccess(res, transport.MutationMeta{Persisted: res.Persisted}))
}
