package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/alphadate/api/transport"
	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/pkg/httpcontext"
	gateUC "github.com/fastygo/alphadate/usecase/gate"
)

// SessionHandler serves the passcode unlock and the device's current user.
type SessionHandler struct {
	baseHandler
	uc *gateUC.UseCase
}

func NewSessionHandler(uc *gateUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Unlock with passcode
// @Tags session
// @Router /api/v1/unlock [post]
func (h *SessionHandler) Unlock(ctx *fasthttp.RequestCtx) {
	var req transport.UnlockRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	token, err := h.uc.Unlock(stdCtx, req.Code)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, token)
}

// @Summary Current user
// @Tags session
// @Router /api/v1/session/user [get]
func (h *SessionHandler) GetUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.CurrentUser(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{"user": user, "users": domain.Users()})
}

// @Summary Pick current user
// @Tags session
// @Router /api/v1/session/user [put]
func (h *SessionHandler) SetUser(ctx *fasthttp.RequestCtx) {
	var req transport.UserRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.SelectUser(stdCtx, req.User)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.log(stdCtx).Info("current user selected", zap.String("user", string(user)))
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{"user": user})
}

// @Summary Forget current user
// @Tags session
// @Router /api/v1/session/user [delete]
func (h *SessionHandler) ClearUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ClearUser(stdCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
