package router

import (
	"encoding/json"
	"fmt"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/alphadate/api/handler"
	"github.com/fastygo/alphadate/api/transport"
	"github.com/fastygo/alphadate/domain"
)

type Handlers struct {
	Session  *apiHandler.SessionHandler
	Activity *apiHandler.ActivityHandler
	Letter   *apiHandler.LetterHandler
	Health   *apiHandler.HealthHandler
}

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

func New(handlers Handlers, authMiddleware Middleware) *router.Router {
	r := router.New()
	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		writeError(ctx, fasthttp.StatusNotFound, string(domain.ErrCodeNotFound), "route not found")
	}
	r.PanicHandler = func(ctx *fasthttp.RequestCtx, v interface{}) {
		writeError(ctx, fasthttp.StatusInternalServerError, string(domain.ErrCodeInternal), fmt.Sprint(v))
	}

	r.GET("/health", handlers.Health.Check)

	// Gate
	r.POST("/api/v1/unlock", handlers.Session.Unlock)

	// Protected routes
	r.GET("/api/v1/session/user", authMiddleware(handlers.Session.GetUser))
	r.PUT("/api/v1/session/user", authMiddleware(handlers.Session.SetUser))
	r.DELETE("/api/v1/session/user", authMiddleware(handlers.Session.ClearUser))

	r.GET("/api/v1/activities", authMiddleware(handlers.Activity.List))
	r.POST("/api/v1/activities", authMiddleware(handlers.Activity.Create))
	r.PUT("/api/v1/activities/{id}", authMiddleware(handlers.Activity.Rename))
	r.DELETE("/api/v1/activities/{id}", authMiddleware(handlers.Activity.Delete))
	r.POST("/api/v1/activities/{id}/complete", authMiddleware(handlers.Activity.Complete))
	r.GET("/api/v1/activities/{id}/feedback", authMiddleware(handlers.Activity.Feedbacks))
	r.POST("/api/v1/activities/{id}/feedback", authMiddleware(handlers.Activity.SubmitFeedback))
	r.POST("/api/v1/activities/{id}/photos", authMiddleware(handlers.Activity.AttachPhotos))
	r.DELETE("/api/v1/activities/{id}/photos/{index}", authMiddleware(handlers.Activity.RemovePhoto))

	r.GET("/api/v1/letters", authMiddleware(handlers.Letter.Board))
	r.POST("/api/v1/letters/spin", authMiddleware(handlers.Letter.Spin))
	r.GET("/api/v1/letters/{letter}", authMiddleware(handlers.Letter.Select))
	r.GET("/api/v1/calendar", authMiddleware(handlers.Letter.Calendar))

	return r
}

func writeError(ctx *fasthttp.RequestCtx, status int, code, msg string) {
	body, _ := json.Marshal(transport.NewError(code, msg, nil))
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
