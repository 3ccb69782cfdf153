package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fastygo/alphadate/pkg/httpcontext"
)

func sign(t *testing.T, secret, issuer string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "device",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func run(mw func(fasthttp.RequestHandler) fasthttp.RequestHandler, auth string) (*fasthttp.RequestCtx, bool) {
	var rc fasthttp.RequestCtx
	if auth != "" {
		rc.Request.Header.Set("Authorization", auth)
	}
	called := false
	mw(func(ctx *fasthttp.RequestCtx) {
		called = true
		ctx.SetStatusCode(fasthttp.StatusOK)
	})(&rc)
	return &rc, called
}

func TestJWTAuth(t *testing.T) {
	mw := JWTAuth("secret", "alphadate", nil)

	tests := []struct {
		name   string
		auth   string
		passed bool
	}{
		{name: "valid bearer", auth: "Bearer " + sign(t, "secret", "alphadate", time.Hour), passed: true},
		{name: "raw token", auth: sign(t, "secret", "alphadate", time.Hour), passed: true},
		{name: "missing", auth: ""},
		{name: "wrong secret", auth: "Bearer " + sign(t, "other", "alphadate", time.Hour)},
		{name: "wrong issuer", auth: "Bearer " + sign(t, "secret", "someone", time.Hour)},
		{name: "expired", auth: "Bearer " + sign(t, "secret", "alphadate", -time.Minute)},
		{name: "garbage", auth: "Bearer not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, called := run(mw, tt.auth)
			assert.Equal(t, tt.passed, called)
			if tt.passed {
				claims, ok := rc.UserValue(string(httpcontext.KeyClaims)).(*jwt.RegisteredClaims)
				require.True(t, ok)
				assert.Equal(t, "device", claims.Subject)
				return
			}
			assert.Equal(t, fasthttp.StatusUnauthorized, rc.Response.StatusCode())
			assert.Contains(t, string(rc.Response.Body()), `"code":"UNAUTHORIZED"`)
		})
	}
}

func TestAccessLogRecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	var rc fasthttp.RequestCtx
	rc.Request.SetRequestURI("/api/v1/activities")
	AccessLog(zap.New(core))(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
	})(&rc)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(503), entries[0].ContextMap()["status"])
	assert.Equal(t, "/api/v1/activities", entries[0].ContextMap()["path"])
}
