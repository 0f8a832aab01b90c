package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewForEnvironment(t *testing.T) {
	l := NewForEnvironment("production", "warn")
	require.NotNil(t, l)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func newObservedRouter(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(core)

	r := gin.New()
	r.Use(RequestID(), GinMiddleware(l), Recovery(l))
	return r, logs
}

func TestGinMiddleware(t *testing.T) {
	t.Run("level follows status", func(t *testing.T) {
		r, logs := newObservedRouter(t)
		r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
		r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusUnprocessableEntity) })
		r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

		for _, p := range []string{"/ok", "/bad", "/boom"} {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
		}

		entries := logs.FilterMessage("HTTP Request").All()
		require.Len(t, entries, 3)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	})

	t.Run("request id is propagated", func(t *testing.T) {
		r, logs := newObservedRouter(t)
		var seen string
		r.GET("/ping", func(c *gin.Context) {
			seen = RequestIDFrom(c.Request.Context())
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
		entry := logs.FilterMessage("HTTP Request").All()[0]
		assert.Equal(t, "req-123", entry.ContextMap()["request_id"])
	})

	t.Run("generates request id", func(t *testing.T) {
		r, _ := newObservedRouter(t)
		r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})

	t.Run("recovers panics", func(t *testing.T) {
		r, logs := newObservedRouter(t)
		r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	})
}

func TestGormLogger(t *testing.T) {
	ctx := context.Background()
	sql := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("silent logs nothing", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		g := NewGormLogger(zap.New(core), gormlogger.Silent, 0)
		g.Trace(ctx, time.Now(), sql, errors.New("boom"))
		g.Info(ctx, "hello %s", "world")
		assert.Zero(t, logs.Len())
	})

	t.Run("errors are logged except record not found", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		g := NewGormLogger(zap.New(core), gormlogger.Warn, 0)
		g.Trace(ctx, time.Now(), sql, gormlogger.ErrRecordNotFound)
		g.Trace(ctx, time.Now(), sql, errors.New("boom"))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	})

	t.Run("slow queries warn", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		g := NewGormLogger(zap.New(core), gormlogger.Warn, time.Millisecond)
		g.Trace(ctx, time.Now().Add(-time.Second), sql, nil)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})

	t.Run("log mode returns a copy", func(t *testing.T) {
		g := NewGormLogger(zap.NewNop(), gormlogger.Info, 0)
		other := g.LogMode(gormlogger.Error).(*GormLogger)
		assert.Equal(t, gormlogger.Info, g.level)
		assert.Equal(t, gormlogger.Error, other.level)
	})

	t.Run("map level", func(t *testing.T) {
		assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
		assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
		assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
	})
}
