package echoapi

import (
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/frankspastic/psia-gradebook/core"
)

func TestAppHTTPErrorHandler_shutdown(t *testing.T) {
	e := echo.New()

	var signalled bool
	handler := newAppHTTPErrorHandler(nopLogger{}, func() { signalled = true })

	t.Run("shutdown error signals the server", func(t *testing.T) {
		signalled = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		err := errors.Wrap(core.NewShutdownError("database not ready"), "ping")
		handler(err, ctx)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.True(t, signalled)
	})

	t.Run("ordinary server error does not signal", func(t *testing.T) {
		signalled = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		handler(errors.New("boom"), ctx)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.False(t, signalled)
	})
}

func TestServerShutdownSignal(t *testing.T) {
	app := setup(t)

	srv, ok := app.server.(*server)
	if !ok {
		t.Fatalf("expected *server, got %T", app.server)
	}
	srv.signalShutdown()
	srv.signalShutdown() // non-blocking even when the channel is full

	select {
	case sig := <-app.server.ShutdownSignal():
		assert.Equal(t, syscall.SIGTERM, sig)
	default:
		t.Fatal("expected a pending shutdown signal")
	}
}

func TestStatusAPI(t *testing.T) {
	app := setup(t)

	rec := app.request(t, http.MethodGet, "/status", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
