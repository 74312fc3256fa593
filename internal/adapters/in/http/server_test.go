package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/correlation"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"validation", errs.NewValidationError("bad input"), http.StatusBadRequest, kindValidation},
		{"value_required", errs.NewValueIsRequiredError("email"), http.StatusBadRequest, kindValidation},
		{"not_found", errs.NewObjectNotFoundError("order", "abc"), http.StatusNotFound, kindNotFound},
		{"conflict", errs.NewConflictError("out of stock"), http.StatusConflict, kindConflict},
		{"invalid_transition", errs.NewInvalidTransitionError("order", "pending", "shipped"), http.StatusConflict, kindInvalidTransition},
		{"no_capacity", errs.NewNoCapacityError("no riders"), http.StatusConflict, kindNoCapacity},
		{"upstream_timeout", errs.NewUpstreamTimeoutError("paystack", nil), http.StatusServiceUnavailable, kindUpstream},
		{"upstream_unavailable", errs.NewUpstreamUnavailableError("catalog", nil), http.StatusServiceUnavailable, kindUpstream},
		{"unclassified", errors.New("driver: bad connection"), http.StatusInternalServerError, kindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, kind := classify(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestWriteError(t *testing.T) {
	t.Run("uniform_body", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, writeError(ctx, errs.NewObjectNotFoundError("order", "abc")))

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "error", body.Status)
		assert.Equal(t, kindNotFound, body.Kind)
		assert.NotEmpty(t, body.Message)
	})

	t.Run("internal_errors_are_opaque", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, writeError(ctx, context.DeadlineExceeded))

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", body.Message)
	})
}

func TestCorrelationMiddleware(t *testing.T) {
	handler := func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, correlation.FromContext(ctx.Request().Context()))
	}

	t.Run("generates_id_when_absent", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, CorrelationMiddleware()(handler)(ctx))

		id := rec.Header().Get(correlation.Header)
		require.NotEmpty(t, id)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("preserves_client_id", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(correlation.Header, "client-supplied")
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		require.NoError(t, CorrelationMiddleware()(handler)(ctx))

		assert.Equal(t, "client-supplied", rec.Header().Get(correlation.Header))
		assert.Equal(t, "client-supplied", rec.Body.String())
	})
}

func TestBearerAuthMiddleware(t *testing.T) {
	handler := func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusOK)
	}

	t.Run("rejects_missing_token", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(http.MethodPost, "/orders", nil), rec)

		require.NoError(t, BearerAuthMiddleware("secret")(handler)(ctx))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects_wrong_token", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer wrong")
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		require.NoError(t, BearerAuthMiddleware("secret")(handler)(ctx))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("accepts_valid_token", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer secret")
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		require.NoError(t, BearerAuthMiddleware("secret")(handler)(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

// flakySender fails sends when err is set, posing as the named channel.
type flakySender struct {
	name string
	err  error

	mu   sync.Mutex
	sent []ports.Notification
}

func (s *flakySender) Channel() string { return s.name }

func (s *flakySender) Send(_ context.Context, n ports.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, n)
	return nil
}

func notifyServer(senders ...ports.ChannelSender) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Server{
		sendNotification: commands.NewSendNotificationCommandHandler(senders, logger),
	}
}

func TestSendNotification(t *testing.T) {
	post := func(body string) (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/notify", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	t.Run("returns_per_channel_results", func(t *testing.T) {
		email := &flakySender{name: ports.ChannelEmail}
		whatsapp := &flakySender{name: ports.ChannelWhatsApp, err: errors.New("api down")}
		server := notifyServer(email, whatsapp)

		ctx, rec := post(`{
			"event": "order.created",
			"recipients": {"email": ["buyer@example.com"], "whatsapp": ["+233201234567"]},
			"data": {"order_id": "ord-1", "part": "Brake pads", "amount": "91.98 GHS"}
		}`)

		require.NoError(t, server.SendNotification(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Event   string                `json:"event"`
			Results []ports.ChannelResult `json:"results"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "order.created", body.Event)
		require.Len(t, body.Results, 2)

		delivered := map[string]bool{}
		for _, result := range body.Results {
			delivered[result.Channel] = result.Delivered
		}
		assert.True(t, delivered[ports.ChannelEmail])
		assert.False(t, delivered[ports.ChannelWhatsApp])
		require.Len(t, email.sent, 1)
		assert.Equal(t, "buyer@example.com", email.sent[0].Recipient)
	})

	t.Run("rejects_unknown_template", func(t *testing.T) {
		server := notifyServer(&flakySender{name: ports.ChannelEmail})

		ctx, rec := post(`{"event":"NO_SUCH_TEMPLATE","recipients":{"email":["buyer@example.com"]}}`)

		require.NoError(t, server.SendNotification(ctx))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects_missing_recipients", func(t *testing.T) {
		server := notifyServer(&flakySender{name: ports.ChannelEmail})

		ctx, rec := post(`{"event":"order.created"}`)

		require.NoError(t, server.SendNotification(ctx))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
