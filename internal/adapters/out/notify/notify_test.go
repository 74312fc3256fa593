package notify_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"marketplace/internal/adapters/out/notify"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmailSender_MockMode(t *testing.T) {
	sender := notify.NewEmailSender(notify.EmailConfig{}, testLogger())

	assert.Equal(t, "email", sender.Channel())
	err := sender.Send(context.Background(), ports.Notification{
		Recipient: "buyer@example.com",
		Subject:   "Order received",
		Body:      "Your order has been received.",
	})
	require.NoError(t, err)
}

func TestTelegramSender(t *testing.T) {
	t.Run("mock_mode_without_token", func(t *testing.T) {
		sender := notify.NewTelegramSender("", testLogger())

		assert.Equal(t, "telegram", sender.Channel())
		err := sender.Send(context.Background(), ports.Notification{
			Recipient: "12345",
			Subject:   "Rider on the way",
			Body:      "Track your package.",
		})
		require.NoError(t, err)
	})

	t.Run("posts_to_bot_api", func(t *testing.T) {
		var captured map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/bot123:abc/sendMessage", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			_, _ = w.Write([]byte(`{"ok": true}`))
		}))
		defer server.Close()

		sender := notify.NewTelegramSender("123:abc", testLogger()).WithBaseURL(server.URL)

		err := sender.Send(context.Background(), ports.Notification{
			Recipient: "98765",
			Subject:   "Package delivered",
			Body:      "Thank you for shopping with us.",
		})

		require.NoError(t, err)
		assert.Equal(t, "98765", captured["chat_id"])
		assert.Contains(t, captured["text"], "Package delivered")
	})

	t.Run("api_error_reported", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		sender := notify.NewTelegramSender("123:abc", testLogger()).WithBaseURL(server.URL)

		err := sender.Send(context.Background(), ports.Notification{Recipient: "98765", Subject: "s", Body: "b"})

		require.Error(t, err)
	})
}

func TestWhatsAppSender(t *testing.T) {
	t.Run("mock_mode_with_invalid_credentials", func(t *testing.T) {
		sender := notify.NewWhatsAppSender(notify.WhatsAppConfig{AccountSID: "bogus"}, testLogger())

		assert.Equal(t, "whatsapp", sender.Channel())
		err := sender.Send(context.Background(), ports.Notification{
			Recipient: "+233201234567",
			Subject:   "Payment confirmed",
			Body:      "Your order is being prepared.",
		})
		require.NoError(t, err)
	})

	t.Run("posts_to_twilio", func(t *testing.T) {
		sid := "AC00000000000000000000000000000000"
		var form map[string][]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/2010-04-01/Accounts/"+sid+"/Messages.json", r.URL.Path)
			user, _, ok := r.BasicAuth()
			require.True(t, ok)
			require.Equal(t, sid, user)
			require.NoError(t, r.ParseForm())
			form = r.PostForm
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		sender := notify.NewWhatsAppSender(notify.WhatsAppConfig{
			AccountSID: sid,
			AuthToken:  "token",
			FromNumber: "+15550001111",
		}, testLogger()).WithBaseURL(server.URL)

		err := sender.Send(context.Background(), ports.Notification{
			Recipient: "+233201234567",
			Subject:   "Payment confirmed",
			Body:      "Your order is being prepared.",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"whatsapp:+233201234567"}, form["To"])
		assert.Equal(t, []string{"whatsapp:+15550001111"}, form["From"])
	})
}

// channelSpy records sends so dispatcher tests can observe the async fan-out.
// It poses as the email channel, where the dispatcher routes internal events.
type channelSpy struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (c *channelSpy) Channel() string { return ports.ChannelEmail }

func (c *channelSpy) Send(_ context.Context, n ports.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, n)
	return nil
}

func (c *channelSpy) notifications() []ports.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ports.Notification(nil), c.sent...)
}

func TestDispatcher(t *testing.T) {
	t.Run("delivers_asynchronously", func(t *testing.T) {
		spy := &channelSpy{}
		handler := commands.NewSendNotificationCommandHandler([]ports.ChannelSender{spy}, testLogger())
		dispatcher := notify.NewDispatcher(handler, testLogger())

		dispatcher.Notify(context.Background(), commands.EventOrderCreated, "buyer@example.com",
			map[string]string{"order_id": "ord-1", "part": "Brake pads", "amount": "91.98 GHS"})
		dispatcher.Wait()

		sent := spy.notifications()
		require.Len(t, sent, 1)
		assert.Equal(t, "buyer@example.com", sent[0].Recipient)
		assert.Contains(t, sent[0].Body, "ord-1")
	})

	t.Run("survives_caller_cancellation", func(t *testing.T) {
		spy := &channelSpy{}
		handler := commands.NewSendNotificationCommandHandler([]ports.ChannelSender{spy}, testLogger())
		dispatcher := notify.NewDispatcher(handler, testLogger())

		ctx, cancel := context.WithCancel(context.Background())
		dispatcher.Notify(ctx, commands.EventDeliveryDelivered, "buyer@example.com",
			map[string]string{"order_id": "ord-2", "tracking_code": "PKD-20250310-123456"})
		cancel()
		dispatcher.Wait()

		require.Len(t, spy.notifications(), 1)
	})

	t.Run("drops_invalid_notification_silently", func(t *testing.T) {
		spy := &channelSpy{}
		handler := commands.NewSendNotificationCommandHandler([]ports.ChannelSender{spy}, testLogger())
		dispatcher := notify.NewDispatcher(handler, testLogger())

		dispatcher.Notify(context.Background(), commands.EventOrderCreated, "", nil)
		dispatcher.Wait()

		assert.Empty(t, spy.notifications())
	})

	t.Run("unknown_event_logged_not_delivered", func(t *testing.T) {
		spy := &channelSpy{}
		handler := commands.NewSendNotificationCommandHandler([]ports.ChannelSender{spy}, testLogger())
		dispatcher := notify.NewDispatcher(handler, testLogger())

		dispatcher.Notify(context.Background(), "bogus.event", "buyer@example.com", nil)
		dispatcher.Wait()

		assert.Empty(t, spy.notifications())
	})
}
