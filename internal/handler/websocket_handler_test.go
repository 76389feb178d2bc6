package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokenValidator resolves every token to a fixed workspace
type stubTokenValidator struct {
	workspaceID int32
	err         error
	lastToken   string
}

func (s *stubTokenValidator) ValidateToken(ctx context.Context, token string) (int32, error) {
	s.lastToken = token
	return s.workspaceID, s.err
}

var feedOrigins = []string{"http://localhost:3000", "https://drivelog.app"}

func TestHandleWS_RejectsBeforeUpgrade(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		validator *stubTokenValidator
		wantToken string
	}{
		{
			name:      "missing token",
			target:    "/ws",
			validator: &stubTokenValidator{workspaceID: 1},
		},
		{
			name:      "token rejected",
			target:    "/ws?token=expired-jwt",
			validator: &stubTokenValidator{err: errors.New("token is expired")},
			wantToken: "expired-jwt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := websocket.NewHub()
			h := NewWebSocketHandler(hub, tt.validator, feedOrigins)

			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, tt.target, nil), httptest.NewRecorder())
			err := h.HandleWS(c)

			var httpErr *echo.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
			assert.Equal(t, tt.wantToken, tt.validator.lastToken)
			assert.Equal(t, 0, hub.TotalClientCount())
		})
	}
}

func TestHandleWS_PlainRequestIsNotUpgraded(t *testing.T) {
	hub := websocket.NewHub()
	validator := &stubTokenValidator{workspaceID: 42}
	h := NewWebSocketHandler(hub, validator, feedOrigins)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/ws?token=valid-jwt", nil), httptest.NewRecorder())
	err := h.HandleWS(c)

	// The token is accepted, the missing upgrade headers fail the handshake
	assert.Error(t, err)
	assert.Equal(t, "valid-jwt", validator.lastToken)
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHandleWS_ReceivesWorkspaceEvents(t *testing.T) {
	hub := websocket.NewHub()
	defer hub.CloseAll()
	h := NewWebSocketHandler(hub, &stubTokenValidator{workspaceID: 42}, feedOrigins)

	e := echo.New()
	e.GET("/ws", h.HandleWS)
	server := httptest.NewServer(e)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=valid-jwt"
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(42) == 1 }, time.Second, 10*time.Millisecond)

	// Events of other workspaces are not delivered
	hub.Publish(7, websocket.ExpenseCreated(map[string]interface{}{"id": 1}))
	hub.Publish(42, websocket.DailyRecordCreated(map[string]interface{}{"id": 3, "data": "2025-01-15"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type    string                 `json:"type"`
		Entity  string                 `json:"entity"`
		Payload map[string]interface{} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "daily_record.created", event.Type)
	assert.Equal(t, "daily_record", event.Entity)
	assert.Equal(t, "2025-01-15", event.Payload["data"])
}

func TestHandleWS_UnknownEntity(t *testing.T) {
	hub := websocket.NewHub()
	validator := &stubTokenValidator{workspaceID: 42}
	h := NewWebSocketHandler(hub, validator, feedOrigins)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/ws?token=valid-jwt&entities=daily_record,loan", nil), httptest.NewRecorder())
	err := h.HandleWS(c)

	var httpErr *echo.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Empty(t, validator.lastToken, "token is not checked for a malformed subscription")
}

func TestHandleWS_SubscribedEntitiesOnly(t *testing.T) {
	hub := websocket.NewHub()
	defer hub.CloseAll()
	h := NewWebSocketHandler(hub, &stubTokenValidator{workspaceID: 42}, feedOrigins)

	e := echo.New()
	e.GET("/ws", h.HandleWS)
	server := httptest.NewServer(e)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=valid-jwt&entities=car_config"
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(42) == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(42, websocket.DailyRecordCreated(map[string]interface{}{"id": 3}))
	hub.Publish(42, websocket.CarConfigActivated(map[string]interface{}{"id": 5}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "car_config.activated", event.Type)
}

func TestWebSocketHandler_CheckOrigin(t *testing.T) {
	h := NewWebSocketHandler(websocket.NewHub(), &stubTokenValidator{workspaceID: 1}, feedOrigins)

	tests := []struct {
		name     string
		origin   string
		expected bool
	}{
		{"local frontend", "http://localhost:3000", true},
		{"production frontend", "https://drivelog.app", true},
		{"unknown site", "https://evil.com", false},
		{"non-browser client", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.expected, h.checkOrigin(req))
		})
	}
}
