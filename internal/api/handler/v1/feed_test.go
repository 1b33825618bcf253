package v1

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blwclub/membership-portal/internal/config"
	"github.com/blwclub/membership-portal/internal/domain"
)

func TestFeedHandler_Broadcast(t *testing.T) {
	feed := NewFeedHandler(&config.APIConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go feed.Run(ctx)

	router := gin.New()
	router.GET("/admin/feed", withUser(testAdmin), feed.HandleWebSocket)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/admin/feed"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return feed.Clients() == 1 }, time.Second, 10*time.Millisecond)

	app := domain.Application{ID: "app-1", UserID: testMember.ID, Sport: "golf", Status: domain.StatusPending}
	feed.Publish(domain.NewApplicationEvent(domain.EventSubmitted, app, testMember.ID))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var event domain.ApplicationEvent
	require.NoError(t, json.Unmarshal(message, &event))
	assert.Equal(t, domain.EventSubmitted, event.Type)
	assert.Equal(t, "app-1", event.ApplicationID)
}

func TestFeedHandler_RejectsForeignOrigin(t *testing.T) {
	feed := NewFeedHandler(&config.APIConfig{AllowedCORSDomains: []string{"http://localhost:3000"}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go feed.Run(ctx)

	router := gin.New()
	router.GET("/admin/feed", withUser(testAdmin), feed.HandleWebSocket)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/admin/feed"
	_, _, err := websocket.DefaultDialer.Dial(url, map[string][]string{"Origin": {"http://evil.example"}})
	assert.Error(t, err)
	assert.Equal(t, 0, feed.Clients())
}

func TestFeedHandler_PublishWithoutClients(t *testing.T) {
	feed := NewFeedHandler(&config.APIConfig{})

	assert.NotPanics(t, func() {
		for i := 0; i < 100; i++ {
			feed.Publish(domain.ApplicationEvent{Type: domain.EventApproved})
		}
	})
}
