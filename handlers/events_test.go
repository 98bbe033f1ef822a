package handlers

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sseEvent struct {
	name string
	data string
}

func readEvents(t *testing.T, body *bufio.Reader, events chan<- sseEvent) {
	t.Helper()
	var ev sseEvent
	for {
		line, err := body.ReadString('\n')
		if err != nil {
			close(events)
			return
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "event:"):
			ev.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			ev.data += strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		case line == "":
			if ev.name != "" || ev.data != "" {
				events <- ev
			}
			ev = sseEvent{}
		}
	}
}

func nextCartEvent(t *testing.T, events <-chan sseEvent) cartResponse {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "stream closed")
		require.Equal(t, "cart", ev.name)
		var cart cartResponse
		require.NoError(t, json.Unmarshal([]byte(ev.data), &cart))
		return cart
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for cart event")
		return cartResponse{}
	}
}

func TestCartEventsStream(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	c := newClient(t, s)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/cart/events?token="+c.token, nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	events := make(chan sseEvent, 16)
	go readEvents(t, bufio.NewReader(resp.Body), events)

	initial := nextCartEvent(t, events)
	assert.Zero(t, initial.ItemCount)
	assert.Zero(t, initial.Version)

	c.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": "f1"}, http.StatusOK, nil)
	added := nextCartEvent(t, events)
	assert.Equal(t, 1, added.ItemCount)
	assert.Equal(t, "899", added.Total)

	c.do(http.MethodPut, "/api/v1/cart/items/f1", map[string]any{"quantity": 5}, http.StatusOK, nil)
	updated := nextCartEvent(t, events)
	assert.Equal(t, "4495", updated.Total)
	assert.Greater(t, updated.Version, added.Version)

	c.do(http.MethodDelete, "/api/v1/sessions", nil, http.StatusNoContent, nil)
	select {
	case ev := <-events:
		assert.Equal(t, "end", ev.name)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for end event")
	}
}
