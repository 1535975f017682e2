package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wifiportal/internal/queue"
)

type fakeDispatcher struct {
	calls []struct {
		TenantID string
		MAC      string
		Allow    bool
	}
	err error
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, tenantID, mac string, allow bool) error {
	d.calls = append(d.calls, struct {
		TenantID string
		MAC      string
		Allow    bool
	}{tenantID, mac, allow})
	return d.err
}

type fakeSweeper struct {
	swept int
	err   error
}

func (s *fakeSweeper) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	return s.swept, s.err
}

func message(values map[string]interface{}) redis.XMessage {
	return redis.XMessage{ID: "1-0", Values: values}
}

func TestHandleWifiSync(t *testing.T) {
	d := &fakeDispatcher{}
	p := NewProcessor(d, &fakeSweeper{}, zerolog.Nop())

	err := p.Handle(context.Background(), message(map[string]interface{}{
		"type":     queue.TaskWifiSync,
		"tenantId": "t1",
		"mac":      "00:1B:44:11:3A:B7",
		"allow":    "true",
	}))
	require.NoError(t, err)

	require.Len(t, d.calls, 1)
	assert.Equal(t, "t1", d.calls[0].TenantID)
	assert.Equal(t, "00:1B:44:11:3A:B7", d.calls[0].MAC)
	assert.True(t, d.calls[0].Allow)
}

func TestHandleWifiSyncBadAllowFlag(t *testing.T) {
	d := &fakeDispatcher{}
	p := NewProcessor(d, &fakeSweeper{}, zerolog.Nop())

	err := p.Handle(context.Background(), message(map[string]interface{}{
		"type":  queue.TaskWifiSync,
		"allow": "not-a-bool",
	}))
	assert.Error(t, err)
	assert.Empty(t, d.calls)
}

func TestHandleWifiSyncDispatchFailurePropagates(t *testing.T) {
	d := &fakeDispatcher{err: errors.New("controller down")}
	p := NewProcessor(d, &fakeSweeper{}, zerolog.Nop())

	err := p.Handle(context.Background(), message(map[string]interface{}{
		"type":  queue.TaskWifiSync,
		"mac":   "00:1B:44:11:3A:B7",
		"allow": "false",
	}))
	assert.Error(t, err)
}

func TestHandleAccessSweep(t *testing.T) {
	s := &fakeSweeper{swept: 3}
	p := NewProcessor(&fakeDispatcher{}, s, zerolog.Nop())

	err := p.Handle(context.Background(), message(map[string]interface{}{
		"type": queue.TaskAccessSweep,
	}))
	assert.NoError(t, err)
}

func TestHandleUnknownTypeIsAcked(t *testing.T) {
	p := NewProcessor(&fakeDispatcher{}, &fakeSweeper{}, zerolog.Nop())

	// Unknown task types are dropped rather than retried forever.
	err := p.Handle(context.Background(), message(map[string]interface{}{
		"type": "something.else",
	}))
	assert.NoError(t, err)
}

func TestHandleContactNotify(t *testing.T) {
	p := NewProcessor(&fakeDispatcher{}, &fakeSweeper{}, zerolog.Nop())

	err := p.Handle(context.Background(), message(map[string]interface{}{
		"type":      queue.TaskContactNotify,
		"messageId": "m1",
		"name":      "Thabo",
		"email":     "thabo@example.com",
	}))
	assert.NoError(t, err)
}

func TestControllerDispatcherPostsAuthorization(t *testing.T) {
	var got macAuthorization
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	d := NewControllerDispatcher(srv.URL, zerolog.Nop())
	err := d.Dispatch(context.Background(), "t1", "00:1B:44:11:3A:B7", true)
	require.NoError(t, err)

	assert.Equal(t, macAuthorization{TenantID: "t1", MAC: "00:1B:44:11:3A:B7", Allow: true}, got)
}

func TestControllerDispatcherErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewControllerDispatcher(srv.URL, zerolog.Nop())
	assert.Error(t, d.Dispatch(context.Background(), "t1", "00:1B:44:11:3A:B7", false))
}

func TestControllerDispatcherNoURLIsNoop(t *testing.T) {
	d := NewControllerDispatcher("", zerolog.Nop())
	assert.NoError(t, d.Dispatch(context.Background(), "t1", "00:1B:44:11:3A:B7", true))
}
