package realtime

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn implements Conn and records written frames.
type fakeConn struct {
	mu       sync.Mutex
	frames   [][]byte
	failWith error
	closed   bool
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return c.failWith
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	c.frames = append(c.frames, buf)
	return nil
}

func (c *fakeConn) SetWriteDeadline(t time.Time) error { return nil }

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) types(t *testing.T) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []string
	for _, frame := range c.frames {
		var event Event
		require.NoError(t, json.Unmarshal(frame, &event))
		out = append(out, event.Type)
	}
	return out
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{}
	hub.Register("u1", conn)

	hub.SendToUser("u1", NewBalanceUpdate(15, 10, "Daily Reward"))
	hub.SendToUser("u2", NewBalanceUpdate(1, 1, "nobody home"))

	assert.Equal(t, []string{"balance_update"}, conn.types(t))
}

func TestHub_ReplacementClosesOldConnection(t *testing.T) {
	hub := NewHub()
	old := &fakeConn{}
	hub.Register("u1", old)

	replacement := &fakeConn{}
	hub.Register("u1", replacement)

	assert.True(t, old.isClosed())

	hub.SendToUser("u1", NewBalanceUpdate(5, 5, "x"))
	assert.Empty(t, old.types(t))
	assert.Len(t, replacement.types(t), 1)

	// Unregister with the stale connection must not evict the replacement.
	hub.Unregister("u1", old)
	assert.True(t, hub.Connected("u1"))
}

func TestHub_FailedWriteDropsConnection(t *testing.T) {
	hub := NewHub()
	good := &fakeConn{}
	bad := &fakeConn{failWith: errors.New("broken pipe")}
	hub.Register("good", good)
	hub.Register("bad", bad)

	hub.Broadcast(NewLeaderboardUpdate(nil))

	assert.True(t, bad.isClosed())
	assert.False(t, hub.Connected("bad"))
	assert.True(t, hub.Connected("good"))
	assert.Equal(t, []string{"leaderboard_update"}, good.types(t))

	// Subsequent sends skip the dropped connection without error.
	hub.SendToUser("bad", NewBalanceUpdate(1, 1, "x"))
	hub.Broadcast(NewLeaderboardUpdate(nil))
	assert.Equal(t, []string{"leaderboard_update", "leaderboard_update"}, good.types(t))
}

func TestHub_PerUserOrdering(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{}
	hub.Register("u1", conn)

	hub.SendToUser("u1", NewBalanceUpdate(30, 20, "Task: bonus"))
	hub.SendToUser("u1", NewTaskCompleted("t1", "bonus", 20))
	hub.Broadcast(NewLeaderboardUpdate(nil))

	assert.Equal(t, []string{"balance_update", "task_completed", "leaderboard_update"}, conn.types(t))
}

func TestHub_Shutdown(t *testing.T) {
	hub := NewHub()
	a := &fakeConn{}
	b := &fakeConn{}
	hub.Register("a", a)
	hub.Register("b", b)

	hub.Shutdown()

	assert.True(t, a.isClosed())
	assert.True(t, b.isClosed())
	assert.False(t, hub.Connected("a"))
	assert.False(t, hub.Connected("b"))
}

func TestEventWireFormat(t *testing.T) {
	payload, err := json.Marshal(NewBalanceUpdate(25, 10, "Daily Reward"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"balance_update","data":{"coins":25,"delta":10,"source":"Daily Reward"}}`, string(payload))

	payload, err = json.Marshal(NewTaskCompleted("t1", "First Login", 5))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"task_completed","data":{"task_id":"t1","task_title":"First Login","coins_earned":5}}`, string(payload))
}
