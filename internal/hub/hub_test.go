package hub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jitesh050/TrackWise/internal/domain"
)

func testHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func recvMessage(t *testing.T, c *Client) DeltaMessage {
	t.Helper()
	select {
	case data := <-c.Send:
		var msg DeltaMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delta message")
		return DeltaMessage{}
	}
}

func update(trainNo, station string) domain.StatusDelta {
	return domain.StatusDelta{
		Type:     domain.DeltaUpdate,
		Snapshot: &domain.StatusSnapshot{TrainNo: trainNo, NextStationCode: station},
		Station:  station,
	}
}

func TestClientSubscriptions(t *testing.T) {
	c := NewClient("c1", 8)

	c.AddStations([]string{"AGRA", "BPL"})
	assert.True(t, c.wants("AGRA"))
	assert.False(t, c.wants("CNB"))

	c.RemoveStations([]string{"AGRA"})
	assert.False(t, c.wants("AGRA"))
	assert.True(t, c.wants("BPL"))

	c.AddStations([]string{"*"})
	assert.True(t, c.wants("CNB"))
	c.RemoveStations([]string{"*"})
	assert.False(t, c.wants("CNB"))
}

func TestFanoutFiltersByStation(t *testing.T) {
	h := testHub(t)

	agra := NewClient("agra", 8)
	agra.AddStations([]string{"AGRA"})
	everything := NewClient("all", 8)
	everything.AddStations([]string{"*"})

	h.Register(agra)
	h.Register(everything)
	waitForClients(t, h, 2)

	h.Broadcast([]domain.StatusDelta{
		update("12002", "AGRA"),
		update("12952", "JP"),
	})

	msg := recvMessage(t, agra)
	require.Len(t, msg.Payload.Updates, 1)
	assert.Equal(t, "12002", msg.Payload.Updates[0].TrainNo)

	msg = recvMessage(t, everything)
	assert.Len(t, msg.Payload.Updates, 2)
}

func TestFanoutRemoves(t *testing.T) {
	h := testHub(t)

	c := NewClient("c", 8)
	c.AddStations([]string{"*"})
	h.Register(c)
	waitForClients(t, h, 1)

	h.Broadcast([]domain.StatusDelta{
		{Type: domain.DeltaRemove, TrainNo: "12002", Station: "AGRA"},
	})

	msg := recvMessage(t, c)
	assert.Equal(t, "delta", msg.Type)
	assert.Equal(t, []string{"12002"}, msg.Payload.Removes)
	assert.Empty(t, msg.Payload.Updates)
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	h := testHub(t)

	c := NewClient("c", 8)
	h.Register(c)
	waitForClients(t, h, 1)

	h.Unregister(c)
	waitForClients(t, h, 0)

	select {
	case _, open := <-c.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestBroadcastEmptyIsNoop(t *testing.T) {
	h := testHub(t)
	c := NewClient("c", 8)
	c.AddStations([]string{"*"})
	h.Register(c)
	waitForClients(t, h, 1)

	h.Broadcast(nil)

	select {
	case <-c.Send:
		t.Fatal("unexpected message for empty broadcast")
	case <-time.After(50 * time.Millisecond):
	}
}
