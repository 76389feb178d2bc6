package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient captures sent messages
type mockClient struct {
	id          string
	workspaceID int32
	messages    [][]byte
	mu          sync.Mutex
	closed      bool
	full        bool
	entities    []EntityType
}

func newMockClient(id string, workspaceID int32) *mockClient {
	return &mockClient{id: id, workspaceID: workspaceID}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) WorkspaceID() int32 {
	return m.workspaceID
}

func (m *mockClient) Subscribed(entity EntityType) bool {
	if len(m.entities) == 0 {
		return true
	}
	for _, e := range m.entities {
		if e == entity {
			return true
		}
	}
	return false
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.full {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]byte, len(m.messages))
	copy(copied, m.messages)
	return copied
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("client-1", 1)
	client2 := newMockClient("client-2", 1)
	client3 := newMockClient("client-3", 2)

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)

	assert.Equal(t, 2, hub.ClientCount(1))
	assert.Equal(t, 1, hub.ClientCount(2))
	assert.Equal(t, 0, hub.ClientCount(999))
	assert.Equal(t, 3, hub.TotalClientCount())

	hub.Unregister(client1)
	assert.Equal(t, 1, hub.ClientCount(1))

	hub.Unregister(client2)
	hub.Unregister(client3)
	assert.Equal(t, 0, hub.ClientCount(1))
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_Broadcast_WorkspaceIsolation(t *testing.T) {
	hub := NewHub()

	client1a := newMockClient("client-1a", 1)
	client1b := newMockClient("client-1b", 1)
	client2 := newMockClient("client-2", 2)

	hub.Register(client1a)
	hub.Register(client1b)
	hub.Register(client2)

	hub.Broadcast(1, DailyRecordCreated(map[string]interface{}{"id": float64(42)}))

	assert.Len(t, client1a.GetMessages(), 1)
	assert.Len(t, client1b.GetMessages(), 1)
	assert.Empty(t, client2.GetMessages(), "workspace 2 must not see workspace 1 events")
}

func TestHub_Broadcast_PreservesOrder(t *testing.T) {
	hub := NewHub()
	client := newMockClient("client-1", 1)
	hub.Register(client)

	hub.Broadcast(1, DailyRecordCreated(map[string]interface{}{"id": float64(1)}))
	hub.Broadcast(1, ExpenseCreated(map[string]interface{}{"id": float64(2)}))
	hub.Broadcast(1, DailyRecordDeleted(map[string]interface{}{"id": float64(1)}))

	msgs := client.GetMessages()
	require.Len(t, msgs, 3)

	var types []string
	for _, raw := range msgs {
		var evt map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &evt))
		types = append(types, evt["type"].(string))
	}
	assert.Equal(t, []string{"daily_record.created", "expense.created", "daily_record.deleted"}, types)
}

func TestHub_Broadcast_DropsSlowClient(t *testing.T) {
	hub := NewHub()
	healthy := newMockClient("healthy", 1)
	slow := newMockClient("slow", 1)
	slow.full = true

	hub.Register(healthy)
	hub.Register(slow)

	hub.Broadcast(1, CarConfigActivated(map[string]interface{}{"id": float64(3)}))

	assert.Len(t, healthy.GetMessages(), 1)
	assert.True(t, slow.IsClosed())
	assert.Equal(t, 1, hub.ClientCount(1))
}

func TestHub_ConcurrentAccess(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	clientCount := 50

	clients := make([]*mockClient, clientCount)
	for i := 0; i < clientCount; i++ {
		clients[i] = newMockClient(fmt.Sprintf("client-%d", i), int32(i%5))
	}

	for i := 0; i < clientCount; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			hub.Register(clients[idx])
		}(i)
	}
	wg.Wait()

	assert.Equal(t, clientCount, hub.TotalClientCount())

	for i := 0; i < clientCount; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			hub.Broadcast(int32(idx%5), DailyRecordUpdated(map[string]interface{}{"id": float64(idx)}))
		}(i)
		go func(idx int) {
			defer wg.Done()
			hub.Unregister(clients[idx])
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_CloseAll(t *testing.T) {
	hub := NewHub()
	a := newMockClient("a", 1)
	b := newMockClient("b", 2)
	hub.Register(a)
	hub.Register(b)

	hub.CloseAll()

	assert.True(t, a.IsClosed())
	assert.True(t, b.IsClosed())
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_UnregisterNonexistent(t *testing.T) {
	hub := NewHub()

	require.NotPanics(t, func() {
		hub.Unregister(newMockClient("client-1", 1))
	})
}

func TestHub_BroadcastToEmptyWorkspace(t *testing.T) {
	hub := NewHub()

	require.NotPanics(t, func() {
		hub.Broadcast(999, DailyRecordCreated(map[string]interface{}{"id": float64(1)}))
	})
}

func TestHub_BroadcastRespectsSubscriptions(t *testing.T) {
	hub := NewHub()
	all := newMockClient("all", 1)
	vehicles := newMockClient("vehicles", 1)
	vehicles.entities = []EntityType{EntityTypeCarConfig}
	hub.Register(all)
	hub.Register(vehicles)

	hub.Broadcast(1, DailyRecordCreated(map[string]interface{}{"id": 1}))
	hub.Broadcast(1, CarConfigActivated(map[string]interface{}{"id": 2}))

	assert.Len(t, all.GetMessages(), 2)
	require.Len(t, vehicles.GetMessages(), 1)

	var event Event
	require.NoError(t, json.Unmarshal(vehicles.GetMessages()[0], &event))
	assert.Equal(t, "car_config.activated", event.Type)
}
