// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wsserver

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/stretchr/testify/assert"
)

func newTestWebSocketServer() (*webSocketServer, *httptest.Server) {
	config.Reset()
	s := NewWebSocketServer(context.Background()).(*webSocketServer)
	ts := httptest.NewServer(s.Handler())
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *ws.Conn {
	u, err := url.Parse(ts.URL)
	assert.NoError(t, err)
	u.Scheme = "ws"
	u.Path = "/ws"
	c, _, err := ws.DefaultDialer.Dial(u.String(), nil)
	assert.NoError(t, err)
	return c
}

func listen(t *testing.T, c *ws.Conn, topic string) {
	err := c.WriteJSON(&webSocketCommandMessage{Type: "listen", Topic: topic})
	assert.NoError(t, err)
	var reply EventMessage
	err = c.ReadJSON(&reply)
	assert.NoError(t, err)
	assert.Equal(t, "listening", reply.Type)
	assert.Equal(t, topic, reply.Topic)
}

func TestConnectListenBroadcast(t *testing.T) {
	assert := assert.New(t)

	w, ts := newTestWebSocketServer()
	defer ts.Close()

	c := dial(t, ts)
	listen(t, c, "")
	assert.Equal(1, w.ConnectionCount())

	w.Broadcast(TopicTransactions, map[string]string{"txId": "0x01"})
	w.Broadcast(TopicOperations, "op1")

	var msg map[string]interface{}
	assert.NoError(c.ReadJSON(&msg))
	assert.Equal("event", msg["type"])
	assert.Equal(TopicTransactions, msg["topic"])
	assert.Equal(map[string]interface{}{"txId": "0x01"}, msg["data"])
	assert.NoError(c.ReadJSON(&msg))
	assert.Equal(TopicOperations, msg["topic"])
	assert.Equal("op1", msg["data"])

	w.Close()
	for w.ConnectionCount() > 0 {
		time.Sleep(1 * time.Millisecond)
	}
}

func TestConnectTopicIsolation(t *testing.T) {
	assert := assert.New(t)

	w, ts := newTestWebSocketServer()
	defer ts.Close()

	c1 := dial(t, ts)
	c2 := dial(t, ts)
	listen(t, c1, TopicTransactions)
	listen(t, c2, TopicOperations)

	w.Broadcast(TopicTransactions, "Hello Number 1")
	w.Broadcast(TopicOperations, "Hello Number 2")

	var msg EventMessage
	assert.NoError(c1.ReadJSON(&msg))
	assert.Equal("Hello Number 1", msg.Data)
	assert.NoError(c2.ReadJSON(&msg))
	assert.Equal("Hello Number 2", msg.Data)

	// After unlisten, only the acknowledgement arrives on c1
	assert.NoError(c1.WriteJSON(&webSocketCommandMessage{Type: "unlisten", Topic: TopicTransactions}))
	assert.NoError(c1.ReadJSON(&msg))
	assert.Equal("unlistened", msg.Type)
	w.Broadcast(TopicTransactions, "dropped")
	w.Broadcast(TopicOperations, "Hello again")
	assert.NoError(c2.ReadJSON(&msg))
	assert.Equal("Hello again", msg.Data)

	w.Close()
}

func TestUnlistenAll(t *testing.T) {
	w, ts := newTestWebSocketServer()
	defer ts.Close()
	c := dial(t, ts)
	listen(t, c, "")
	listen(t, c, TopicOperations)

	assert.NoError(t, c.WriteJSON(&webSocketCommandMessage{Type: "unlisten"}))
	var msg EventMessage
	assert.NoError(t, c.ReadJSON(&msg))
	assert.Equal(t, "unlistened", msg.Type)

	w.mux.Lock()
	var conn *webSocketConnection
	for _, wc := range w.connections {
		conn = wc
	}
	w.mux.Unlock()
	assert.False(t, conn.isListening(TopicOperations))
	assert.False(t, conn.isListening(TopicTransactions))
	w.Close()
}

func TestIgnoresUnknownAndErrorMessages(t *testing.T) {
	w, ts := newTestWebSocketServer()
	defer ts.Close()
	c := dial(t, ts)

	assert.NoError(t, c.WriteJSON(&webSocketCommandMessage{Type: "ignoreme"}))
	assert.NoError(t, c.WriteJSON(&webSocketCommandMessage{Type: "error", Message: "Panic!"}))
	// Still connected
	listen(t, c, TopicOperations)
	w.Close()
}

func TestClientDisconnect(t *testing.T) {
	w, ts := newTestWebSocketServer()
	defer ts.Close()
	c := dial(t, ts)
	listen(t, c, "")

	c.Close()
	for w.ConnectionCount() > 0 {
		time.Sleep(1 * time.Millisecond)
	}
	// Nothing to deliver to, and nothing blocks
	w.Broadcast(TopicOperations, "nobody")
}

func TestHeartbeat(t *testing.T) {
	config.Reset()
	config.Set(config.WebsocketHeartbeatInterval, "1ms")
	w := NewWebSocketServer(context.Background()).(*webSocketServer)
	ts := httptest.NewServer(w.Handler())
	defer ts.Close()

	c := dial(t, ts)
	pinged := make(chan struct{}, 1)
	c.SetPingHandler(func(string) error {
		select {
		case pinged <- struct{}{}:
		default:
		}
		return nil
	})
	go func() {
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()
	<-pinged
	w.Close()
}

func TestQueueFull(t *testing.T) {
	c := &webSocketConnection{
		send:    make(chan *EventMessage, 1),
		closing: make(chan struct{}),
	}
	assert.True(t, c.queue(&EventMessage{Type: "event"}))
	assert.False(t, c.queue(&EventMessage{Type: "event"}))
	close(c.closing)
	// Closed connections swallow messages
	<-c.send
	assert.True(t, c.queue(&EventMessage{Type: "event"}))
}

func TestRejectAfterClose(t *testing.T) {
	w, ts := newTestWebSocketServer()
	defer ts.Close()
	w.Close()

	c := dial(t, ts)
	_, _, err := c.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, w.ConnectionCount())
}
