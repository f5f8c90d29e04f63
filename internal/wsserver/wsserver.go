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
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/log"
)

const (
	TopicTransactions = "transactions"
	TopicOperations   = "operations"

	defaultSendBuffer = 100
)

// WebSocketServer pushes change events to every connection listening on the topic
type WebSocketServer interface {
	Handler() http.HandlerFunc
	Broadcast(topic string, data interface{})
	ConnectionCount() int
	Close()
}

// EventMessage is the envelope of every pushed event
type EventMessage struct {
	Type  string      `json:"type"`
	Topic string      `json:"topic,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

type webSocketServer struct {
	ctx               context.Context
	mux               sync.Mutex
	upgrader          *websocket.Upgrader
	connections       map[string]*webSocketConnection
	heartbeatInterval time.Duration
	sendBuffer        int
	closed            bool
}

// NewWebSocketServer create a new server with a simplified interface
func NewWebSocketServer(ctx context.Context) WebSocketServer {
	return &webSocketServer{
		ctx:               log.WithLogField(ctx, "role", "websocket"),
		connections:       make(map[string]*webSocketConnection),
		heartbeatInterval: config.GetDuration(config.WebsocketHeartbeatInterval),
		sendBuffer:        defaultSendBuffer,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  int(config.GetByteSize(config.WebsocketReadBufferSize)),
			WriteBufferSize: int(config.GetByteSize(config.WebsocketWriteBufferSize)),
			// Cross origin requests are governed by the CORS configuration of the API server
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *webSocketServer) handler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.L(s.ctx).Errorf("WebSocket upgrade failed: %s", err)
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.closed {
		conn.Close()
		return
	}
	c := newConnection(s, conn)
	s.connections[c.id] = c
}

func (s *webSocketServer) connectionClosed(c *webSocketConnection) {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.connections, c.id)
}

func (s *webSocketServer) Handler() http.HandlerFunc {
	return s.handler
}

// Broadcast queues the event on each listening connection, without blocking. A connection
// that has fallen too far behind is closed, so the client reconnects and resyncs.
func (s *webSocketServer) Broadcast(topic string, data interface{}) {
	msg := &EventMessage{Type: "event", Topic: topic, Data: data}
	s.mux.Lock()
	connections := make([]*webSocketConnection, 0, len(s.connections))
	for _, c := range s.connections {
		connections = append(connections, c)
	}
	s.mux.Unlock()
	for _, c := range connections {
		if c.isListening(topic) && !c.queue(msg) {
			log.L(c.ctx).Warnf("Slow consumer on topic '%s'. Closing connection", topic)
			go c.close()
		}
	}
}

func (s *webSocketServer) ConnectionCount() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.connections)
}

func (s *webSocketServer) Close() {
	s.mux.Lock()
	s.closed = true
	connections := make([]*webSocketConnection, 0, len(s.connections))
	for _, c := range s.connections {
		connections = append(connections, c)
	}
	s.mux.Unlock()
	for _, c := range connections {
		c.close()
	}
}
