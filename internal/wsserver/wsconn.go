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
	"sync"
	"time"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
)

const writeWait = 10 * time.Second

type webSocketConnection struct {
	id      string
	ctx     context.Context
	server  *webSocketServer
	conn    *ws.Conn
	mux     sync.Mutex
	closed  bool
	all     bool
	topics  map[string]bool
	send    chan *EventMessage
	closing chan struct{}
}

type webSocketCommandMessage struct {
	Type    string `json:"type,omitempty"`
	Topic   string `json:"topic,omitempty"`
	Message string `json:"message,omitempty"`
}

func newConnection(server *webSocketServer, conn *ws.Conn) *webSocketConnection {
	id := uuid.NewString()
	wsc := &webSocketConnection{
		id:      id,
		server:  server,
		conn:    conn,
		topics:  make(map[string]bool),
		send:    make(chan *EventMessage, server.sendBuffer),
		closing: make(chan struct{}),
		ctx:     log.WithLogField(server.ctx, "ws", id),
	}
	go wsc.listen()
	go wsc.sender()
	return wsc
}

func (c *webSocketConnection) close() {
	c.mux.Lock()
	if c.closed {
		c.mux.Unlock()
		return
	}
	c.closed = true
	c.conn.Close()
	close(c.closing)
	c.mux.Unlock()

	c.server.connectionClosed(c)
	log.L(c.ctx).Infof("WS/%s: Disconnected", c.id)
}

// queue returns false if the send buffer is full
func (c *webSocketConnection) queue(msg *EventMessage) bool {
	select {
	case c.send <- msg:
		return true
	case <-c.closing:
		return true
	default:
		return false
	}
}

func (c *webSocketConnection) isListening(topic string) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.all || c.topics[topic]
}

func (c *webSocketConnection) sender() {
	defer c.close()
	var heartbeat <-chan time.Time
	if c.server.heartbeatInterval > 0 {
		ticker := time.NewTicker(c.server.heartbeatInterval)
		defer ticker.Stop()
		heartbeat = ticker.C
	}
	for {
		select {
		case <-c.closing:
			log.L(c.ctx).Debugf("Websocket sender closing")
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				log.L(c.ctx).Errorf("Websocket write failed: %s", err)
				return
			}
		case <-heartbeat:
			if err := c.conn.WriteControl(ws.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.L(c.ctx).Errorf("Websocket heartbeat failed: %s", err)
				return
			}
		}
	}
}

func (c *webSocketConnection) setListening(topic string, listening bool) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if topic == "" {
		c.all = listening
		if !listening {
			c.topics = make(map[string]bool)
		}
		return
	}
	if listening {
		c.topics[topic] = true
	} else {
		delete(c.topics, topic)
	}
}

func (c *webSocketConnection) listen() {
	defer c.close()
	log.L(c.ctx).Infof("Websocket connected")
	for {
		var msg webSocketCommandMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			log.L(c.ctx).Infof("Websocket error: %s", err)
			return
		}
		log.L(c.ctx).Debugf("Websocket received: %+v", msg)

		switch msg.Type {
		case "listen":
			c.setListening(msg.Topic, true)
			c.queue(&EventMessage{Type: "listening", Topic: msg.Topic})
		case "unlisten":
			c.setListening(msg.Topic, false)
			c.queue(&EventMessage{Type: "unlistened", Topic: msg.Topic})
		case "error":
			log.L(c.ctx).Warnf("%s", i18n.Expand(c.ctx, i18n.MsgWebsocketClientError, msg.Message))
		default:
			log.L(c.ctx).Errorf("Unexpected message type: %+v", msg)
		}
	}
}
