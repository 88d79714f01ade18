// Package network carries the realtime side of the casino protocol: a
// websocket client speaking JSON event frames, and a dispatcher that
// fans events out to registered handlers.
package network

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"

	"github.com/lais-vegas/vegas/core/log"
)

const DefaultHeartbeatSec = 30

// Frame is one websocket message: an event name plus its payload.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type FuncOnEvent func(event string, data json.RawMessage)
type FuncOnStatus func(enable bool)

type WSClientOptions struct {
	RemoteAddress     string
	APIKey            string
	TableID           string
	HeartbeatInterval time.Duration

	OnEvent        FuncOnEvent
	OnStatus       FuncOnStatus
	ReconnectDelay time.Duration
}

func NewWSClient(opts WSClientOptions) *WSClient {
	ret := &WSClient{
		opts:   opts,
		closed: make(chan struct{}),
	}
	if ret.opts.HeartbeatInterval < time.Duration(DefaultHeartbeatSec)*time.Second {
		ret.opts.HeartbeatInterval = time.Duration(DefaultHeartbeatSec) * time.Second
	}
	return ret
}

type WSClient struct {
	opts   WSClientOptions
	mutex  sync.RWMutex
	conn   *ws.Conn
	chSend chan Frame
	closed chan struct{}
}

func (c *WSClient) Start() error {
	return c.connect()
}

func (c *WSClient) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
		c.opts.ReconnectDelay = -1
		c.mutex.Lock()
		defer c.mutex.Unlock()
		if c.conn != nil {
			return c.conn.Close()
		}
	}
	return nil
}

// Emit queues one frame for sending. Fails when not connected.
func (c *WSClient) Emit(event string, v any) error {
	var data json.RawMessage
	if v != nil {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		data = raw
	}
	c.mutex.RLock()
	chSend := c.chSend
	c.mutex.RUnlock()
	if chSend == nil {
		return fmt.Errorf("not connected")
	}
	select {
	case chSend <- Frame{Event: event, Data: data}:
		return nil
	case <-c.closed:
		return fmt.Errorf("client closed")
	}
}

func (c *WSClient) onStatus(enable bool) {
	if c.opts.OnStatus != nil {
		c.opts.OnStatus(enable)
	}
	if !enable {
		c.reconnect()
	}
}

func (c *WSClient) reconnect() {
	if c.opts.ReconnectDelay > 0 {
		time.AfterFunc(c.opts.ReconnectDelay, func() {
			select {
			case <-c.closed:
			default:
				if err := c.connect(); err != nil {
					log.Errorf("ws reconnect err:%v", err)
				}
			}
		})
	}
}

func (c *WSClient) connect() error {
	dialer := &ws.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: c.opts.HeartbeatInterval,
	}

	conn, _, err := dialer.Dial(c.opts.RemoteAddress, nil)
	if err != nil {
		c.reconnect()
		return err
	}

	if err := c.handshake(conn); err != nil {
		conn.Close()
		log.Errorf("ws handshake err:%v", err)
		return err
	}

	go c.work(conn)
	return nil
}

// handshake authenticates and joins the table room before any game
// event flows.
func (c *WSClient) handshake(conn *ws.Conn) error {
	deadline := time.Now().Add(c.opts.HeartbeatInterval)
	conn.SetReadDeadline(deadline)
	conn.SetWriteDeadline(deadline)
	defer func() {
		conn.SetReadDeadline(time.Time{})
		conn.SetWriteDeadline(time.Time{})
	}()

	authFrame := Frame{Event: "auth"}
	authFrame.Data, _ = json.Marshal(map[string]string{"api_key": c.opts.APIKey})
	if err := conn.WriteJSON(authFrame); err != nil {
		return err
	}

	var resp Frame
	if err := conn.ReadJSON(&resp); err != nil {
		return err
	}
	switch resp.Event {
	case "authenticated":
	case "auth_error":
		return fmt.Errorf("auth rejected: %s", string(resp.Data))
	default:
		return fmt.Errorf("unexpected handshake frame %q", resp.Event)
	}

	if c.opts.TableID != "" {
		join := Frame{Event: "join_table"}
		join.Data, _ = json.Marshal(map[string]string{"table_id": c.opts.TableID})
		if err := conn.WriteJSON(join); err != nil {
			return err
		}
	}
	return nil
}

func (c *WSClient) work(conn *ws.Conn) {
	c.mutex.Lock()
	c.conn = conn
	c.chSend = make(chan Frame, 16)
	chSend := c.chSend
	c.mutex.Unlock()

	c.onStatus(true)
	defer c.onStatus(false)

	chRead := make(chan Frame, 16)
	chConnClosed := make(chan struct{})

	go func() {
		defer close(chConnClosed)
		for {
			var f Frame
			if err := conn.ReadJSON(&f); err != nil {
				select {
				case <-c.closed:
				default:
					log.Errorf("ws read err:%v", err)
				}
				return
			}
			chRead <- f
		}
	}()

	tk := time.NewTicker(c.opts.HeartbeatInterval)
	defer tk.Stop()
	defer conn.Close()

	for {
		select {
		case <-c.closed:
			return
		case <-chConnClosed:
			return
		case f := <-chSend:
			if err := conn.WriteJSON(f); err != nil {
				log.Errorf("ws write err:%v", err)
				return
			}
		case <-tk.C:
			if err := conn.WriteControl(ws.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
				log.Errorf("ws ping err:%v", err)
				return
			}
		case f := <-chRead:
			if c.opts.OnEvent != nil {
				c.opts.OnEvent(f.Event, f.Data)
			}
		}
	}
}
