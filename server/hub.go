package server

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"thermotube/calculator"
	"thermotube/deque"
	"thermotube/model"
)

var errClosed = errors.New("connection closed")

// Hub serves one websocket connection.
type Hub struct {
	conn *websocket.Conn

	calcHub *calculator.CalcHub

	mu      sync.Mutex // 保护 cfg 和 history
	cfg     calculator.Config
	history *deque.ArrDeque

	dt float64 // 缺省采样间隔

	// request
	msg chan model.Msg
	// response
	send chan model.Msg
	done chan struct{}
}

func NewHub(conn *websocket.Conn, cfg calculator.Config, dt float64, window int) *Hub {
	return &Hub{
		conn:    conn,
		calcHub: calculator.NewCalcHub(),
		cfg:     cfg,
		history: deque.NewArrDeque(window),
		dt:      dt,
		msg:     make(chan model.Msg, 10),
		send:    make(chan model.Msg, 64),
		done:    make(chan struct{}),
	}
}

// run blocks until the peer goes away.
func (h *Hub) run() {
	defer h.conn.Close()

	reqDone := make(chan struct{})
	respDone := make(chan struct{})
	go func() {
		defer close(reqDone)
		h.handleRequest()
	}()
	go func() {
		defer close(respDone)
		h.handleResponse()
	}()

	for {
		var msg model.Msg
		if err := h.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debug("read message failed")
			}
			break
		}
		h.msg <- msg
	}
	close(h.msg)
	<-reqDone
	h.calcHub.StopSignal()
	close(h.done)
	<-respDone
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.send:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithError(err).Warn("write message failed")
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) reply(msg model.Msg) error {
	select {
	case h.send <- msg:
		return nil
	case <-h.done:
		return errClosed
	}
}

func (h *Hub) replyJSON(typ string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return h.reply(model.Msg{Type: typ, Content: string(data)})
}

func (h *Hub) replyError(err error) {
	_ = h.reply(model.Msg{Type: model.MsgError, Content: err.Error()})
}

func (h *Hub) handleRequest() {
	for msg := range h.msg {
		switch msg.Type {
		case model.MsgEnv:
			h.setEnv(msg)
		case model.MsgStart:
			h.start(msg)
		case model.MsgStop:
			h.calcHub.StopSignal()
			_ = h.reply(model.Msg{Type: model.MsgStopped, Content: "stopped"})
		case model.MsgHistory:
			h.mu.Lock()
			samples := h.history.Slice()
			h.mu.Unlock()
			if err := h.replyJSON(model.MsgHistory, samples); err != nil {
				log.WithError(err).Warn("reply history failed")
			}
		default:
			log.WithField("type", msg.Type).Warn("no such type")
			h.replyError(errors.Errorf("no such type: %q", msg.Type))
		}
	}
}

func (h *Hub) setEnv(msg model.Msg) {
	var env model.Env
	if err := json.Unmarshal([]byte(msg.Content), &env); err != nil {
		h.replyError(errors.Wrap(err, "decode env"))
		return
	}
	cfg := calculator.FromEnv(env)
	if err := cfg.Validate(); err != nil {
		h.replyError(err)
		return
	}
	h.mu.Lock()
	h.cfg = cfg
	h.mu.Unlock()
	_ = h.reply(model.Msg{Type: model.MsgEnvSet, Content: "env is set"})
}

func (h *Hub) start(msg model.Msg) {
	var req model.SimulationReq
	if err := json.Unmarshal([]byte(msg.Content), &req); err != nil {
		h.replyError(errors.Wrap(err, "decode request"))
		return
	}

	h.mu.Lock()
	cfg := h.cfg
	h.mu.Unlock()

	err := h.calcHub.StartSignal(context.Background(), func(ctx context.Context) {
		h.mu.Lock()
		h.history.Clear()
		h.mu.Unlock()

		res, err := calculator.Stream(ctx, cfg, req.Temperatures, req.GetDt(h.dt), func(s model.Sample) error {
			h.mu.Lock()
			h.history.AddLast(s)
			h.mu.Unlock()
			return h.replyJSON(model.MsgSample, s)
		})
		switch {
		case err == nil:
			if err := h.replyJSON(model.MsgFinished, res.Response()); err != nil {
				log.WithError(err).Warn("reply result failed")
			}
		case errors.Is(err, context.Canceled), errors.Is(err, errClosed):
			log.WithError(err).Debug("stream stopped")
		default:
			h.replyError(err)
		}
	})
	if err != nil {
		h.replyError(err)
	}
}
