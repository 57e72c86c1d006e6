package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/midbel/charts/v2"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 << 20
)

var errNoChart = errors.New("no chart loaded")

// Message is exchanged in both directions. Clients send load, move, leave,
// zoom, brush, reset, resize and ping. The server answers with view, move,
// leave, transition, error and pong.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type reply struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type LoadRequest struct {
	Candles  []Candle `json:"candles"`
	RescaleY *bool    `json:"rescale_y,omitempty"`
}

type PointerRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type BrushRequest struct {
	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
}

type SizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// session is the candlestick chart of one connection. Messages of a
// connection are handled one after the other by its read loop.
type session struct {
	srv   *Server
	chart *charts.Chart[time.Time]
	kind  *charts.CandleChart[time.Time]

	send chan reply
	done chan struct{}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	sess := &session{
		srv:  s,
		send: make(chan reply, 256),
		done: make(chan struct{}),
	}
	go sess.writePump(conn)
	sess.readPump(conn)
}

// Schedule forwards the targets of the chart transitions to the client that
// animates them.
func (s *session) Schedule(t charts.Transition) {
	s.reply("transition", transitionOf(t))
}

func (s *session) reply(kind string, data any) {
	select {
	case s.send <- reply{Type: kind, Data: data}:
	case <-s.done:
	}
}

func (s *session) readPump(conn *websocket.Conn) {
	defer func() {
		close(s.send)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}
		if err := s.handle(msg); err != nil {
			log.Debug().Err(err).Str("type", msg.Type).Msg("message rejected")
			s.reply("error", err.Error())
		}
	}
}

func (s *session) writePump(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(s.done)
		conn.Close()
	}()
	for {
		select {
		case msg, ok := <-s.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *session) handle(msg Message) error {
	switch msg.Type {
	case "ping":
		s.reply("pong", nil)
		return nil
	case "load":
		var req LoadRequest
		if err := decodeData(msg, &req); err != nil {
			return err
		}
		return s.load(req)
	}
	if s.chart == nil {
		return errNoChart
	}
	switch msg.Type {
	case "move":
		var req PointerRequest
		if err := decodeData(msg, &req); err != nil {
			return err
		}
		s.chart.Move(req.X, req.Y)
		return nil
	case "leave":
		s.chart.Leave()
		return nil
	case "zoom":
		var req [2]int
		if err := decodeData(msg, &req); err != nil {
			return err
		}
		if err := s.kind.Zoom(charts.Window{Start: req[0], End: req[1]}); err != nil {
			return err
		}
	case "brush":
		var req BrushRequest
		if err := decodeData(msg, &req); err != nil {
			return err
		}
		if err := s.kind.Brush(req.X0, req.X1); err != nil {
			return err
		}
	case "reset":
		if err := s.kind.Reset(); err != nil {
			return err
		}
	case "resize":
		var req SizeRequest
		if err := decodeData(msg, &req); err != nil {
			return err
		}
		if req.Width <= s.chart.Padding.Horizontal() || req.Height <= s.chart.Padding.Vertical() {
			return fmt.Errorf("size %gx%g leaves no room for padding", req.Width, req.Height)
		}
		s.chart.Resize(req.Width, req.Height)
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return s.view()
}

func (s *session) load(req LoadRequest) error {
	rows, err := Candles(req.Candles)
	if err != nil {
		return err
	}
	cfg := s.srv.cfg.Options()
	if req.RescaleY != nil {
		cfg.RescaleY = *req.RescaleY
	}
	kind := s.srv.candlestick(cfg, rows)
	kind.Scheduler = s

	chart := charts.New(cfg, charts.Kind[time.Time](kind))
	chart.OnMove = func(h charts.Hover[time.Time]) {
		s.reply("move", Hover(h))
	}
	chart.OnLeave = func() {
		s.reply("leave", nil)
	}
	s.chart, s.kind = chart, kind
	return s.view()
}

func (s *session) view() error {
	v, err := Zoom(s.chart, s.kind)
	if err != nil {
		return err
	}
	s.reply("view", v)
	return nil
}

func decodeData(msg Message, v any) error {
	if len(msg.Data) == 0 {
		return fmt.Errorf("%s: missing data", msg.Type)
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		return fmt.Errorf("%s: %w", msg.Type, err)
	}
	return nil
}
