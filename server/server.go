package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"thermotube/calculator"
	"thermotube/model"
)

// 服务端参数
type Settings struct {
	Tube    calculator.Config // 缺省物性参数，websocket 可通过 env 消息修改
	Dt      float64           // 请求未给出 dt 时使用的采样间隔
	Workers int               // 批量计算的并发数，<= 0 表示不限制
	Window  int               // websocket 历史采样点个数
}

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	settings Settings
}

func NewServer(addr string, upgrader websocket.Upgrader, settings Settings) *Server {
	if settings.Dt <= 0 {
		settings.Dt = model.DefaultDt
	}
	if settings.Window < 1 {
		settings.Window = 1000
	}
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		settings: settings,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("upgrade failed")
		return
	}
	hub := NewHub(conn, s.settings.Tube, s.settings.Dt, s.settings.Window)
	log.WithField("remote", conn.RemoteAddr().String()).Info("websocket connected")
	hub.run()
	log.WithField("remote", conn.RemoteAddr().String()).Info("websocket closed")
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/simular", s.handleSimulate)
	mux.HandleFunc("/api/simular/batch", s.handleBatch)
	mux.HandleFunc("/ws", s.serveWs)
	return cors.Default().Handler(mux)
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("server listening")
	return http.ListenAndServe(s.addr, s.Handler())
}
