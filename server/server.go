package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/port-sim/sim"
)

const writeTimeout = 5 * time.Second

// Server accepts websocket sessions on /ws. Every session starts from Base.
type Server struct {
	base     sim.Config
	interval time.Duration

	upgrader websocket.Upgrader
	sessions atomic.Int64
}

// New creates a Server whose sessions step their Run every interval.
func New(base sim.Config, interval time.Duration) *Server {
	return &Server{
		base:     base,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Sessions returns the number of connected sessions.
func (s *Server) Sessions() int64 {
	return s.sessions.Load()
}

// Handler routes /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "sessions": s.Sessions()})
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logrus.Infof("serving port simulation on %s (step every %s)", addr, s.interval)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// ServeWS upgrades the request and runs one session until the client leaves.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Warnf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sid := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{"session": sid, "remote": r.RemoteAddr})

	ctrl, err := NewController(s.base)
	if err != nil {
		log.Errorf("base config rejected: %v", err)
		_ = conn.WriteJSON(errorMessage(sid, err))
		return
	}

	s.sessions.Add(1)
	defer s.sessions.Add(-1)
	log.Info("session opened")
	defer log.Info("session closed")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	out := make(chan Message, 64)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-out:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteJSON(msg); err != nil {
					log.Debugf("write failed: %v", err)
					return
				}
			}
		}
	}()

	in := make(chan []byte)
	go func() {
		defer cancel()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			select {
			case in <- data:
			case <-ctx.Done():
				return
			}
		}
	}()

	send := func(msg Message) bool {
		select {
		case out <- msg:
			return true
		case <-ctx.Done():
			return false
		}
	}

	s.session(ctx, ctrl, sid, log, in, send)

	cancel()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
	select {
	case <-writerDone:
	case <-time.After(500 * time.Millisecond):
	}
}

// session is the only goroutine that touches ctrl.
func (s *Server) session(ctx context.Context, ctrl *Controller, sid string, log *logrus.Entry,
	in <-chan []byte, send func(Message) bool) {

	if !send(snapshotMessage(sid, ctrl.Snapshot())) {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case data := <-in:
			var cmd Command
			if err := json.Unmarshal(data, &cmd); err != nil {
				if !send(errorMessage(sid, err)) {
					return
				}
				continue
			}
			if err := ctrl.Apply(cmd); err != nil {
				log.Warnf("%s rejected: %v", cmd.Type, err)
				if !send(errorMessage(sid, err)) {
					return
				}
				continue
			}
			log.Debugf("%s applied, run %s", cmd.Type, ctrl.Run().ID)
			if !send(snapshotMessage(sid, ctrl.Snapshot())) {
				return
			}
		case <-ticker.C:
			snap, ok := ctrl.Tick()
			if !ok {
				continue
			}
			if !send(snapshotMessage(sid, snap)) {
				return
			}
			if snap.Finished {
				log.Infof("run %s finished at minute %d", snap.RunID, snap.Minute)
			}
		}
	}
}
