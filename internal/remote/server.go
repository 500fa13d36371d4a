package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-flood/internal/progress"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 32
)

// Server exposes a progress.Store to websocket clients.
type Server struct {
	store    progress.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	clients  atomic.Int64
}

// NewServer creates a server backed by store.
func NewServer(store progress.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Terminal clients send no Origin header.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes: GET /ws and GET /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.serveWS)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintf(w, "ok %d\n", s.clients.Load())
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting progress backend", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("stopping progress backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// conn is one connected websocket client.
type conn struct {
	srv  *Server
	ws   *websocket.Conn
	send chan Message
	log  *log.Logger
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &conn{
		srv:  s,
		ws:   ws,
		send: make(chan Message, sendBuffer),
		log:  s.logger.With("remote", r.RemoteAddr),
	}
	s.clients.Add(1)
	c.log.Debug("client connected")

	go c.writePump()
	go c.readPump()
}

// readPump decodes requests and queues one response per request.
func (c *conn) readPump() {
	defer func() {
		close(c.send)
		c.ws.Close()
		c.srv.clients.Add(-1)
		c.log.Debug("client disconnected")
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var req Message
		if err := c.ws.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.log.Warn("websocket read failed", "error", err)
			}
			return
		}
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		c.send <- c.srv.handle(context.Background(), req)
	}
}

// writePump writes queued responses and keeps the connection alive with pings.
func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handle runs one request against the store.
func (s *Server) handle(ctx context.Context, req Message) Message {
	resp, err := s.dispatch(ctx, req)
	if err != nil {
		s.logger.Warn("request failed", "type", req.Type, "id", req.ID, "error", err)
		return Message{Type: req.Type, ID: req.ID, Error: err.Error()}
	}
	return resp
}

func (s *Server) dispatch(ctx context.Context, req Message) (Message, error) {
	switch req.Type {
	case TypeProfilesList:
		profiles, err := s.store.Profiles(ctx)
		if err != nil {
			return Message{}, err
		}
		if profiles == nil {
			profiles = []progress.Profile{}
		}
		return newMessage(req.Type, req.ID, profiles)

	case TypeProfilesSave:
		var p progress.Profile
		if err := req.decode(&p); err != nil {
			return Message{}, err
		}
		if p.ID == "" {
			return Message{}, fmt.Errorf("profile id is required")
		}
		if err := s.store.SaveProfile(ctx, p); err != nil {
			return Message{}, err
		}
		return newMessage(req.Type, req.ID, nil)

	case TypeProfilesDelete:
		var ref ProfileRef
		if err := req.decode(&ref); err != nil {
			return Message{}, err
		}
		if err := s.store.DeleteProfile(ctx, ref.ProfileID); err != nil {
			return Message{}, err
		}
		return newMessage(req.Type, req.ID, nil)

	case TypeProgressList:
		var ref ProfileRef
		if err := req.decode(&ref); err != nil {
			return Message{}, err
		}
		records, err := s.store.Progress(ctx, ref.ProfileID)
		if err != nil {
			return Message{}, err
		}
		if records == nil {
			records = []progress.Record{}
		}
		return newMessage(req.Type, req.ID, records)

	case TypeProgressSave:
		var r progress.Record
		if err := req.decode(&r); err != nil {
			return Message{}, err
		}
		if r.ProfileID == "" || r.LevelID < 1 {
			return Message{}, fmt.Errorf("progress needs a profile id and level id")
		}
		if err := s.store.SaveProgress(ctx, r); err != nil {
			return Message{}, err
		}
		return newMessage(req.Type, req.ID, nil)

	default:
		return Message{}, fmt.Errorf("unknown message type %q", req.Type)
	}
}
