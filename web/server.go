// Package web streams spiral frames to browsers over a websocket and serves
// a small canvas page that draws them.
package web

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sgentle/flourish/spiral"
)

// LogicalRadius is the display radius frames are scaled against. The
// browser rescales to its own canvas, so the value only fixes precision.
const LogicalRadius = 400

// minSendInterval caps the broadcast rate so slow clients are not flooded.
const minSendInterval = time.Second / 60

// frame is the wire format for one drawn frame. A frame with no points
// tells the client to clear its canvas.
type frame struct {
	Radius float64      `json:"radius"`
	Points [][2]float64 `json:"points,omitempty"`
}

// Server broadcasts frames to every connected websocket client.
type Server struct {
	server *http.Server

	upgrader websocket.Upgrader

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool

	lastSend time.Time

	scratch frame
}

// NewServer creates a server and starts listening on addr.
func NewServer(addr string) *Server {
	s := &Server{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The page and the socket are both served from here.
				return true
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleSocket)

	s.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		log.Printf("web output listening on %s", addr)
		if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("web output server error: %v", err)
		}
	}()

	return s
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexPage))
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	// Drain reads so pings and closes are processed, and drop the client
	// when the connection dies.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.clientsMu.Lock()
				delete(s.clients, conn)
				s.clientsMu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

// Radius implements the processor output contract.
func (s *Server) Radius() float64 {
	return LogicalRadius
}

// Write broadcasts one frame to every client, rate limited. Frames with no
// points clear the remote canvases.
func (s *Server) Write(points []spiral.Point) error {
	now := time.Now()
	if now.Sub(s.lastSend) < minSendInterval {
		return nil
	}
	s.lastSend = now

	s.scratch.Radius = LogicalRadius
	s.scratch.Points = s.scratch.Points[:0]

	for _, p := range points {
		s.scratch.Points = append(s.scratch.Points, [2]float64{p.X, p.Y})
	}

	data, err := json.Marshal(&s.scratch)
	if err != nil {
		return err
	}

	s.clientsMu.Lock()
	for client := range s.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(s.clients, client)
		}
	}
	s.clientsMu.Unlock()

	return nil
}

// Close drops every client and shuts the server down.
func (s *Server) Close() error {
	s.clientsMu.Lock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
	s.clientsMu.Unlock()

	return s.server.Close()
}
