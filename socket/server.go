// Package socket is the realtime gateway: one Socket.IO connection per
// signed-in client. Pointer events drive a per-connection gesture recognizer,
// and the client's session pushes deck, gate, notification, and match events
// back down the same connection.
package socket

import (
	"context"
	"log"
	"sync"

	socketio "github.com/googollee/go-socket.io"

	"meetx_server/gesture"
	"meetx_server/middleware"
	"meetx_server/models"
	"meetx_server/session"
	"meetx_server/store"
)

// Gateway owns the Socket.IO server and the per-connection live state.
type Gateway struct {
	Server *socketio.Server

	st     store.Store
	secret string
	cfg    session.Config

	mu      sync.Mutex
	clients map[string]*client // connection id → client
}

type client struct {
	sess *session.Session
	rec  *gesture.Recognizer
}

type authPayload struct {
	Token string `json:"token"`
}

type pointerPayload struct {
	gesture.Sample
	CardWidth  float64 `json:"cardWidth,omitempty"`
	CardHeight float64 `json:"cardHeight,omitempty"`
}

// NewGateway initializes the Socket.IO server and its event handlers
func NewGateway(st store.Store, secret string, cfg session.Config) *Gateway {
	g := &Gateway{
		Server:  socketio.NewServer(nil),
		st:      st,
		secret:  secret,
		cfg:     cfg,
		clients: make(map[string]*client),
	}

	g.Server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	g.Server.OnEvent("/", "auth", g.onAuth)
	g.Server.OnEvent("/", "pointer.begin", g.onPointerBegin)
	g.Server.OnEvent("/", "pointer.move", g.onPointerMove)
	g.Server.OnEvent("/", "pointer.end", g.onPointerEnd)
	g.Server.OnEvent("/", "pointer.cancel", g.onPointerCancel)

	g.Server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("❌ Socket error:", err)
	})

	g.Server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
		g.dropClient(c.ID())
	})

	return g
}

// onAuth binds an identity to the connection and starts its session. An
// existing session for the connection is torn down first, so a stale
// subscription can never outlive a re-auth.
func (g *Gateway) onAuth(c socketio.Conn, payload authPayload) {
	userID, err := middleware.ParseToken(g.secret, payload.Token)
	if err != nil {
		c.Emit("auth.error", map[string]string{"error": "not signed in"})
		return
	}

	g.dropClient(c.ID())

	sess := session.New(userID, g.st, g.cfg, session.Handlers{
		OnDeckUpdated: func(top []models.Profile) {
			c.Emit("deck.updated", top)
		},
		OnGateChanged: func(state session.GateState) {
			c.Emit("gate.changed", map[string]string{"state": string(state)})
		},
		OnNotification: func(n models.Notification) {
			c.Emit("like.received", n)
		},
		OnMatch: func(m models.Match) {
			c.Emit("match.created", m)
		},
	})
	if err := sess.Start(); err != nil {
		c.Emit("auth.error", map[string]string{"error": err.Error()})
		return
	}

	g.mu.Lock()
	g.clients[c.ID()] = &client{sess: sess}
	g.mu.Unlock()

	c.Join("user:" + userID)
	c.Emit("auth.ok", map[string]string{"userId": userID})
	log.Printf("👤 Session started for %s on socket %s", userID, c.ID())
}

func (g *Gateway) onPointerBegin(c socketio.Conn, p pointerPayload) {
	cl := g.client(c.ID())
	if cl == nil {
		return
	}
	g.mu.Lock()
	cl.rec = gesture.NewRecognizer(gesture.Config{
		CardWidth:  p.CardWidth,
		CardHeight: p.CardHeight,
	})
	g.mu.Unlock()
	cl.rec.Begin(p.Sample)
}

func (g *Gateway) onPointerMove(c socketio.Conn, p pointerPayload) {
	cl := g.client(c.ID())
	if cl == nil || cl.rec == nil {
		return
	}
	c.Emit("gesture.frame", cl.rec.Move(p.Sample))
}

// onPointerEnd resolves the gesture and, for a decided release, records the
// swipe. A failed ledger write is surfaced as a non-fatal event and the deck
// stays where it was.
func (g *Gateway) onPointerEnd(c socketio.Conn, p pointerPayload) {
	cl := g.client(c.ID())
	if cl == nil || cl.rec == nil {
		return
	}
	decision, transform := cl.rec.End(p.Sample)
	c.Emit("gesture.decision", map[string]interface{}{
		"decision":  decision,
		"transform": transform,
	})
	if decision == gesture.DecisionNone {
		return
	}

	result, err := cl.sess.Swipe(context.Background(), decision)
	if err != nil {
		log.Printf("⚠️ Swipe failed for %s: %v", cl.sess.UserID(), err)
		c.Emit("swipe.error", map[string]string{"error": "swipe not saved, try again"})
		return
	}
	if result != nil && result.Matched {
		// The partner may be online on another connection; let their room know.
		other := result.Match.Other(cl.sess.UserID())
		g.Server.BroadcastToRoom("/", "user:"+other, "match.created", result.Match)
	}
}

func (g *Gateway) onPointerCancel(c socketio.Conn, _ pointerPayload) {
	cl := g.client(c.ID())
	if cl == nil || cl.rec == nil {
		return
	}
	c.Emit("gesture.frame", cl.rec.Cancel())
}

func (g *Gateway) client(connID string) *client {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clients[connID]
}

func (g *Gateway) dropClient(connID string) {
	g.mu.Lock()
	cl := g.clients[connID]
	delete(g.clients, connID)
	g.mu.Unlock()
	if cl != nil {
		cl.sess.Close()
	}
}
