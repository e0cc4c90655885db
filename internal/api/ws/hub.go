package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"parques/internal/game"
)

// GameService is the slice of the room manager the hub drives. Defined here
// so the hub and the manager can be wired in either order.
type GameService interface {
	Roll(gameID, userID string) (game.RollReport, error)
	Move(gameID, userID, pieceID string, target game.SquareID, steps int) (game.Snapshot, error)
	Burn(gameID, userID, pieceID string) (game.Snapshot, error)
	Pass(gameID, userID string) (game.Snapshot, error)
	State(gameID string) (game.Snapshot, error)
}

// Hub tracks the websocket connections observing each game's room and fans
// committed snapshots out to them. Delivery is best effort: a failed write
// drops the connection.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]string // conn -> user id
	svc   GameService
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*websocket.Conn]string)}
}

// SetService attaches the game service after construction; the manager needs
// the hub as its broadcaster, so one of the two is wired late.
func (h *Hub) SetService(svc GameService) { h.svc = svc }

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // allow all origins
	},
}

type envelope struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

func event(name string, data any) map[string]any {
	return map[string]any{"event": name, "data": data}
}

func (h *Hub) HandleWS(c *gin.Context) {
	gameID := c.Query("game_id")
	userID := c.Query("user_id")
	if gameID == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id and user_id are required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	if _, ok := h.rooms[gameID]; !ok {
		h.rooms[gameID] = make(map[*websocket.Conn]string)
	}
	h.rooms[gameID][conn] = userID
	h.mu.Unlock()

	h.sendPersonal(conn, event("connected", gin.H{"game_id": gameID, "user_id": userID}))
	h.Broadcast(gameID, "player_connected", gin.H{"user_id": userID})

	defer func() {
		h.mu.Lock()
		delete(h.rooms[gameID], conn)
		h.mu.Unlock()
		_ = conn.Close()
		h.Broadcast(gameID, "player_disconnected", gin.H{"user_id": userID})
	}()

	for {
		var msg envelope
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		h.dispatch(conn, gameID, userID, msg)
	}
}

func (h *Hub) dispatch(conn *websocket.Conn, gameID, userID string, msg envelope) {
	switch msg.Action {
	case "roll_dice":
		report, err := h.svc.Roll(gameID, userID)
		if err != nil {
			h.sendError(conn, err)
			return
		}
		h.sendPersonal(conn, event("dice_roll_result", report))

	case "move_piece":
		var req struct {
			PieceID      string        `json:"piece_id"`
			TargetSquare game.SquareID `json:"target_square"`
			StepsUsed    int           `json:"steps_used"`
		}
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			h.sendPersonal(conn, event("error", gin.H{"detail": "invalid move payload"}))
			return
		}
		snap, err := h.svc.Move(gameID, userID, req.PieceID, req.TargetSquare, req.StepsUsed)
		if err != nil {
			h.sendError(conn, err)
			return
		}
		h.sendPersonal(conn, event("piece_move_result", snap))

	case "burn_piece":
		var req struct {
			PieceID string `json:"piece_id"`
		}
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				h.sendPersonal(conn, event("error", gin.H{"detail": "invalid burn payload"}))
				return
			}
		}
		snap, err := h.svc.Burn(gameID, userID, req.PieceID)
		if err != nil {
			h.sendError(conn, err)
			return
		}
		h.sendPersonal(conn, event("piece_burn_result", snap))

	case "pass_turn":
		snap, err := h.svc.Pass(gameID, userID)
		if err != nil {
			h.sendError(conn, err)
			return
		}
		h.sendPersonal(conn, event("pass_turn_result", snap))

	case "get_state":
		snap, err := h.svc.State(gameID)
		if err != nil {
			h.sendError(conn, err)
			return
		}
		h.sendPersonal(conn, event("game_state", snap))

	case "chat":
		var req struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			h.sendPersonal(conn, event("error", gin.H{"detail": "invalid chat payload"}))
			return
		}
		h.Broadcast(gameID, "chat", gin.H{"user_id": userID, "message": req.Message})

	default:
		h.sendPersonal(conn, event("error", gin.H{"detail": "unknown action " + msg.Action}))
	}
}

func (h *Hub) sendError(conn *websocket.Conn, err error) {
	h.sendPersonal(conn, event("error", gin.H{
		"reason": game.KindOf(err),
		"detail": err.Error(),
	}))
}

func (h *Hub) sendPersonal(conn *websocket.Conn, message any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := conn.WriteJSON(message); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

// Broadcast sends an event envelope to every connection in the game's room.
func (h *Hub) Broadcast(gameID string, name string, data any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[gameID]
	if !ok {
		return
	}
	message := event(name, data)
	for conn := range clients {
		if err := conn.WriteJSON(message); err != nil {
			log.Printf("failed to send message: %v", err)
			conn.Close()
			delete(clients, conn)
		}
	}
}
