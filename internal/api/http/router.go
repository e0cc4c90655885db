package http

import (
	"github.com/gin-gonic/gin"

	"parques/internal/api/ws"
	"parques/internal/config"
	"parques/internal/room"
)

func SetupRouter(rm *room.Manager, cfg config.Config, hub *ws.Hub) *gin.Engine {
	r := gin.Default()

	// WebSocket for live room updates
	r.GET("/ws", hub.HandleWS)

	// --- GAME LIFECYCLE ---
	r.POST("/games", CreateGameHandler(rm))
	r.POST("/games/:id/join", JoinGameHandler(rm))
	r.POST("/games/:id/start", StartGameHandler(rm))
	r.GET("/games/:id", GameStateHandler(rm))

	// --- TURN ACTIONS ---
	r.POST("/games/:id/roll", RollDiceHandler(rm))
	r.POST("/games/:id/move", MovePieceHandler(rm))
	r.POST("/games/:id/burn", BurnPieceHandler(rm))
	r.POST("/games/:id/pass", PassTurnHandler(rm))

	// --- CONFIG ---
	r.GET("/config/rules", RulesConfigHandler(cfg))

	return r
}
