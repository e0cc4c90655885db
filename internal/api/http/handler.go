package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parques/internal/config"
	"parques/internal/game"
	"parques/internal/room"
)

// statusFor maps engine rejection kinds onto HTTP statuses.
func statusFor(kind game.RejectKind) int {
	switch kind {
	case game.KindValidation:
		return http.StatusUnprocessableEntity
	case game.KindNotFound:
		return http.StatusNotFound
	case game.KindAuthorization:
		return http.StatusForbidden
	case game.KindRuleViolation:
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}

// fail writes the structured rejection the engine produced.
func fail(c *gin.Context, err error) {
	var r *game.Rejection
	if errors.As(err, &r) {
		c.JSON(statusFor(r.Kind), r)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func callerID(c *gin.Context) string {
	return c.GetHeader("X-User-ID")
}

// @Summary Create a new game
// @Description Create a game with the creator seated; state starts at waiting_players
// @Tags Game
// @Accept json
// @Produce json
// @Param request body http.CreateGameRequest true "Creator info"
// @Success 201 {object} game.Summary
// @Router /games [post]
func CreateGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGameRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		summary, err := rm.Create(req.CreatorUserID, req.CreatorColor, req.MaxPlayers)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, summary)
	}
}

// @Summary Join an existing game
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Game ID"
// @Param request body http.JoinGameRequest true "Player info"
// @Success 200 {object} game.Summary
// @Router /games/{id}/join [post]
func JoinGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinGameRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		summary, err := rm.Join(c.Param("id"), req.UserID, req.Color)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// @Summary Start a game
// @Description Only the creator may start; requires at least 2 players
// @Tags Game
// @Produce json
// @Param id path string true "Game ID"
// @Param X-User-ID header string true "Caller identity"
// @Success 200 {object} game.Snapshot
// @Router /games/{id}/start [post]
func StartGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := rm.StartGame(c.Param("id"), callerID(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// @Summary Roll the dice
// @Description Returns the dice, the pair classification and the legal-move mapping
// @Tags Turn
// @Produce json
// @Param id path string true "Game ID"
// @Param X-User-ID header string true "Caller identity"
// @Success 200 {object} game.RollReport
// @Router /games/{id}/roll [post]
func RollDiceHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := rm.Roll(c.Param("id"), callerID(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// @Summary Move a piece
// @Tags Turn
// @Accept json
// @Produce json
// @Param id path string true "Game ID"
// @Param X-User-ID header string true "Caller identity"
// @Param request body http.MovePieceRequest true "Chosen move"
// @Success 200 {object} game.Snapshot
// @Router /games/{id}/move [post]
func MovePieceHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MovePieceRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		snap, err := rm.Move(c.Param("id"), callerID(c), req.PieceID, req.TargetSquare, req.StepsUsed)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// @Summary Burn a piece after three consecutive pairs
// @Tags Turn
// @Accept json
// @Produce json
// @Param id path string true "Game ID"
// @Param X-User-ID header string true "Caller identity"
// @Param request body http.BurnPieceRequest false "Piece to burn (optional)"
// @Success 200 {object} game.Snapshot
// @Router /games/{id}/burn [post]
func BurnPieceHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BurnPieceRequest
		if c.Request.ContentLength > 0 {
			if err := c.BindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
				return
			}
		}
		snap, err := rm.Burn(c.Param("id"), callerID(c), req.PieceID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// @Summary Pass the turn
// @Description Legal only when the roll produced no moves
// @Tags Turn
// @Produce json
// @Param id path string true "Game ID"
// @Param X-User-ID header string true "Caller identity"
// @Success 200 {object} game.Snapshot
// @Router /games/{id}/pass [post]
func PassTurnHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := rm.Pass(c.Param("id"), callerID(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// @Summary Get the full game state
// @Tags Game
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} game.Snapshot
// @Router /games/{id} [get]
func GameStateHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := rm.State(c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// @Summary Get the rule variant flags
// @Tags Config
// @Produce json
// @Success 200 {object} http.RulesResponse
// @Router /config/rules [get]
func RulesConfigHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, RulesResponse{
			ExitRollValue:       cfg.ExitRollValue,
			WallBlocks:          cfg.WallBlocks,
			ExtraTurnOnJailExit: cfg.ExtraTurnOnJailExit,
			ExtraTurnOnCapture:  cfg.ExtraTurnOnCapture,
		})
	}
}
