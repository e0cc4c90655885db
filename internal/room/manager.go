package room

import (
	"github.com/google/uuid"

	"parques/internal/config"
	"parques/internal/game"
)

// Store is the registry the manager resolves games from.
type Store interface {
	Get(id string) (*game.Game, bool)
	Save(g *game.Game)
}

// Manager is the service layer between the transports and the rules engine.
// It resolves games, runs one engine operation at a time per game (the
// aggregate serializes itself) and pushes the committed snapshot to the
// game's room after every successful mutation.
type Manager struct {
	store   Store
	cfg     config.Config
	hub     Broadcaster
	newDice func() *game.Dice
}

func NewManager(s Store, cfg config.Config, hub Broadcaster) *Manager {
	if hub == nil {
		hub = NopBroadcaster{}
	}
	return &Manager{
		store:   s,
		cfg:     cfg,
		hub:     hub,
		newDice: func() *game.Dice { return game.NewDice(nil) },
	}
}

func (m *Manager) lookup(gameID string) (*game.Game, error) {
	g, ok := m.store.Get(gameID)
	if !ok {
		return nil, &game.Rejection{Kind: game.KindNotFound, Detail: "game " + gameID + " not found"}
	}
	return g, nil
}

// Create builds a new game with the configured rule variant and the creator
// already seated.
func (m *Manager) Create(creatorID string, creatorColor game.Color, maxPlayers int) (game.Summary, error) {
	g, err := game.New(uuid.NewString(), maxPlayers, creatorID, creatorColor, m.cfg.Rules(), m.newDice())
	if err != nil {
		return game.Summary{}, err
	}
	m.store.Save(g)
	return g.Summary(), nil
}

func (m *Manager) Join(gameID, userID string, color game.Color) (game.Summary, error) {
	g, err := m.lookup(gameID)
	if err != nil {
		return game.Summary{}, err
	}
	if err := g.Join(userID, color); err != nil {
		return game.Summary{}, err
	}
	summary := g.Summary()
	m.hub.Broadcast(gameID, "player_joined", summary)
	return summary, nil
}

func (m *Manager) StartGame(gameID, userID string) (game.Snapshot, error) {
	g, err := m.lookup(gameID)
	if err != nil {
		return game.Snapshot{}, err
	}
	if err := g.Start(userID); err != nil {
		return game.Snapshot{}, err
	}
	snap := g.Snapshot()
	m.hub.Broadcast(gameID, "game_started", snap)
	return snap, nil
}

// Roll returns the roll report to the caller and broadcasts the resulting
// state to the room.
func (m *Manager) Roll(gameID, userID string) (game.RollReport, error) {
	g, err := m.lookup(gameID)
	if err != nil {
		return game.RollReport{}, err
	}
	report, err := g.Roll(userID)
	if err != nil {
		return game.RollReport{}, err
	}
	m.hub.Broadcast(gameID, "dice_rolled", map[string]any{
		"user_id": userID,
		"dice":    []int{report.Dice1, report.Dice2},
		"result":  report.Result,
	})
	return report, nil
}

func (m *Manager) Move(gameID, userID, pieceID string, target game.SquareID, steps int) (game.Snapshot, error) {
	g, err := m.lookup(gameID)
	if err != nil {
		return game.Snapshot{}, err
	}
	kind, err := g.Move(userID, pieceID, target, steps)
	if err != nil {
		return game.Snapshot{}, err
	}
	snap := g.Snapshot()
	m.hub.Broadcast(gameID, "piece_moved", map[string]any{
		"user_id":  userID,
		"piece_id": pieceID,
		"outcome":  kind,
		"state":    snap,
	})
	return snap, nil
}

func (m *Manager) Burn(gameID, userID, pieceID string) (game.Snapshot, error) {
	g, err := m.lookup(gameID)
	if err != nil {
		return game.Snapshot{}, err
	}
	if err := g.Burn(userID, pieceID); err != nil {
		return game.Snapshot{}, err
	}
	snap := g.Snapshot()
	m.hub.Broadcast(gameID, "piece_burned", snap)
	return snap, nil
}

func (m *Manager) Pass(gameID, userID string) (game.Snapshot, error) {
	g, err := m.lookup(gameID)
	if err != nil {
		return game.Snapshot{}, err
	}
	if err := g.Pass(userID); err != nil {
		return game.Snapshot{}, err
	}
	snap := g.Snapshot()
	m.hub.Broadcast(gameID, "turn_passed", snap)
	return snap, nil
}

// State is the read path: a consistent full snapshot, no mutation.
func (m *Manager) State(gameID string) (game.Snapshot, error) {
	g, err := m.lookup(gameID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return g.Snapshot(), nil
}
