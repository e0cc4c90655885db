package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"parques/internal/api/ws"
	"parques/internal/config"
	"parques/internal/game"
	"parques/internal/room"
	"parques/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{ExitRollValue: 5, WallBlocks: true}
	hub := ws.NewHub()
	rm := room.NewManager(store.NewMemoryStore(), cfg, hub)
	hub.SetService(rm)
	return SetupRouter(rm, cfg, hub)
}

func do(t *testing.T, r *gin.Engine, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGameLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/games", "", CreateGameRequest{
		MaxPlayers:    2,
		CreatorUserID: "u1",
		CreatorColor:  game.ColorRed,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d, body %s", w.Code, w.Body)
	}
	var summary game.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.ID == "" || summary.State != game.StateWaitingPlayers {
		t.Fatalf("unexpected summary %+v", summary)
	}
	base := "/games/" + summary.ID

	w = do(t, r, http.MethodPost, base+"/join", "", JoinGameRequest{UserID: "u2", Color: game.ColorBlue})
	if w.Code != http.StatusOK {
		t.Fatalf("join = %d, body %s", w.Code, w.Body)
	}

	w = do(t, r, http.MethodPost, base+"/start", "u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("start = %d, body %s", w.Code, w.Body)
	}

	w = do(t, r, http.MethodPost, base+"/roll", "u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("roll = %d, body %s", w.Code, w.Body)
	}
	var report game.RollReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Dice1 < 1 || report.Dice1 > 6 || report.Dice2 < 1 || report.Dice2 > 6 {
		t.Fatalf("dice out of range: %+v", report)
	}

	w = do(t, r, http.MethodGet, base, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("state = %d, body %s", w.Code, w.Body)
	}
	var snap game.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.State != game.StateInProgress || len(snap.LastDiceRoll) != 2 {
		t.Fatalf("unexpected snapshot state %s, dice %v", snap.State, snap.LastDiceRoll)
	}
}

func TestRejectionStatusMapping(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/games", "", CreateGameRequest{
		MaxPlayers:    2,
		CreatorUserID: "u1",
		CreatorColor:  game.ColorRed,
	})
	var summary game.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	base := "/games/" + summary.ID

	// unknown game
	w = do(t, r, http.MethodGet, "/games/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown game = %d, want 404", w.Code)
	}
	var rej game.Rejection
	if err := json.Unmarshal(w.Body.Bytes(), &rej); err != nil || rej.Kind != game.KindNotFound {
		t.Fatalf("body %s should carry the not_found reason", w.Body)
	}

	// taken color
	w = do(t, r, http.MethodPost, base+"/join", "", JoinGameRequest{UserID: "u2", Color: game.ColorRed})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("taken color = %d, want 422", w.Code)
	}

	// premature start, one player seated
	w = do(t, r, http.MethodPost, base+"/start", "u1", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("premature start = %d, want 409", w.Code)
	}

	if w = do(t, r, http.MethodPost, base+"/join", "", JoinGameRequest{UserID: "u2", Color: game.ColorBlue}); w.Code != http.StatusOK {
		t.Fatalf("join = %d, body %s", w.Code, w.Body)
	}

	// non-creator start
	w = do(t, r, http.MethodPost, base+"/start", "u2", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-creator start = %d, want 403", w.Code)
	}

	// malformed move payload
	if w = do(t, r, http.MethodPost, base+"/start", "u1", nil); w.Code != http.StatusOK {
		t.Fatalf("start = %d", w.Code)
	}
	req := httptest.NewRequest(http.MethodPost, base+"/move", bytes.NewBufferString("{"))
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed move = %d, want 400", rec.Code)
	}

	// moving before rolling is an illegal state
	w = do(t, r, http.MethodPost, base+"/move", "u1", MovePieceRequest{
		PieceID:      "x",
		TargetSquare: game.TrackSquare(0),
		StepsUsed:    5,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("move before roll = %d, want 409", w.Code)
	}
}

func TestRulesConfigEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/config/rules", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("rules = %d", w.Code)
	}
	var rules RulesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &rules); err != nil {
		t.Fatalf("decode rules: %v", err)
	}
	if rules.ExitRollValue != 5 || !rules.WallBlocks {
		t.Fatalf("unexpected rules %+v", rules)
	}
}
