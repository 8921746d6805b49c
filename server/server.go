// Package server exposes the game engine over HTTP. Clients poll
// GET /game/{code} for state and POST decisions against it.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"

	"github.com/republica-game/republica/engine"
	"github.com/republica-game/republica/game"
)

type CreateGameReq struct {
	UserUID    string `json:"user_uid"`
	PlayerName string `json:"player_name"`
	Difficulty string `json:"difficulty"`
	Observer   bool   `json:"observer"`
}

type JoinGameReq struct {
	GameCode   string `json:"game_code"`
	UserUID    string `json:"user_uid"`
	PlayerName string `json:"player_name"`
	Observer   bool   `json:"observer"`
}

type StartGameReq struct {
	GameCode string `json:"game_code"`
}

type DecisionReq struct {
	GameCode string `json:"game_code"`
	UserUID  string `json:"user_uid"`
	Option   *int   `json:"option"`
}

type RestartGameReq struct {
	GameCode string `json:"game_code"`
	UserUID  string `json:"user_uid"`
}

type AckRes struct {
	GameCode string `json:"game_code"`
}

type ErrorRes struct {
	Error string `json:"error"`
}

// GameServer is the HTTP front of a game engine.
type GameServer struct {
	engine *engine.Engine
	http.Server
}

// NewServer wires the routes for a game engine.
func NewServer(eng *engine.Engine) *GameServer {
	s := &GameServer{engine: eng}

	router := http.NewServeMux()
	router.Handle("POST /game/create", http.HandlerFunc(s.HandleCreateGame))
	router.Handle("POST /game/join", http.HandlerFunc(s.HandleJoinGame))
	router.Handle("POST /game/start", http.HandlerFunc(s.HandleStartGame))
	router.Handle("POST /game/decision", http.HandlerFunc(s.HandleDecision))
	router.Handle("POST /game/restart", http.HandlerFunc(s.HandleRestartGame))
	router.Handle("GET /game/{code}", http.HandlerFunc(s.HandleGetGame))

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
	)
	s.Handler = cors(router)

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// HandleCreateGame handles a request to open a new game room
func (g *GameServer) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	var data CreateGameReq
	if !decodeBody(w, r, &data) {
		return
	}

	difficulty, err := game.ParseDifficulty(data.Difficulty)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %s", engine.ErrInvalidInput, err))
		return
	}

	created, err := g.engine.CreateSession(r.Context(), data.UserUID, data.PlayerName, difficulty, data.Observer)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleJoinGame handles a request to join an existing game room
func (g *GameServer) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	var data JoinGameReq
	if !decodeBody(w, r, &data) {
		return
	}

	code := upcase(data.GameCode)
	if err := g.engine.JoinSession(r.Context(), code, data.UserUID, data.PlayerName, data.Observer); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AckRes{GameCode: code})
}

// HandleStartGame handles a request to start play
func (g *GameServer) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	var data StartGameReq
	if !decodeBody(w, r, &data) {
		return
	}

	code := upcase(data.GameCode)
	if err := g.engine.StartSession(r.Context(), code); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AckRes{GameCode: code})
}

// HandleDecision handles the acting player's choice on the current card
func (g *GameServer) HandleDecision(w http.ResponseWriter, r *http.Request) {
	var data DecisionReq
	if !decodeBody(w, r, &data) {
		return
	}
	if data.Option == nil {
		writeError(w, fmt.Errorf("%w: option is required", engine.ErrInvalidInput))
		return
	}

	decision, err := g.engine.ResolveDecision(r.Context(), upcase(data.GameCode), data.UserUID, *data.Option)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, decision)
}

// HandleRestartGame handles a creator's request to reset a room
func (g *GameServer) HandleRestartGame(w http.ResponseWriter, r *http.Request) {
	var data RestartGameReq
	if !decodeBody(w, r, &data) {
		return
	}

	code := upcase(data.GameCode)
	if err := g.engine.RestartSession(r.Context(), code, data.UserUID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AckRes{GameCode: code})
}

// HandleGetGame returns the full visible state of a game room
func (g *GameServer) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	code := upcase(r.PathValue("code"))
	if code == "" {
		writeError(w, fmt.Errorf("%w: missing game code", engine.ErrInvalidInput))
		return
	}

	snap, err := g.engine.FullState(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

func upcase(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func decodeBody(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(data); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorRes{Error: "could not parse request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println(err.Error())
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, engine.ErrIllegalState):
		status = http.StatusConflict
	default:
		// deck exhaustion and unexpected store failures are the only
		// errors worth an operator's attention
		log.Println(err.Error())
	}

	writeJSON(w, status, ErrorRes{Error: err.Error()})
}
