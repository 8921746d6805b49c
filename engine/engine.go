// Package engine is the session turn-resolution core: it validates whose
// turn it is, applies a chosen option's effects to the shared nation state,
// decides whether the game has ended, advances to the next player and draws
// their card, all as one transaction against the store.
package engine

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/republica-game/republica/store"
)

const (
	gameCodeChars       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	gameCodeLength      = 6
	gameCodeLongLength  = 8
	gameCodeAttempts    = 5
	creatorStartCapital = 50
	joinerStartCapital  = 10
)

// Opts configures a new Engine. Rand is injectable for deterministic tests;
// when nil a time-seeded source is used.
type Opts struct {
	Store *store.Store
	Rand  *rand.Rand
}

// Engine orchestrates every session operation. It holds no game state of its
// own: the store is the single source of truth, and concurrent requests
// against the same session serialise on the store's write lock.
type Engine struct {
	store *store.Store

	// rand.Rand is not safe for concurrent use, and the engine is shared
	// across requests.
	mu   sync.Mutex
	rand *rand.Rand
}

// New constructs an Engine.
func New(opts Opts) (*Engine, error) {
	if opts.Store == nil {
		return nil, errors.New("engine requires a store")
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{store: opts.Store, rand: rng}, nil
}

func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rand.Intn(n)
}

func (e *Engine) roll() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rand.Float64()
}

func (e *Engine) newGameCode(length int) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	code := make([]byte, length)
	for i := range code {
		code[i] = gameCodeChars[e.rand.Intn(len(gameCodeChars))]
	}
	return string(code)
}
