package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/julupanter/panterfish/pkg/board"
	"github.com/julupanter/panterfish/pkg/board/fen"
	"github.com/julupanter/panterfish/pkg/search"
	"github.com/julupanter/panterfish/pkg/search/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are search creation options.
type Options struct {
	// Depth is the search depth limit. If zero, there is no limit. Overridden by search
	// options if provided.
	Depth uint
	// Hash is the soft cap, in number of entries, on the transposition table. If zero,
	// the table is unbounded.
	Hash uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v}", o.Depth, o.Hash)
}

// Engine encapsulates game-playing logic: the current position, the game
// history it searches against for repetition detection, and the
// transposition-backed Searcher driving the analysis.
type Engine struct {
	name, author string

	launcher searchctl.Launcher
	opts     Options

	active byte // 'w' or 'b': whose move the current position is
	pos    board.Position
	hist   []board.Position
	half   int
	full   int

	s      *search.Searcher
	handle searchctl.Handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// New creates an engine using the given launcher to drive iterative
// deepening searches.
func New(ctx context.Context, name, author string, launcher searchctl.Launcher, opts ...Option) *Engine {
	e := &Engine{
		name:     name,
		author:   author,
		launcher: launcher,
	}
	for _, fn := range opts {
		fn(e)
	}

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(entries uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = entries
}

// Position returns the current position in FEN format.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.pos, e.active, e.half, e.full)
}

// Active returns the side to move, 'w' or 'b'.
func (e *Engine) Active() byte {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.active
}

// Pos returns the current, mover-relative position and its game history,
// for use by callers (such as the console driver) that need direct board
// access.
func (e *Engine) Pos() (board.Position, []board.Position) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos, e.hist
}

// Reset resets the engine to a new starting position in FEN format.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, TT=%v entries", position, e.opts.Depth, e.opts.Hash)

	_, _ = e.haltSearchIfActive(ctx)

	pos, half, full, err := fen.Decode(position)
	if err != nil {
		return err
	}

	active := byte('w')
	if fields := strings.Fields(position); len(fields) > 1 {
		active = fields[1][0]
	}

	e.pos = pos
	e.active = active
	e.hist = []board.Position{pos}
	e.half = half
	e.full = full
	e.s = search.NewSearcher(int(e.opts.Hash))

	logw.Infof(ctx, "New position:\n%v", e.pos)
	return nil
}

// Move applies the given move, in absolute UCI coordinate notation
// (e.g. "e2e4", "e7e5"), usually an opponent move. Squares are mirrored
// into the mover-relative frame internally when Black is to move (§4.4).
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %v", err)
	}
	if e.active == 'b' {
		candidate = candidate.Mirror()
	}

	_, _ = e.haltSearchIfActive(ctx)

	for _, m := range e.pos.GenMoves() {
		if !candidate.Equals(m) {
			continue
		}

		// Candidate is at least pseudo-legal.

		next := e.pos.Move(m)
		if !next.HasOwnKing() {
			return fmt.Errorf("illegal move: %v", m)
		}

		e.applyMove(next)
		logw.Infof(ctx, "Move %v:\n%v", m, e.pos)
		return nil
	}
	return fmt.Errorf("invalid move: %v", move)
}

func (e *Engine) applyMove(next board.Position) {
	e.pos = next
	e.hist = append(e.hist, next)
	if e.active == 'w' {
		e.active = 'b'
	} else {
		e.active = 'w'
		e.full++
	}
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	if len(e.hist) < 2 {
		return fmt.Errorf("no move to take back")
	}

	e.hist = e.hist[:len(e.hist)-1]
	e.pos = e.hist[len(e.hist)-1]
	if e.active == 'w' {
		e.active = 'b'
		e.full--
	} else {
		e.active = 'w'
	}

	logw.Infof(ctx, "Takeback:\n%v", e.pos)
	return nil
}

// Analyze analyzes the current position.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", e.pos, opt)

	if e.handle != nil {
		return nil, fmt.Errorf("search already active")
	}

	// e.hist's last element is always e.pos itself (set in Reset, appended
	// in applyMove); exclude it so the root node isn't checked for
	// repetition against itself (§4.3 step 3 only applies to positions
	// reached earlier in the actual game).
	handle, out := e.launcher.Launch(ctx, e.s, e.pos, e.hist[:len(e.hist)-1], e.active, opt)
	e.handle = handle
	return out, nil
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

// AbsoluteMoves mirrors a principal variation's moves, which alternate
// side to move ply by ply starting from active, into absolute
// (White-oriented) UCI coordinate notation for display (§4.4).
func AbsoluteMoves(active byte, moves []board.Move) []board.Move {
	out := make([]board.Move, len(moves))
	side := active
	for i, m := range moves {
		if side == 'b' {
			m = m.Mirror()
		}
		out[i] = m
		if side == 'w' {
			side = 'b'
		} else {
			side = 'w'
		}
	}
	return out
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.handle != nil {
		pv := e.handle.Halt()
		logw.Infof(ctx, "Search halted: %v", pv)

		e.handle = nil
		return pv, true
	}
	return search.PV{}, false
}
