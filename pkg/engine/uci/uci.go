// Package uci contains a driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
// See: https://en.wikipedia.org/wiki/Universal_Chess_Interface
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julupanter/panterfish/pkg/board"
	"github.com/julupanter/panterfish/pkg/board/fen"
	"github.com/julupanter/panterfish/pkg/engine"
	"github.com/julupanter/panterfish/pkg/search"
	"github.com/julupanter/panterfish/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

const ProtocolName = "uci"

// Driver implements a UCI driver for an engine. It is activated if sent "uci".
type Driver struct {
	e *engine.Engine

	out chan<- string

	active       atomic.Bool    // user is waiting for engine to move
	ponder       chan search.PV // chan for intermediate search information
	lastPosition string         // last position line (empty if no last position)

	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	// * uci
	//
	//	tell engine to use the uci (universal chess interface), this will be sent
	//	once as the first command after program boot. The engine must identify
	//	itself with "id" and then send "uciok" to acknowledge uci mode.

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())

	// * option name Hash type spin default 0
	//
	//	the transposition table's soft entry-count cap; 0 means unbounded.

	d.out <- "option name Hash type spin default 0 min 0 max 1000000"
	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "isready":
				// Must always be answered with "readyok", even mid-search.

				d.out <- "readyok"

			case "debug":
				// Ignored: no extra debug traffic is emitted.

			case "setoption":
				// * setoption name <id> [value <x>]

				var name, value string
				if len(args) > 1 {
					name = args[1]
				}
				if len(args) > 3 {
					value = args[3]
				}

				switch name {
				case "Hash":
					if n, err := strconv.Atoi(value); err == nil {
						d.e.SetHash(uint(n))
					}
				}

			case "register":
				// No registration required.

			case "ucinewgame":
				d.ensureInactive(ctx)
				d.lastPosition = ""

			case "position":
				// * position [fen <fenstring> | startpos ] moves <move1> .... <movei>

				d.ensureInactive(ctx)

				if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
					// Continuation of game.

					moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
					for _, arg := range strings.Fields(moves) {
						if arg == "moves" {
							continue
						}
						if err := d.e.Move(ctx, arg); err != nil {
							logw.Errorf(ctx, "Invalid position move %q: %v: %v", arg, line, err)
							return
						}
					}

					d.lastPosition = line
					break
				}

				// New position.

				position := fen.Initial
				if len(args) >= 7 && args[0] == "fen" {
					position = strings.Join(args[1:7], " ")
				}

				if err := d.e.Reset(ctx, position); err != nil {
					logw.Errorf(ctx, "Invalid position: %v", line)
					return
				}

				move := false
				for _, arg := range args {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}
					if err := d.e.Move(ctx, arg); err != nil {
						logw.Errorf(ctx, "Invalid position move %q: %v: %v", arg, line, err)
						return
					}
				}
				d.lastPosition = line

			case "go":
				// * go [wtime <x>] [btime <x>] [winc <x>] [binc <x>] [movestogo <x>]
				//      [depth <x>] [movetime <x>] [infinite]

				d.ensureInactive(ctx)

				var opt searchctl.Options
				var tc searchctl.TimeControl
				haveTC := false
				infinite := false
				movetime := time.Duration(0)

				for i := 0; i < len(args); i++ {
					cmd := args[i]
					switch cmd {
					case "wtime", "btime", "winc", "binc", "movestogo", "depth", "movetime":
						i++
						if i == len(args) {
							logw.Errorf(ctx, "No argument for %v: %v", cmd, line)
							return
						}
						n, err := strconv.Atoi(args[i])
						if err != nil {
							logw.Errorf(ctx, "Invalid argument for %v: %v", line, err)
							return
						}

						switch cmd {
						case "depth":
							opt.DepthLimit = lang.Some(uint(n))
						case "wtime":
							tc.White, haveTC = time.Millisecond*time.Duration(n), true
						case "btime":
							tc.Black, haveTC = time.Millisecond*time.Duration(n), true
						case "winc":
							tc.WhiteInc, haveTC = time.Millisecond*time.Duration(n), true
						case "binc":
							tc.BlackInc, haveTC = time.Millisecond*time.Duration(n), true
						case "movestogo":
							tc.Moves = n
						case "movetime":
							movetime = time.Millisecond * time.Duration(n)
						}

					case "infinite":
						infinite = true

					default:
						// searchmoves, ponder, nodes, mate: silently ignored.
					}
				}
				if _, hasDepth := opt.DepthLimit.V(); haveTC && !hasDepth {
					opt.TimeControl = lang.Some(tc)
				}

				out, err := d.e.Analyze(ctx, opt)
				if err != nil {
					logw.Errorf(ctx, "Analyze failed: %v", err)
					return
				}
				d.active.Store(true)

				// Forward ponder info. Complete search if it ends, unless infinite.

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.ponder <- pv
					}
					if !infinite {
						d.searchCompleted(ctx, last)
					}
				}()

				if movetime > 0 {
					time.AfterFunc(movetime, func() {
						_, _ = d.e.Halt(ctx)
					})
				}

			case "stop":
				// Stop calculating as soon as possible; a "bestmove" always follows.

				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "ponderhit":
				// Pondering is not offered (no "ponder" token in "go"), so this never arrives.

			case "quit":
				return

			default:
				logw.Warningf(ctx, "Unknown command %q: %v", cmd, args)
			}

		case pv := <-d.ponder:
			// * info depth <n> score cp <n> time <n> nodes <n> nps <n> pv <moves>

			if d.active.Load() {
				d.out <- d.printPV(pv)
			}

		case <-d.quit:
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CAS(true, false) {
		// * bestmove <move1>
		//
		//	must always be sent when the engine stops searching, for every "go".

		if len(pv.Moves) > 0 {
			d.out <- d.printPV(pv)
			abs := engine.AbsoluteMoves(d.e.Active(), pv.Moves)
			d.out <- fmt.Sprintf("bestmove %v", abs[0])
		} else {
			d.out <- "bestmove 0000"
		}
	} // else: stale or duplicate result
}

func (d *Driver) printPV(pv search.PV) string {
	parts := []string{"info"}
	parts = append(parts, fmt.Sprintf("depth %v", pv.Depth))

	if pv.Score > search.MateLower {
		mate := (search.MateUpper - pv.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %v", mate))
	} else if pv.Score < -search.MateLower {
		mate := (-search.MateUpper - pv.Score) / 2
		parts = append(parts, fmt.Sprintf("score mate %v", mate))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", pv.Score))
	}

	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
	}
	if pv.Nodes > 0 && pv.Time > 0 {
		nps := int64(time.Second) * pv.Nodes / int64(pv.Time)
		parts = append(parts, fmt.Sprintf("nps %v", nps))
	}
	if len(pv.Moves) > 0 {
		abs := engine.AbsoluteMoves(d.e.Active(), pv.Moves)
		parts = append(parts, "pv", formatMoves(abs))
	}

	return strings.Join(parts, " ")
}

func formatMoves(moves []board.Move) string {
	var sb strings.Builder
	for i, m := range moves {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}
