package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/julupanter/panterfish/pkg/board"
	"github.com/julupanter/panterfish/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Iterative is the standard iterative-deepening Launcher: it calls
// Searcher.SearchDepth for depth = 1, 2, 3, ... until the depth limit,
// time budget, or a forced mate is reached (§4.3's "_search" driver).
type Iterative struct{}

func (Iterative) Launch(ctx context.Context, s *search.Searcher, root board.Position, history []board.Position, active byte, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, s, root, history, active, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, s *search.Searcher, root board.Position, history []board.Position, active byte, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, active)

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	start := time.Now()
	depth := 1
	for !h.quit.IsClosed() {
		pv, err := s.SearchDepth(wctx, root, history, depth)
		if err != nil {
			if err == search.ErrHalted {
				return // Halt was called.
			}
			logw.Errorf(ctx, "Search failed at depth=%v: %v", depth, err)
			return
		}

		logw.Debugf(ctx, "Searched depth=%v: %v", depth, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()
		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			return // halt: reached max depth
		}
		if pv.Score > search.MateLower || pv.Score < -search.MateLower {
			return // halt: forced mate found. Exact result.
		}
		if useSoft && soft < time.Since(start) {
			return // halt: exceeded soft time limit. Do not start new search.
		}
		depth++
	}
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
