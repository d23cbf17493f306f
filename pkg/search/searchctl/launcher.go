// Package searchctl contains the iterative-deepening search harness:
// dynamic per-search Options, the Launcher/Handle contract the engine
// uses to start and stop searches, and time-control budgeting (§5).
package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/julupanter/panterfish/pkg/board"
	"github.com/julupanter/panterfish/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold dynamic search options. The user may change these on a particular search.
type Options struct {
	// DepthLimit, if set, limits the search to the given ply depth. Zero means no limit.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, limits the search to the given time parameters.
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}

	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher manages iterative-deepening searches.
type Launcher interface {
	// Launch a new search from the given root position and game
	// history, for the side identified by active ('w' or 'b'). Returns
	// a Handle to stop the search and a PV channel carrying the result
	// of each completed depth, closed when the search is exhausted. The
	// channel holds one PV: an update the reader has not yet taken is
	// replaced by the next one.
	Launch(ctx context.Context, s *search.Searcher, root board.Position, history []board.Position, active byte, opt Options) (Handle, <-chan search.PV)
}

// Handle is an interface for the engine to manage searches. The engine
// is expected to spin off searches and close/abandon them when no
// longer needed.
type Handle interface {
	// Halt halts the search, if running. Idempotent.
	Halt() search.PV
}
