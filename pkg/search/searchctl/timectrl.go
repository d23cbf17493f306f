package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// TimeControl represents UCI "go wtime/btime/winc/binc" time-control
// parameters for the move about to be searched.
type TimeControl struct {
	White, Black       time.Duration
	WhiteInc, BlackInc time.Duration
	Moves              int // 0 == rest of game, unused beyond documentation
}

// Limits returns the soft and hard time limits for the side identified
// by active ('w' or 'b'). After the soft limit, no new iterative-
// deepening depth should be started; the hard limit aborts whatever
// depth is in progress. Per §5: "budget = max(min_think,
// (remaining_time / divisor) + increment) with divisor ~= 40 ... and a
// small safety floor."
func (t TimeControl) Limits(active byte) (soft, hard time.Duration) {
	remaining, inc := t.White, t.WhiteInc
	if active == 'b' {
		remaining, inc = t.Black, t.BlackInc
	}

	const divisor = 40
	const minThink = 50 * time.Millisecond

	soft = remaining/divisor + inc
	if soft < minThink {
		soft = minThink
	}
	hard = 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
}

// EnforceTimeControl schedules h.Halt to fire at the hard limit, if a
// TimeControl was given. Returns the soft limit and whether one applies.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], active byte) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(active)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}
