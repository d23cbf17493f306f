package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/julupanter/panterfish/pkg/engine"
	"github.com/julupanter/panterfish/pkg/engine/console"
	"github.com/julupanter/panterfish/pkg/engine/uci"
	"github.com/julupanter/panterfish/pkg/search/searchctl"
	"github.com/seekerror/logw"
)

var (
	depth = flag.Uint("depth", 0, "Search depth limit, 0 for no limit")
	hash  = flag.Uint("hash", 1<<20, "Transposition table soft entry-count cap, 0 for unbounded")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: panterfish [options]

PANTERFISH is a minimal UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "panterfish", "julupanter", searchctl.Iterative{}, engine.WithOptions(engine.Options{
		Depth: *depth,
		Hash:  *hash,
	}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
