// Command mdaview renders a SoftICE MDA full-screen dump from a named pipe
// to the terminal. Frames arrive as CP866 text with the character column of
// memory-dump lines degraded to periods; mdaview decodes each frame and
// rebuilds those tails from the hex columns so extended characters show up.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/retroview/mdaview/internal/codepage"
	"github.com/retroview/mdaview/internal/logging"
	"github.com/retroview/mdaview/internal/viewer"
)

func main() {
	os.Exit(run())
}

func run() int {
	pipeFlag := flag.String("pipe", "", "path to the SoftICE MDA named pipe (overrides MDA_PIPE)")
	waitFlag := flag.Bool("wait", false, "wait for the named pipe to appear instead of failing")
	debugFlag := flag.Bool("debug", false, "enable debug logging on stderr")
	flag.Parse()

	logging.DebugEnabled = *debugFlag || os.Getenv("DEBUG") == "1"

	pipePath := *pipeFlag
	if pipePath == "" {
		pipePath = os.Getenv("MDA_PIPE")
	}
	if pipePath == "" {
		fmt.Println("Environment variable MDA_PIPE must contain path to named pipe. Aborting.")
		return 1
	}

	table, err := codepage.NewTable()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *waitFlag {
		if err := viewer.WaitForPipe(ctx, pipePath); err != nil {
			if ctx.Err() != nil {
				return 0
			}
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	v := viewer.New(table, os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
	if err := v.Run(ctx, pipePath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
