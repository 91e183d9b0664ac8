package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"callcenter-analysis-be/internal/client"
	"callcenter-analysis-be/internal/protocol"
)

const sessionHelp = `type a message and press enter to send it
  /analyze          request an analysis of the conversation
  /clear            clear the conversation for everyone
  /live on|off      switch live analysis
  /reconnect        open a fresh connection
  /quit             leave`

func newSessionCmd(a *app, roleName, short string) *cobra.Command {
	return &cobra.Command{
		Use:   roleName,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, _ := protocol.ParseRole(roleName)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			console := client.NewConsole(a.server, client.Identity{SessionID: a.sessionID, Role: role}, nil)
			return runSession(ctx, console, a.stdin, a.stdout, a.keepalive)
		},
	}
}

// runSession drives one console from input lines until /quit, EOF or ctx ends.
// Everything touching the console happens on this goroutine.
func runSession(ctx context.Context, console *client.Console, in io.Reader, out io.Writer, keepalive time.Duration) error {
	view := renderer{out: out}
	if err := console.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer console.Disconnect()
	view.system(sessionHelp)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	var ping <-chan time.Time
	if keepalive > 0 {
		ticker := time.NewTicker(keepalive)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-console.Frames():
			if !ok {
				continue
			}
			view.update(console.Apply(frame), console.Turns())
		case <-ping:
			_ = console.Ping()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := dispatch(ctx, console, line)
			if err != nil {
				view.error(err)
			}
			if quit {
				return nil
			}
		}
	}
}

func dispatch(ctx context.Context, console *client.Console, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, "/") {
		return false, console.SubmitText(line)
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil
	case "/analyze":
		return false, console.Analyze()
	case "/clear":
		return false, console.Clear()
	case "/live":
		if len(fields) < 2 {
			return false, console.ToggleLive()
		}
		switch fields[1] {
		case "on":
			return false, console.SetLive(true)
		case "off":
			return false, console.SetLive(false)
		}
		return false, fmt.Errorf("usage: /live on|off")
	case "/reconnect":
		return false, console.Connect(ctx)
	}
	return false, fmt.Errorf("unknown command %s", fields[0])
}
