package cli

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type app struct {
	server    string
	sessionID string
	natsURL   string
	keepalive time.Duration

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func NewRootCommand() *cobra.Command {
	return NewRootCommandWithIO(os.Stdin, os.Stdout, os.Stderr)
}

func NewRootCommandWithIO(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{stdin: in, stdout: out, stderr: errOut}

	cmd := &cobra.Command{
		Use:           "console",
		Short:         "Operator console for live call-center sessions",
		Long:          "console joins a live session as the customer or the agent, shows the shared transcript and its analysis, and files invoice requests.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVar(&a.server, "server", envOr("CONSOLE_SERVER", "http://localhost:8000"), "analysis server base URL")
	cmd.PersistentFlags().StringVarP(&a.sessionID, "session", "s", "default", "session id to join")
	cmd.PersistentFlags().StringVar(&a.natsURL, "nats-url", envOr("NATS_URL", "nats://localhost:4222"), "NATS server for the events command")
	cmd.PersistentFlags().DurationVar(&a.keepalive, "keepalive", 30*time.Second, "ping interval, 0 disables")

	cmd.AddCommand(
		newSessionCmd(a, "customer", "Join a session as the customer"),
		newSessionCmd(a, "agent", "Join a session as the agent"),
		newInvoiceCmd(a),
		newEventsCmd(a),
	)
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
