package cli

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"callcenter-analysis-be/pkg/events"
	pktNats "callcenter-analysis-be/pkg/nats"
)

func newEventsCmd(a *app) *cobra.Command {
	var session string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail conversation events published on NATS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sub, err := pktNats.NewSubscriber(a.natsURL, nil)
			if err != nil {
				return fmt.Errorf("connect to NATS: %w", err)
			}
			defer sub.Close()

			view := renderer{out: a.stdout}
			err = sub.Subscribe(ctx, pktNats.Subject(">"), "", func(_ context.Context, ev events.Event) error {
				if session != "" && fmt.Sprint(ev.Payload()["session_id"]) != session {
					return nil
				}
				view.event(ev)
				return nil
			})
			if err != nil {
				return err
			}
			view.system("listening on %s", pktNats.Subject(">"))
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&session, "only", "", "show only events of this session id")
	return cmd
}

func (r renderer) event(ev events.Event) {
	payload := ev.Payload()
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, payload[k]))
	}
	systemColor.Fprintf(r.out, "%s ", ev.Timestamp().Local().Format("15:04:05"))
	agentColor.Fprintf(r.out, "%s ", ev.EventType())
	fmt.Fprintln(r.out, strings.Join(parts, " "))
}
