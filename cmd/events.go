package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// EventsList lists matches via the legacy flat event endpoint.
func (r *Runner) EventsList(ctx context.Context, cmd *cli.Command) error {
	matches, err := r.matches.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}
	return r.renderMatches(cmd, "Events", matches)
}

// EventsGet shows one match via the legacy flat event endpoint.
func (r *Runner) EventsGet(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	match, err := r.matches.GetEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch event %d: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(match, cmd.Bool("pretty"))
	}

	r.writePlainHeader(match.Headline())
	r.writePlain("Competition: %s\n", match.CompetitionName())
	r.writePlain("Status: %s\n", match.Status)
	return nil
}
