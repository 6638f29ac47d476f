package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"scoreline/internal/shared"
)

// CommentsPost posts a comment on a match and shows the refreshed thread.
// The request goes out with whatever token the session holds; an unauthorized
// post surfaces as the backend's 401 rather than being blocked locally.
func (r *Runner) CommentsPost(ctx context.Context, cmd *cli.Command) error {
	matchID, err := parseID(cmd.String("match"))
	if err != nil {
		return err
	}

	text := cmd.StringArg("text")
	if text == "" {
		return fmt.Errorf("%w: comment text is required", shared.ErrMissingArgument)
	}

	result, err := r.engine.PostComment(ctx, matchID, text)
	if err != nil {
		return fmt.Errorf("failed to post comment: %w", err)
	}

	r.writePlain("✓ Comment posted\n")

	if result.Match != nil {
		r.writePlainln("Comments on %s (%d):", result.Match.Headline(), len(result.Match.Comments))
		for _, c := range result.Match.Comments {
			author := c.Username
			if author == "" {
				author = "anonymous"
			}
			r.writePlain("  %s: %s\n", author, c.Text)
		}
	}
	return nil
}
