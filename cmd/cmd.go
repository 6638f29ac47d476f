// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}
}

func prettyFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "pretty",
		Usage: "Pretty-print output",
		Value: true,
	}
}

func searchFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "Filter locally by team or competition name",
	}
}

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Account username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "confirm",
						Usage: "Password confirmation (defaults to --password)",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Sign in and persist the session",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Account username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the local session (no backend call)",
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the signed-in user",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.AuthWhoami,
			},
			{
				Name:  "status",
				Usage: "Show session state",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "verify",
						Usage: "Check the token against the backend, clearing the session when rejected",
					},
				},
				Action: r.AuthStatus,
			},
		},
	}
}

// matchesCommand handles match browsing and export operations
func matchesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "matches",
		Aliases: []string{"m"},
		Usage:   "Browse matches",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all matches",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag(), searchFlag()},
				Action: r.MatchesList,
			},
			{
				Name:  "get",
				Usage: "Show one match with its comments",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.MatchesGet,
			},
			{
				Name:   "today",
				Usage:  "List today's matches",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag(), searchFlag()},
				Action: r.MatchesToday,
			},
			{
				Name:   "upcoming",
				Usage:  "List matches that haven't kicked off yet",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag(), searchFlag()},
				Action: r.MatchesUpcoming,
			},
			{
				Name:   "finished",
				Usage:  "List completed matches",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag(), searchFlag()},
				Action: r.MatchesFinished,
			},
			{
				Name:  "range",
				Usage: "List matches in a date range",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "start",
						Usage:    "Start date (YYYY-MM-DD)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "end",
						Usage:    "End date (YYYY-MM-DD)",
						Required: true,
					},
					jsonFlag(), prettyFlag(),
				},
				Action: r.MatchesRange,
			},
			{
				Name:  "team",
				Usage: "List matches involving a team",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.MatchesTeam,
			},
			{
				Name:  "competition",
				Usage: "List matches in a competition",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.MatchesCompetition,
			},
			{
				Name:  "status",
				Usage: "List matches by lifecycle status (e.g. LIVE, FINISHED)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "status"},
				},
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.MatchesStatus,
			},
			{
				Name:   "stats",
				Usage:  "Show aggregate match statistics",
				Flags:  []cli.Flag{prettyFlag()},
				Action: r.MatchesStats,
			},
			{
				Name:  "export",
				Usage: "Export matches to CSV, Markdown or plain text",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown or text",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (format-dependent default)",
					},
					searchFlag(),
				},
				Action: r.MatchesExport,
			},
		},
	}
}

// eventsCommand exposes the legacy flat event endpoints
func eventsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Browse matches via the legacy event endpoints",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all events",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag(), searchFlag()},
				Action: r.EventsList,
			},
			{
				Name:  "get",
				Usage: "Show one event",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.EventsGet,
			},
		},
	}
}

// commentsCommand handles comment operations
func commentsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "comments",
		Usage: "Comment on matches",
		Commands: []*cli.Command{
			{
				Name:  "post",
				Usage: "Post a comment on a match",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "text"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "match",
						Aliases:  []string{"m"},
						Usage:    "Match ID to comment on",
						Required: true,
					},
				},
				Action: r.CommentsPost,
			},
		},
	}
}

// snapshotCommand handles local match snapshots
func snapshotCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Save matches locally for offline listing",
		Commands: []*cli.Command{
			{
				Name:  "save",
				Usage: "Fetch matches and save them to the local database",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent detail fetchers",
						Value: 3,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Maximum detail fetches per second",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "detail",
						Usage: "Refetch each match individually to include comments",
						Value: true,
					},
				},
				Action: r.SnapshotSave,
			},
			{
				Name:   "list",
				Usage:  "List saved snapshots",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.SnapshotList,
			},
			{
				Name:   "clear",
				Usage:  "Remove all saved snapshots",
				Action: r.SnapshotClear,
			},
		},
	}
}

// setupCommand handles setup operations for the local database and config.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive match browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing matches",
		Action:  r.TUI,
	}
}
