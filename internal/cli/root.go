// Package cli is the workdesk command line client. Every command opens a
// session against the records API, loads it, runs one operation and prints
// the result as text or JSON.
package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/GoSim-25-26J-441/workdesk/config"
	"github.com/GoSim-25-26J-441/workdesk/internal/bootstrap"
	"github.com/GoSim-25-26J-441/workdesk/internal/gateway"
	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/service"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

var ValidFormats = []string{"text", "json"}

// Opener builds the client session used by a command.
type Opener func(ctx context.Context, opts *RootOptions) (*bootstrap.Session, error)

// DefaultOpener reads the environment configuration and wires a session.
func DefaultOpener(ctx context.Context, opts *RootOptions) (*bootstrap.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level := cfg.App.LogLevel
	if !opts.Verbose {
		level = "error"
	}
	logger := bootstrap.InitLogger(level, cfg.App.Environment)
	return bootstrap.OpenSession(ctx, cfg, logger, nil)
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(DefaultOpener)
}

func newRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "workdesk",
		Short: "WorkDesk - projects, tasks and clients from the terminal",
		Long:  "Manage WorkDesk projects, tasks, people, clients, leads and workspaces through the records API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	r := &runner{opts: opts, open: open}
	cmd.AddCommand(
		newStatusCommand(r),
		newProjectsCommand(r),
		newTasksCommand(r),
		newParticipantsCommand(r),
		newRolesCommand(r),
		newClientsCommand(r),
		newLeadsCommand(r),
		newWorkspacesCommand(r),
		newTemplatesCommand(r),
		newCompanyCommand(r),
		newLoginCommand(r),
		newLogoutCommand(r),
		newWhoamiCommand(r),
	)
	return cmd
}

// runner opens and loads a session around one command.
type runner struct {
	opts *RootOptions
	open Opener
}

func (r *runner) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    r.opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   r.opts.Verbose,
	}
}

// with runs fn on a loaded session. Collections that failed to load are
// reported in verbose mode; the command still runs on what did load.
func (r *runner) with(cmd *cobra.Command, fn func(ctx context.Context, svc *service.Service, out *OutputFormatter) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := r.formatter(cmd)

	sess, err := r.open(ctx, r.opts)
	if err != nil {
		_ = out.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open session", err)
	}
	defer sess.Close()

	report := sess.Service.Load(ctx)
	for name, err := range report.Failed {
		out.VerboseLog("could not load %s: %v", name, err)
	}

	if err := fn(ctx, sess.Service, out); err != nil {
		return r.report(out, err)
	}
	return nil
}

// report prints err with an error code matching its cause.
func (r *runner) report(out *OutputFormatter, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		_ = out.Error(ErrCodeGeneric, exitErr.Error(), nil)
		return err
	}

	var guard *service.GuardError
	switch {
	case errors.As(err, &guard):
		_ = out.Error(ErrCodeGuard, guard.Message, map[string]any{"id": guard.ID, "references": guard.References})
	case errors.Is(err, domain.ErrInvalidRecord), gateway.StatusOf(err) == 400:
		_ = out.Error(ErrCodeInvalid, err.Error(), nil)
	case errors.Is(err, gateway.ErrNotFound), errors.Is(err, domain.ErrNotFound), errors.Is(err, service.ErrTemplateNotFound):
		_ = out.Error(ErrCodeNotFound, err.Error(), nil)
	case gateway.StatusOf(err) != 0:
		_ = out.Error(ErrCodeAPI, err.Error(), map[string]any{"status": gateway.StatusOf(err)})
	default:
		_ = out.Error(ErrCodeGeneric, err.Error(), nil)
	}
	return WrapExitError(ExitFailure, "command failed", err)
}
