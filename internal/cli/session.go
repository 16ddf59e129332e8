package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/GoSim-25-26J-441/workdesk/internal/service"
	"github.com/spf13/cobra"
)

func newStatusCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Load every collection and report what was fetched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				st := svc.State()
				counts := map[string]int{
					"projects":     len(st.Projects),
					"tasks":        len(st.Tasks),
					"participants": len(st.Participants),
					"roles":        len(st.Roles),
					"clients":      len(st.Clients),
					"leads":        len(st.Leads),
					"workspaces":   len(st.Workspaces),
					"templates":    len(st.ProjectTemplates),
				}
				user := ""
				if st.CurrentUser != nil {
					user = st.CurrentUser.Email
				}
				data := map[string]any{"loaded": st.Loaded, "counts": counts, "currentUser": user}
				return out.Success(data, func(w io.Writer) {
					names := make([]string, 0, len(counts))
					for k := range counts {
						names = append(names, k)
					}
					sort.Strings(names)
					rows := make([][]string, 0, len(names))
					for _, k := range names {
						rows = append(rows, []string{k, fmt.Sprint(counts[k])})
					}
					table(w, "COLLECTION\tCOUNT", rows)
					if user != "" {
						fmt.Fprintf(w, "Logged in as %s\n", user)
					}
				})
			})
		},
	}
}

func newLoginCommand(r *runner) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the user in the local cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				user, err := svc.Login(ctx, email, password)
				if err != nil {
					return err
				}
				return out.Success(user, func(w io.Writer) {
					fmt.Fprintf(w, "Logged in as %s (%s)\n", user.Name, user.Email)
				})
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:  "logout",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				svc.Logout(ctx)
				return out.Success(map[string]bool{"loggedOut": true}, func(w io.Writer) {
					fmt.Fprintln(w, "Logged out")
				})
			})
		},
	}
}

func newWhoamiCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:  "whoami",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				user, err := svc.CurrentUser()
				if err != nil {
					return err
				}
				return out.Success(user, func(w io.Writer) {
					fmt.Fprintf(w, "%s <%s>\n", user.Name, user.Email)
				})
			})
		},
	}
}
