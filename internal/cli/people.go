package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/service"
	"github.com/spf13/cobra"
)

func deleted(kind, id string) (any, func(io.Writer)) {
	return map[string]string{"deleted": id}, func(w io.Writer) { fmt.Fprintf(w, "Deleted %s %s\n", kind, id) }
}

func newParticipantsCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "participants",
		Aliases: []string{"people"},
		Short:   "Manage participants",
	}

	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				people := svc.State().Participants
				return out.Success(people, func(w io.Writer) {
					rows := make([][]string, 0, len(people))
					for _, p := range people {
						rows = append(rows, []string{p.ID, p.Name, p.Email, p.RoleID})
					}
					table(w, "ID\tNAME\tEMAIL\tROLE", rows)
				})
			})
		},
	}

	var p domain.Participant
	var password string
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a participant with an initial password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				created, err := svc.AddParticipant(ctx, p, password)
				if err != nil {
					return err
				}
				return out.Success(created, func(w io.Writer) {
					fmt.Fprintf(w, "Created participant %s (%s)\n", created.Name, created.ID)
				})
			})
		},
	}
	create.Flags().StringVar(&p.Name, "name", "", "full name")
	create.Flags().StringVar(&p.Email, "email", "", "email, used to log in")
	create.Flags().StringVar(&p.RoleID, "role", "", "role id")
	create.Flags().StringVar(&password, "password", "", "initial password (API default when empty)")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("email")

	del := &cobra.Command{
		Use:  "delete <participant-id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				if err := svc.DeleteParticipant(ctx, args[0]); err != nil {
					return err
				}
				return out.Success(deleted("participant", args[0]))
			})
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func newRolesCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "roles",
		Aliases: []string{"role"},
		Short:   "Manage roles and their permissions",
	}

	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				roles := svc.State().Roles
				return out.Success(roles, func(w io.Writer) {
					rows := make([][]string, 0, len(roles))
					for _, role := range roles {
						rows = append(rows, []string{role.ID, role.Name, strings.Join(role.Permissions, ",")})
					}
					table(w, "ID\tNAME\tPERMISSIONS", rows)
				})
			})
		},
	}

	var role domain.Role
	create := &cobra.Command{
		Use:  "create",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				created, err := svc.AddRole(ctx, role)
				if err != nil {
					return err
				}
				return out.Success(created, func(w io.Writer) {
					fmt.Fprintf(w, "Created role %s (%s)\n", created.Name, created.ID)
				})
			})
		},
	}
	create.Flags().StringVar(&role.Name, "name", "", "role name")
	create.Flags().StringSliceVar(&role.Permissions, "permission", nil, "permission (repeatable)")
	_ = create.MarkFlagRequired("name")

	del := &cobra.Command{
		Use:   "delete <role-id>",
		Short: "Delete a role no participant holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				if err := svc.DeleteRole(ctx, args[0]); err != nil {
					return err
				}
				return out.Success(deleted("role", args[0]))
			})
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func newClientsCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client"},
		Short:   "Manage clients",
	}

	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				clients := svc.State().Clients
				return out.Success(clients, func(w io.Writer) {
					rows := make([][]string, 0, len(clients))
					for _, c := range clients {
						rows = append(rows, []string{c.ID, c.Name, c.Company, c.Email, c.CNPJ})
					}
					table(w, "ID\tNAME\tCOMPANY\tEMAIL\tCNPJ", rows)
				})
			})
		},
	}

	var c domain.Client
	create := &cobra.Command{
		Use:  "create",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				created, err := svc.AddClient(ctx, c)
				if err != nil {
					return err
				}
				return out.Success(created, func(w io.Writer) {
					fmt.Fprintf(w, "Created client %s (%s)\n", created.Name, created.ID)
				})
			})
		},
	}
	create.Flags().StringVar(&c.Name, "name", "", "contact name")
	create.Flags().StringVar(&c.Email, "email", "", "contact email")
	create.Flags().StringVar(&c.Phone, "phone", "", "phone")
	create.Flags().StringVar(&c.Company, "company", "", "company name")
	create.Flags().StringVar(&c.CNPJ, "cnpj", "", "company tax id")
	create.Flags().StringVar(&c.Address, "address", "", "address")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("email")

	del := &cobra.Command{
		Use:  "delete <client-id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				if err := svc.DeleteClient(ctx, args[0]); err != nil {
					return err
				}
				return out.Success(deleted("client", args[0]))
			})
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func newLeadsCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leads",
		Aliases: []string{"lead"},
		Short:   "Manage sales leads",
	}

	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				leads := svc.State().Leads
				return out.Success(leads, func(w io.Writer) {
					rows := make([][]string, 0, len(leads))
					for _, l := range leads {
						rows = append(rows, []string{l.ID, l.Name, l.Company, l.Status, fmt.Sprintf("%.2f", l.Value)})
					}
					table(w, "ID\tNAME\tCOMPANY\tSTATUS\tVALUE", rows)
				})
			})
		},
	}

	var l domain.Lead
	create := &cobra.Command{
		Use:  "create",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				created, err := svc.AddLead(ctx, l)
				if err != nil {
					return err
				}
				return out.Success(created, func(w io.Writer) {
					fmt.Fprintf(w, "Created lead %s (%s)\n", created.Name, created.ID)
				})
			})
		},
	}
	create.Flags().StringVar(&l.Name, "name", "", "lead name")
	create.Flags().StringVar(&l.Email, "email", "", "email")
	create.Flags().StringVar(&l.Company, "company", "", "company")
	create.Flags().StringVar(&l.Status, "status", "Novo", "pipeline status")
	create.Flags().Float64Var(&l.Value, "value", 0, "estimated value")
	create.Flags().StringVar(&l.ClientID, "client", "", "client id")
	_ = create.MarkFlagRequired("name")

	del := &cobra.Command{
		Use:  "delete <lead-id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				if err := svc.DeleteLead(ctx, args[0]); err != nil {
					return err
				}
				return out.Success(deleted("lead", args[0]))
			})
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}
