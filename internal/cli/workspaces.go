package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/service"
	"github.com/spf13/cobra"
)

func newWorkspacesCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"workspace", "ws"},
		Short:   "Manage workspaces",
	}

	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				workspaces := svc.State().Workspaces
				return out.Success(workspaces, func(w io.Writer) {
					rows := make([][]string, 0, len(workspaces))
					for _, ws := range workspaces {
						rows = append(rows, []string{ws.ID, ws.Name, fmt.Sprint(len(svc.WorkspaceProjects(ws.ID))), ws.Description})
					}
					table(w, "ID\tNAME\tPROJECTS\tDESCRIPTION", rows)
				})
			})
		},
	}

	var ws domain.Workspace
	create := &cobra.Command{
		Use:  "create",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				created, err := svc.AddWorkspace(ctx, ws)
				if err != nil {
					return err
				}
				return out.Success(created, func(w io.Writer) {
					fmt.Fprintf(w, "Created workspace %s (%s)\n", created.Name, created.ID)
				})
			})
		},
	}
	create.Flags().StringVar(&ws.Name, "name", "", "workspace name")
	create.Flags().StringVar(&ws.Description, "description", "", "description")
	create.Flags().StringVar(&ws.ClientID, "client", "", "client id")
	_ = create.MarkFlagRequired("name")

	del := &cobra.Command{
		Use:   "delete <workspace-id>",
		Short: "Delete an empty workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				if err := svc.DeleteWorkspace(ctx, args[0]); err != nil {
					return err
				}
				return out.Success(deleted("workspace", args[0]))
			})
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func newTemplatesCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template"},
		Short:   "Manage project templates",
	}

	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				templates := svc.State().ProjectTemplates
				return out.Success(templates, func(w io.Writer) {
					rows := make([][]string, 0, len(templates))
					for _, t := range templates {
						rows = append(rows, []string{t.ID, t.Name, fmt.Sprint(len(t.Tasks))})
					}
					table(w, "ID\tNAME\tTASKS", rows)
				})
			})
		},
	}

	imp := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import templates from a YAML file (\"-\" reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "cannot read templates", err)
				}
				defer f.Close()
				src = f
			}
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				imported, err := svc.ImportTemplates(ctx, src)
				if err != nil {
					return err
				}
				return out.Success(imported, func(w io.Writer) {
					fmt.Fprintf(w, "Imported %d templates\n", len(imported))
				})
			})
		},
	}

	del := &cobra.Command{
		Use:  "delete <template-id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				if _, ok := svc.ProjectTemplate(args[0]); !ok {
					return fmt.Errorf("template %s: %w", args[0], service.ErrTemplateNotFound)
				}
				if err := svc.DeleteProjectTemplate(ctx, args[0]); err != nil {
					return err
				}
				return out.Success(deleted("template", args[0]))
			})
		},
	}

	cmd.AddCommand(list, imp, del)
	return cmd
}

func newCompanyCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Show or change the company profile",
	}

	show := &cobra.Command{
		Use:  "show",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				info := svc.State().CompanyInfo
				return out.Success(info, func(w io.Writer) { writeCompany(w, info) })
			})
		},
	}

	var next domain.CompanyInfo
	set := &cobra.Command{
		Use:  "set",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				info := svc.State().CompanyInfo
				changed := cmd.Flags().Changed
				if changed("name") {
					info.Name = next.Name
				}
				if changed("cnpj") {
					info.CNPJ = next.CNPJ
				}
				if changed("address") {
					info.Address = next.Address
				}
				if changed("logo") {
					info.LogoURL = next.LogoURL
				}
				info = svc.UpdateCompanyInfo(ctx, info)
				return out.Success(info, func(w io.Writer) { writeCompany(w, info) })
			})
		},
	}
	set.Flags().StringVar(&next.Name, "name", "", "company name")
	set.Flags().StringVar(&next.CNPJ, "cnpj", "", "tax id")
	set.Flags().StringVar(&next.Address, "address", "", "address")
	set.Flags().StringVar(&next.LogoURL, "logo", "", "logo URL")

	cmd.AddCommand(show, set)
	return cmd
}

func writeCompany(w io.Writer, info domain.CompanyInfo) {
	table(w, "NAME\tCNPJ\tADDRESS\tLOGO", [][]string{{info.Name, info.CNPJ, info.Address, info.LogoURL}})
}
