package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/anarchistempire/empire/pkg/domain"
)

func newLoginCmd(e *env) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as an admin and remember the session",
		Args:  cobra.NoArgs,
		Example: `  empire login
  empire login --username root`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			if username == "" {
				fmt.Fprint(out, "Username: ")
				line, err := in.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read username: %w", err)
				}
				username = strings.TrimSpace(line)
			}

			fmt.Fprint(out, "Password: ")
			password, err := readPassword(cmd.InOrStdin(), in)
			fmt.Fprintln(out)
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			n := e.console.Login(cmd.Context(), username, password)
			if n.Failed() {
				return noticeError(n)
			}
			fmt.Fprintln(out, n.Message)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	return cmd
}

// readPassword reads without echo from a terminal, or a plain line otherwise.
func readPassword(src io.Reader, buffered *bufio.Reader) (string, error) {
	if f, ok := src.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		return string(b), err
	}
	line, err := buffered.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := e.console.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), n.Title)
			return nil
		},
	}
}

func newOrdersCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List storefront orders (needs a saved session)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e.console.Session.Restore()
			if n := e.console.RefreshOrders(cmd.Context()); n.Failed() {
				return noticeError(n)
			}
			orders := e.console.Orders.Items()
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), orders)
			}
			return printOrders(cmd.OutOrStdout(), orders)
		},
	}
}

func newPrivilegesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "privileges",
		Short: "List the privileges on sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if n := e.console.RefreshPrivileges(cmd.Context()); n.Failed() {
				return noticeError(n)
			}
			privileges := e.console.Privileges.Items()
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), privileges)
			}
			return printPrivileges(cmd.OutOrStdout(), privileges)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Overrides the root hook: printing the version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "empire %s\n", version)
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printOrders(w io.Writer, orders []domain.Order) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNICKNAME\tSTATUS\tPRIVILEGE\tPRICE\tEMAIL\tCREATED")
	for _, o := range orders {
		created := "-"
		if !o.CreatedAt.IsZero() {
			created = o.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%g\t%s\t%s\n",
			o.ID, o.Nickname, o.Status, o.PrivilegeName, o.Price, o.Email, created)
	}
	return tw.Flush()
}

func printPrivileges(w io.Writer, privileges []domain.Privilege) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tDURATION\tFEATURES")
	for _, p := range privileges {
		fmt.Fprintf(tw, "%d\t%s\t%g\t%s\t%s\n", p.ID, p.Name, p.Price, p.Duration, strings.Join(p.Features, "; "))
	}
	return tw.Flush()
}
