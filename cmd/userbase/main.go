package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nibbleworks/userbase/internal/app"
	"github.com/nibbleworks/userbase/internal/docstore"
	"github.com/nibbleworks/userbase/internal/users"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "userbase",
		Short:         "User management backend admin tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(),
		newRegisterCmd(),
		newAuthenticateCmd(),
		newSearchCmd(),
		newGetCmd(),
	)
	return root
}

// withApp builds the application for a command run and tears it down after.
func withApp(cmd *cobra.Command, fn func(a *app.Application) error) error {
	a, err := app.New(cmd.Context(), app.LoadConfig())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending store migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.Application) error {
				if err := a.Store().ApplyMigrations(); err != nil {
					return err
				}
				a.Logger().Info("migrations applied")
				return nil
			})
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var first, last, username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.Application) error {
				user, err := a.Users().Register(cmd.Context(), users.RegisterParams{
					FirstName:         first,
					LastName:          last,
					Username:          username,
					Password:          password,
					ConfirmedPassword: password,
				})
				if err != nil {
					return err
				}
				return printJSON(map[string]string{"id": user.ID})
			})
		},
	}

	cmd.Flags().StringVar(&first, "first-name", "", "first name")
	cmd.Flags().StringVar(&last, "last-name", "", "last name")
	cmd.Flags().StringVar(&username, "username", "", "username (email address)")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAuthenticateCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "authenticate",
		Short: "Verify credentials and issue a token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.Application) error {
				resp, err := a.Tokens().Authenticate(cmd.Context(), username, password)
				if err != nil {
					return err
				}
				return printJSON(resp)
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username (email address)")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var (
		username, sortColumn string
		pageStart, pageSize  int
		descending, exact    bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search users",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := docstore.Ascending
			if descending {
				dir = docstore.Descending
			}
			return withApp(cmd, func(a *app.Application) error {
				found, err := a.Users().Search(cmd.Context(), users.SearchParams{
					Username:      username,
					PageStart:     pageStart,
					PageSize:      pageSize,
					SortColumn:    sortColumn,
					SortDirection: dir,
					ExactSearch:   exact,
				})
				if err != nil {
					return err
				}
				out := make([]userSummary, 0, len(found))
				for _, u := range found {
					out = append(out, summarize(u))
				}
				return printJSON(out)
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "filter text")
	cmd.Flags().IntVar(&pageStart, "page-start", 0, "documents to skip")
	cmd.Flags().IntVar(&pageSize, "page-size", docstore.DefaultPageSize, "page size, -1 disables paging")
	cmd.Flags().StringVar(&sortColumn, "sort", "", "sort column (firstname, lastname, username)")
	cmd.Flags().BoolVar(&descending, "desc", false, "sort descending")
	cmd.Flags().BoolVar(&exact, "exact", false, "exact match instead of contains")
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one user by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.Application) error {
				user, err := a.Users().GetByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if user == nil {
					return fmt.Errorf("no user with id %q", args[0])
				}
				return printJSON(summarize(user))
			})
		},
	}
}

// userSummary is the public-safe projection; the stored hash stays private.
type userSummary struct {
	ID        string `json:"id"`
	UserName  string `json:"userName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func summarize(u *users.AppUser) userSummary {
	return userSummary{ID: u.ID, UserName: u.UserName, FirstName: u.FirstName, LastName: u.LastName}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
