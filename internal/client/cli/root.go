package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("please log in first (type 'login' or 'register')")

// annotation marking commands that need a signed-in user.
const needsLogin = "needs-login"

func loginRequired() map[string]string { return map[string]string{needsLogin: "true"} }

// newRootCmd builds a fresh command tree. It is rebuilt for every line so
// flag values never leak from one command into the next.
func (a *App) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hk",
		Short:         "HopeKeeper: OCD self-management companion",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for c := cmd; c != nil; c = c.Parent() {
				if c.Annotations[needsLogin] != "" && !a.isLoggedIn() {
					return errNotLoggedIn
				}
			}
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(a.out)
	root.SetErr(a.out)
	root.SetIn(a.reader)

	root.AddGroup(
		&cobra.Group{ID: "account", Title: "Account:"},
		&cobra.Group{ID: "track", Title: "Tracking:"},
		&cobra.Group{ID: "support", Title: "Support:"},
		&cobra.Group{ID: "data", Title: "Your data:"},
	)

	add := func(group string, cmds ...*cobra.Command) {
		for _, c := range cmds {
			c.GroupID = group
			root.AddCommand(c)
		}
	}
	add("account", a.registerCmd(), a.loginCmd(), a.logoutCmd(), a.statusCmd())
	add("track", a.moodCmd(), a.thoughtCmd(), a.erpCmd(), a.meditateCmd(), a.sleepCmd())
	add("support", a.chatCmd(), a.crisisCmd(), a.copeCmd(), a.resourcesCmd(), a.learnCmd(), a.audioCmd())
	add("data", a.progressCmd(), a.exportCmd(), a.syncCmd(), a.settingsCmd(), a.notificationsCmd())

	return root
}

// Execute runs one command line through a fresh command tree.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
