// Command bbsctl is a terminal client for a threadbbs server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cppla/threadbbs/client"
)

const defaultServer = "http://localhost:3001"

type app struct {
	server      string
	credentials string
	store       client.CredentialStore
	api         *client.Client
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgHiRed, color.Bold).Sprint("error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "bbsctl",
		Short:         "Read and write threadbbs from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	server := os.Getenv("THREADBBS_URL")
	if server == "" {
		server = defaultServer
	}
	root.PersistentFlags().StringVar(&a.server, "server", server, "server base URL (env THREADBBS_URL)")
	root.PersistentFlags().StringVar(&a.credentials, "credentials", "", "credentials file (default $HOME/.threadbbs/credentials.json)")

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.postsCmd(),
		a.commentsCmd(),
	)
	return root
}

func (a *app) init() error {
	path := a.credentials
	if path == "" {
		var err error
		if path, err = client.DefaultCredentialPath(); err != nil {
			return err
		}
	}
	a.store = client.CredentialStore{Path: path}
	token, err := a.store.Load()
	if err != nil {
		return err
	}
	a.api = client.New(a.server, client.WithToken(token))
	return nil
}

func (a *app) requireToken() error {
	if a.api.Token() == "" {
		return fmt.Errorf("not logged in; run `bbsctl login` first")
	}
	return nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}
