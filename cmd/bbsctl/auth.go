package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) registerCmd() *cobra.Command {
	var email, username, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			res, err := a.api.Register(ctx, email, username, password)
			if err != nil {
				return err
			}
			if err := a.store.Save(res.Token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s registered as %s\n", color.GreenString("✓"), res.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			res, err := a.api.Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := a.store.Save(res.Token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s logged in as %s\n", color.GreenString("✓"), res.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.api.Token() != "" {
				ctx, cancel := commandContext(cmd)
				defer cancel()
				// the local token is dropped even when the server refuses it
				if err := a.api.Logout(ctx); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("server logout failed: %v", err))
				}
			}
			if err := a.store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
