package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) commentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Read and write comments",
	}
	cmd.AddCommand(a.commentsListCmd(), a.commentsAddCmd())
	return cmd
}

func (a *app) commentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <postId>",
		Short: "Print the comment tree of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			tree, err := a.api.ListComments(ctx, args[0])
			if err != nil {
				return err
			}
			if len(tree) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no comments yet")
				return nil
			}
			renderTree(cmd.OutOrStdout(), tree)
			return nil
		},
	}
}

func (a *app) commentsAddCmd() *cobra.Command {
	var parent string
	cmd := &cobra.Command{
		Use:   "add <postId> <content>",
		Short: "Comment on a post, or reply with --parent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireToken(); err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			c, err := a.api.AddComment(ctx, args[0], args[1], parent)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s added comment %s\n", color.GreenString("✓"), c.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "id of the comment to reply to")
	return cmd
}
