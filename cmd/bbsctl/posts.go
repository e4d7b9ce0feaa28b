package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cppla/threadbbs/api"
)

const timeLayout = "2006-01-02 15:04"

func (a *app) postsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List, show, create and delete posts",
	}
	cmd.AddCommand(a.postsListCmd(), a.postsShowCmd(), a.postsCreateCmd(), a.postsDeleteCmd())
	return cmd
}

func (a *app) postsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List posts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			posts, err := a.api.ListPosts(ctx)
			if err != nil {
				return err
			}
			renderPosts(cmd.OutOrStdout(), posts)
			return nil
		},
	}
}

func renderPosts(w io.Writer, posts []api.PostView) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "no posts yet")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Title", "Author", "Votes", "Comments", "Created"})
	table.SetAutoWrapText(false)
	for _, p := range posts {
		table.Append([]string{
			p.ID,
			p.Title,
			p.Author.Username,
			strconv.FormatInt(p.Count.Votes, 10),
			strconv.FormatInt(p.Count.Comments, 10),
			p.CreatedAt.Local().Format(timeLayout),
		})
	}
	table.Render()
}

func (a *app) postsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a post with its comment tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			post, err := a.api.GetPost(ctx, args[0])
			if err != nil {
				return err
			}
			tree, err := a.api.ListComments(ctx, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, color.New(color.Bold).Sprint(post.Title))
			fmt.Fprintf(w, "by %s · %s · %d votes · %d comments\n",
				post.Author.Username, post.CreatedAt.Local().Format(timeLayout), post.Count.Votes, post.Count.Comments)
			if post.Link != nil {
				fmt.Fprintln(w, color.CyanString(*post.Link))
			}
			if post.Content != nil {
				fmt.Fprintln(w)
				fmt.Fprintln(w, *post.Content)
			}
			fmt.Fprintln(w)
			renderTree(w, tree)
			return nil
		},
	}
}

// renderTree prints the comment forest depth first with a work stack.
func renderTree(w io.Writer, roots []*api.CommentNode) {
	type item struct {
		node  *api.CommentNode
		depth int
	}
	stack := make([]item, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, item{roots[i], 0})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		indent := strings.Repeat("  ", it.depth)
		fmt.Fprintf(w, "%s%s %s [%s]\n", indent,
			color.New(color.Bold).Sprint(it.node.Author.Username),
			color.HiBlackString(it.node.CreatedAt.Local().Format(timeLayout)),
			it.node.ID)
		for _, line := range strings.Split(it.node.Content, "\n") {
			fmt.Fprintf(w, "%s  %s\n", indent, line)
		}
		for i := len(it.node.Replies) - 1; i >= 0; i-- {
			stack = append(stack, item{it.node.Replies[i], it.depth + 1})
		}
	}
}

func (a *app) postsCreateCmd() *cobra.Command {
	var title, content, link string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a post with text, a link, or both",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireToken(); err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			post, err := a.api.CreatePost(ctx, title, content, link)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s created post %s\n", color.GreenString("✓"), post.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "post title")
	cmd.Flags().StringVar(&content, "content", "", "post text")
	cmd.Flags().StringVar(&link, "link", "", "post URL")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *app) postsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete one of your posts",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireToken(); err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			if err := a.api.DeletePost(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s deleted post %s\n", color.GreenString("✓"), args[0])
			return nil
		},
	}
}
