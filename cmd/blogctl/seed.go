package main

import (
	"fmt"
	"os"

	"blogicum/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	opts := seed.DefaultOptions()
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo users, posts and comments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if catalogPath != "" {
				raw, err := os.ReadFile(catalogPath)
				if err != nil {
					return fmt.Errorf("read catalog: %w", err)
				}
				opts.Catalog = raw
			}

			rt, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			summary, err := seed.Seed(cmd.Context(), rt.db, opts)
			if err != nil {
				return err
			}
			cmd.Printf("users=%d categories=%d locations=%d posts=%d comments=%d\n",
				summary.Users, summary.Categories, summary.Locations, summary.Posts, summary.Comments)
			if summary.Users > 0 {
				cmd.Printf("all demo users have the password %q\n", seed.DefaultPassword)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.NumUsers, "users", opts.NumUsers, "number of users to create")
	f.IntVar(&opts.NumPosts, "posts", opts.NumPosts, "number of posts to create")
	f.IntVar(&opts.CommentsPerPost, "comments", opts.CommentsPerPost, "comments per post")
	f.IntVar(&opts.DraftPercent, "drafts", opts.DraftPercent, "percent of posts left unpublished")
	f.IntVar(&opts.ScheduledPercent, "scheduled", opts.ScheduledPercent, "percent of posts dated in the future")
	f.Int64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	f.BoolVar(&opts.Clean, "clean", false, "delete existing content first")
	f.StringVar(&catalogPath, "catalog", "", "YAML catalog fixture (defaults to the built-in one)")
	return cmd
}
