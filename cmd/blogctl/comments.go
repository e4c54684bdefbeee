package main

import (
	"fmt"

	"inkwell/internal/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "List and delete comments",
}

var commentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List comments of one post, or the newest across all posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := withSchema(cmd); err != nil {
			return err
		}
		postID, _ := cmd.Flags().GetUint("post")
		limit, _ := cmd.Flags().GetInt("limit")

		var comments []models.Comment
		var err error
		if postID > 0 {
			comments, err = svc.ListComments(cmd.Context(), postID)
		} else {
			comments, err = svc.ListRecentComments(cmd.Context(), limit)
		}
		if err != nil {
			return err
		}
		if len(comments) == 0 {
			fmt.Println(color.YellowString("No comments"))
			return nil
		}

		gray := color.New(color.FgHiBlack).SprintFunc()
		for _, c := range comments {
			fmt.Printf("%4d  %s post=%d %s: %s\n", c.ID, gray(c.CreatedAt.Format("2006-01-02 15:04")), c.PostID, c.CreatedBy.Name, c.Content)
		}
		return nil
	},
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete comments by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := withSchema(cmd); err != nil {
			return err
		}
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if err := svc.DeleteComments(cmd.Context(), ids); err != nil {
			return err
		}
		fmt.Printf("%s deleted %d comment(s)\n", color.GreenString("✓"), len(ids))
		return nil
	},
}

func init() {
	commentsListCmd.Flags().Uint("post", 0, "Only comments of this post id")
	commentsListCmd.Flags().Int("limit", 20, "Maximum comments when listing across posts (0 = all)")

	commentsCmd.AddCommand(commentsListCmd, commentsDeleteCmd)
	rootCmd.AddCommand(commentsCmd)
}
