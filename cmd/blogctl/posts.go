package main

import (
	"fmt"
	"strconv"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List, show and delete posts",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a page of posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := withSchema(cmd); err != nil {
			return err
		}
		in := service.ListPostsInput{}
		in.CategorySlug, _ = cmd.Flags().GetString("category")
		in.TagSlug, _ = cmd.Flags().GetString("tag")
		status, _ := cmd.Flags().GetString("status")
		in.Status = models.PostStatus(strings.ToUpper(status))
		in.PageNumber, _ = cmd.Flags().GetInt("page")
		in.PageSize, _ = cmd.Flags().GetInt("size")

		page, err := svc.ListPosts(cmd.Context(), in)
		if err != nil {
			return err
		}
		printPage(page)
		return nil
	},
}

var postsShowCmd = &cobra.Command{
	Use:   "show <id|slug>",
	Short: "Show one post with its tags and comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := withSchema(cmd); err != nil {
			return err
		}
		ctx := cmd.Context()

		var post *models.Post
		var err error
		if id, convErr := strconv.ParseUint(args[0], 10, 64); convErr == nil {
			post, err = svc.GetPostByID(ctx, uint(id))
		} else {
			post, err = svc.GetPostBySlug(ctx, args[0])
		}
		if err != nil {
			return err
		}

		comments, err := svc.ListComments(ctx, post.ID)
		if err != nil {
			return err
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		fmt.Printf("\n%s\n", cyan(post.Title))
		fmt.Printf("%s\n", gray(fmt.Sprintf("#%d %s · %s · %s · %s", post.ID, post.Slug, post.Status, post.Category.Name, post.CreatedAt.Format("2006-01-02 15:04"))))
		fmt.Printf("Author: %s\n", post.CreatedBy.Name)
		fmt.Printf("Tags:   %s\n", tagNames(post.Tags))
		if post.ShortDescription != "" {
			fmt.Printf("\n%s\n", post.ShortDescription)
		}
		fmt.Printf("\n%s\n", post.ContentMarkdown)

		fmt.Printf("\n%s\n", cyan(fmt.Sprintf("Comments (%d)", len(comments))))
		for _, c := range comments {
			fmt.Printf("  %s %s: %s\n", gray(c.CreatedAt.Format("2006-01-02")), c.CreatedBy.Name, c.Content)
		}
		fmt.Println()
		return nil
	},
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete posts and their comments",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := withSchema(cmd); err != nil {
			return err
		}
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if err := svc.DeletePosts(cmd.Context(), ids); err != nil {
			return err
		}
		fmt.Printf("%s deleted %d post(s)\n", color.GreenString("✓"), len(ids))
		return nil
	},
}

func printPage(page models.PagedResult[*models.Post]) {
	if len(page.Data) == 0 {
		fmt.Println(color.YellowString("No posts found"))
		return
	}
	gray := color.New(color.FgHiBlack).SprintFunc()
	for _, p := range page.Data {
		status := color.GreenString(string(p.Status))
		if p.Status != models.PostStatusPublished {
			status = color.YellowString(string(p.Status))
		}
		fmt.Printf("%4d  %-9s %s %s\n", p.ID, status, p.Title, gray("["+tagNames(p.Tags)+"]"))
	}
	fmt.Printf("\n%s\n", gray(fmt.Sprintf("page %d of %d, %d post(s)", page.PageNumber, page.TotalPages, page.TotalElements)))
}

func tagNames(tags []models.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

func parseIDs(args []string) ([]uint, error) {
	ids := make([]uint, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseUint(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", a, err)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func init() {
	postsListCmd.Flags().String("category", "", "Only posts in this category slug")
	postsListCmd.Flags().String("tag", "", "Only posts with this tag slug")
	postsListCmd.Flags().String("status", "", "Only posts with this status (draft|published)")
	postsListCmd.Flags().Int("page", 1, "Page number, starting at 1")
	postsListCmd.Flags().Int("size", 0, "Page size (defaults to POST_PAGE_SIZE)")

	postsCmd.AddCommand(postsListCmd, postsShowCmd, postsDeleteCmd)
	rootCmd.AddCommand(postsCmd)
}
