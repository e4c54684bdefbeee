package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := withSchema(cmd); err != nil {
			return err
		}
		categories, err := svc.ListCategories(cmd.Context())
		if err != nil {
			return err
		}
		gray := color.New(color.FgHiBlack).SprintFunc()
		for _, c := range categories {
			fmt.Printf("%4d  %s %s\n", c.ID, c.Name, gray(c.Slug))
		}
		return nil
	},
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category unless one with the same slug exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := withSchema(cmd); err != nil {
			return err
		}
		c, err := svc.GetOrCreateCategory(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s %s (%s) id=%d\n", color.GreenString("✓"), c.Name, c.Slug, c.ID)
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage tags",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := withSchema(cmd); err != nil {
			return err
		}
		tags, err := svc.ListTags(cmd.Context())
		if err != nil {
			return err
		}
		gray := color.New(color.FgHiBlack).SprintFunc()
		for _, t := range tags {
			fmt.Printf("%4d  %s %s\n", t.ID, t.Name, gray(t.Slug))
		}
		return nil
	},
}

var tagsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tag and detach it from every post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := withSchema(cmd); err != nil {
			return err
		}
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if err := svc.DeleteTag(cmd.Context(), ids[0]); err != nil {
			return err
		}
		fmt.Printf("%s deleted tag %d\n", color.GreenString("✓"), ids[0])
		return nil
	},
}

func init() {
	categoriesCmd.AddCommand(categoriesListCmd, categoriesAddCmd)
	tagsCmd.AddCommand(tagsListCmd, tagsDeleteCmd)
	rootCmd.AddCommand(categoriesCmd, tagsCmd)
}
