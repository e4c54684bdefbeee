package main

import (
	"fmt"

	"inkwell/internal/seed"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled sample posts",
	Long: `Load the bundled sample posts, attributed to the admin account.

Nothing is written when the database already contains posts. Use --demo to
additionally generate random posts and comments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := withSchema(cmd); err != nil {
			return err
		}
		ctx := cmd.Context()

		opts := seed.DefaultOptions()
		opts.SkipBcrypt, _ = cmd.Flags().GetBool("skip-bcrypt")
		created, err := seed.NewSeeder(svc, store.Users(), seed.DataFS(), opts).Run(ctx)
		if err != nil {
			return err
		}
		green := color.New(color.FgGreen).SprintFunc()
		if created == 0 {
			fmt.Println(color.YellowString("Posts already loaded, skipping sample posts"))
		} else {
			fmt.Printf("%s %d sample post(s) created as %s\n", green("✓"), created, opts.AdminEmail)
		}

		demo, _ := cmd.Flags().GetInt("demo")
		if demo <= 0 {
			return nil
		}
		seedValue, _ := cmd.Flags().GetInt64("seed")
		f := seed.NewFactory(svc, store.Users(), seed.FactoryOptions{
			Seed:               seedValue,
			SkipBcrypt:         opts.SkipBcrypt,
			MaxCommentsPerPost: 3,
		})
		posts, err := f.Demo(ctx, demo)
		if err != nil {
			return err
		}
		fmt.Printf("%s %d demo post(s) created\n", green("✓"), len(posts))
		return nil
	},
}

func init() {
	seedCmd.Flags().Int("demo", 0, "Number of random demo posts to generate")
	seedCmd.Flags().Int64("seed", 0, "Random seed for demo content (0 = time based)")
	seedCmd.Flags().Bool("skip-bcrypt", false, "Store seed passwords without hashing")
	rootCmd.AddCommand(seedCmd)
}
