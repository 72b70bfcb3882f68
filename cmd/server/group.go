package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/storage/postgres"
	"github.com/spf13/cobra"
)

type groupOptions struct {
	title       string
	slug        string
	description string
}

var groupOpts = &groupOptions{}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage post groups",
}

// Группы создаются только через CLI, поэтому команда работает с PostgreSQL
var groupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a group in the PostgreSQL store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return createGroup(cmd, groupOpts)
	},
}

func init() {
	groupCreateCmd.Flags().StringVar(&groupOpts.title, "title", "", "Group title")
	groupCreateCmd.Flags().StringVar(&groupOpts.slug, "slug", "", "URL slug: letters, digits, '-' and '_'")
	groupCreateCmd.Flags().StringVar(&groupOpts.description, "description", "", "Group description")
	groupCreateCmd.MarkFlagRequired("title")
	groupCreateCmd.MarkFlagRequired("slug")

	groupCmd.AddCommand(groupCreateCmd)
	RootCmd.AddCommand(groupCmd)
}

func createGroup(cmd *cobra.Command, opts *groupOptions) error {
	if err := postgres.InitDB(); err != nil {
		return err
	}
	defer postgres.CloseDB()

	if err := postgres.Migrate(); err != nil {
		return err
	}

	g, err := postgres.NewGroupPostgresStorage().CreateGroup(opts.title, opts.slug, opts.description)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created group %q at /group/%s/\n", g.Title, g.Slug)
	return nil
}

// seedGroups creates the groups given as "slug=Title" that do not exist yet.
// An entry without a title uses the slug as the title.
func seedGroups(groups group.GroupStorage, entries []string) error {
	for _, entry := range entries {
		slug, title, _ := strings.Cut(entry, "=")
		slug = strings.TrimSpace(slug)
		title = strings.TrimSpace(title)
		if title == "" {
			title = slug
		}

		_, err := groups.GetGroupBySlug(slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to check group %s: %w", slug, err)
		}

		if _, err := groups.CreateGroup(title, slug, ""); err != nil {
			return fmt.Errorf("failed to create group %s: %w", slug, err)
		}
		log.Printf("Создана группа %s (%s)", title, slug)
	}
	return nil
}
