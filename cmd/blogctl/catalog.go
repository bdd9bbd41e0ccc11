package main

import (
	"fmt"
	"strconv"

	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/service"

	"github.com/spf13/cobra"
)

func catalogService(rt *runtime) *service.CatalogService {
	return service.NewCatalogService(
		repository.NewCategoryRepository(rt.db),
		repository.NewLocationRepository(rt.db),
	)
}

// withCatalog runs fn against a connected catalog service.
func withCatalog(cmd *cobra.Command, fn func(*service.CatalogService) error) error {
	rt, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(catalogService(rt))
}

func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	var (
		description string
		draft       bool
	)
	create := &cobra.Command{
		Use:   "create <slug> <title>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			published := !draft
			return withCatalog(cmd, func(svc *service.CatalogService) error {
				c, err := svc.CreateCategory(cmd.Context(), service.CreateCategoryInput{
					Slug:        args[0],
					Title:       args[1],
					Description: description,
					IsPublished: &published,
				})
				if err != nil {
					return err
				}
				cmd.Printf("created category %d (%s)\n", c.ID, c.Slug)
				return nil
			})
		},
	}
	create.Flags().StringVar(&description, "description", "", "category description")
	create.Flags().BoolVar(&draft, "unpublished", false, "create the category hidden")

	list := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCatalog(cmd, func(svc *service.CatalogService) error {
				categories, err := svc.ListCategories(cmd.Context(), false)
				if err != nil {
					return err
				}
				for _, c := range categories {
					cmd.Printf("%d\t%s\t%s\tpublished=%t\n", c.ID, c.Slug, c.Title, c.IsPublished)
				}
				return nil
			})
		},
	}

	toggle := func(use string, published bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <slug>",
			Short: use + " a category and every post filed under it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCatalog(cmd, func(svc *service.CatalogService) error {
					return svc.SetCategoryPublished(cmd.Context(), args[0], published)
				})
			},
		}
	}

	remove := &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a category; its posts keep existing without one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(svc *service.CatalogService) error {
				return svc.DeleteCategory(cmd.Context(), args[0])
			})
		},
	}

	cmd.AddCommand(create, list, toggle("publish", true), toggle("unpublish", false), remove)
	return cmd
}

func newLocationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Manage locations",
	}

	var draft bool
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			published := !draft
			return withCatalog(cmd, func(svc *service.CatalogService) error {
				l, err := svc.CreateLocation(cmd.Context(), service.CreateLocationInput{
					Name:        args[0],
					IsPublished: &published,
				})
				if err != nil {
					return err
				}
				cmd.Printf("created location %d (%s)\n", l.ID, l.Name)
				return nil
			})
		},
	}
	create.Flags().BoolVar(&draft, "unpublished", false, "create the location hidden")

	list := &cobra.Command{
		Use:   "list",
		Short: "List all locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCatalog(cmd, func(svc *service.CatalogService) error {
				locations, err := svc.ListLocations(cmd.Context(), false)
				if err != nil {
					return err
				}
				for _, l := range locations {
					cmd.Printf("%d\t%s\tpublished=%t\n", l.ID, l.Name, l.IsPublished)
				}
				return nil
			})
		},
	}

	toggle := func(use string, published bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: use + " a location",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseLocationID(args[0])
				if err != nil {
					return err
				}
				return withCatalog(cmd, func(svc *service.CatalogService) error {
					return svc.SetLocationPublished(cmd.Context(), id, published)
				})
			},
		}
	}

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a location; its posts keep existing without one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLocationID(args[0])
			if err != nil {
				return err
			}
			return withCatalog(cmd, func(svc *service.CatalogService) error {
				return svc.DeleteLocation(cmd.Context(), id)
			})
		},
	}

	cmd.AddCommand(create, list, toggle("publish", true), toggle("unpublish", false), remove)
	return cmd
}

func parseLocationID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError(fmt.Sprintf("invalid location id %q", raw))
	}
	return uint(id), nil
}
