package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philly/medium-blog/internal/server"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "blog",
		Short:        "Server-rendered blog backed by a hosted content store",
		SilenceUsage: true,
		Version:      server.Version,
	}

	root.AddCommand(
		newServeCmd(),
		newPathsCmd(),
		newExportCmd(),
		newSeedCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Prerender the posts and serve the site",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := server.InitializeApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer cleanup()

			return app.Run(cmd.Context())
		},
	}
}

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List the post slugs a build would render",
		RunE: func(cmd *cobra.Command, _ []string) error {
			exporter, cleanup, err := server.InitializeExporter(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			slugs, err := exporter.Paths(cmd.Context())
			if err != nil {
				return err
			}
			for _, slug := range slugs {
				fmt.Fprintf(cmd.OutOrStdout(), "/post/%s\n", slug)
			}
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the whole site into a directory of static files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			exporter, cleanup, err := server.InitializeExporter(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			written, err := exporter.Export(cmd.Context(), dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pages to %s\n", written, dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "out", "o", "out", "output directory")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo content into the postgres content store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return server.SeedDemoContent(cmd.Context())
		},
	}
}
