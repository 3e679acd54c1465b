package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the preview server command
func newRootCommand() *cobra.Command {
	var (
		port       int
		staticDir  string
		textureDir string
	)

	cmd := &cobra.Command{
		Use:          "pathtracer-web",
		Short:        "Serve progressive path traced previews of the built-in scenes",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := renderer.NewWriterLogger(cmd.OutOrStdout())
			logger.Printf("Path Tracer Web Server\n")
			logger.Printf("Visit http://localhost:%d to start rendering\n", port)
			return server.NewServer(port, staticDir, textureDir, logger).Start(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to serve on")
	cmd.Flags().StringVar(&staticDir, "static", "", "Directory of static files served at / (empty serves only the API)")
	cmd.Flags().StringVar(&textureDir, "texture-dir", ".", "Directory containing image textures")

	return cmd
}
