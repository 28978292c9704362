package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlkit/internal/config"
	"github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/internal/publish"
	"github.com/vango-dev/htmlkit/internal/watch"
	"github.com/vango-dev/htmlkit/pkg/document"
)

func renderCmd() *cobra.Command {
	var (
		out        string
		label      string
		region     string
		configPath string
		watchFiles bool
	)

	cmd := &cobra.Command{
		Use:   "render <file>...",
		Short: "Render element documents",
		Long: `Render YAML or JSON element documents to HTML.

Each file is published to the output target under its base name with
an .html extension. Targets:

  -                  standard output (default)
  dir, file://dir    files below a directory
  s3://bucket/prefix objects in an S3 bucket

Examples:
  htmlkit render page.yaml
  htmlkit render --out dist/ pages/*.yaml
  htmlkit render --watch --out s3://my-bucket/fragments card.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("out") {
				out = cfg.Publish.Target
			}
			if !cmd.Flags().Changed("charset") {
				label = cfg.Input.Charset
			}
			if region == "" {
				region = cfg.Publish.Region
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sink, err := openSink(ctx, cmd, out, region)
			if err != nil {
				return err
			}
			r := &renderer{sink: sink, charset: label}

			for _, file := range args {
				if err := r.render(ctx, file); err != nil {
					if !watchFiles {
						return err
					}
					errors.Fprint(cmd.ErrOrStderr(), err)
				}
			}
			if !watchFiles {
				return nil
			}

			w := watch.New(watch.Config{Files: args})
			w.OnChange(func(c watch.Change) {
				if err := r.render(ctx, c.Path); err != nil {
					errors.Fprint(cmd.ErrOrStderr(), err)
					return
				}
				success(cmd, "Rendered %s", c.Path)
			})
			success(cmd, "Watching %d file(s)", len(args))
			if err := w.Start(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output target: -, a directory, file://dir or s3://bucket/prefix")
	cmd.Flags().StringVar(&label, "charset", config.DefaultCharset, "Charset of input that is not UTF-8")
	cmd.Flags().StringVar(&region, "region", "", "AWS region for s3:// targets")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to htmlkit.json")
	cmd.Flags().BoolVarP(&watchFiles, "watch", "w", false, "Re-render when a file changes")

	return cmd
}

// openSink resolves the output target; "-" writes to the command output.
func openSink(ctx context.Context, cmd *cobra.Command, target, region string) (publish.Sink, error) {
	if target == "" || target == "-" {
		return publish.NewWriter(cmd.OutOrStdout()), nil
	}
	return publish.Open(ctx, target, publish.Options{Region: region})
}

// renderer renders document files into a sink.
type renderer struct {
	sink    publish.Sink
	charset string
}

func (r *renderer) render(ctx context.Context, file string) error {
	doc, err := document.LoadWithCharset(file, r.charset)
	if err != nil {
		return err
	}
	html, err := doc.Render()
	if err != nil {
		return err
	}
	return r.sink.Publish(ctx, publish.HTMLName(file), html)
}
