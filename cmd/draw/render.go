package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/midbel/svgchart/dash"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

type renderOptions struct {
	Output string
	Embed  bool
	Jobs   int
}

func renderCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <definition>...",
		Short: "Render charts described by definition files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := renderOptions{
				Output: v.GetString("output"),
				Embed:  v.GetBool("embed"),
				Jobs:   v.GetInt("jobs"),
			}
			if opts.Output != "" && len(args) > 1 {
				return fmt.Errorf("output can only be set when rendering a single chart")
			}
			return renderAll(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file, - for stdout")
	cmd.Flags().Bool("embed", false, "write charts as img tags with a data URI")
	cmd.Flags().IntP("jobs", "j", defaultJobs, "number of charts rendered concurrently")
	v.BindPFlags(cmd.Flags())
	return cmd
}

func renderAll(ctx context.Context, files []string, opts renderOptions) error {
	g, ctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for _, file := range files {
		g.Go(func() error {
			_, err := renderFile(ctx, file, opts)
			return err
		})
	}
	return g.Wait()
}

// renderFile renders one definition and gives the definition loaded, so
// that callers can find the files it depends on.
func renderFile(ctx context.Context, file string, opts renderOptions) (dash.Definition, error) {
	def, err := dash.Load(file)
	if err != nil {
		return def, err
	}
	def = def.SetLogger(slog.Default().With("file", file))
	if opts.Embed {
		def.Embed = true
	}
	if opts.Output == "-" {
		return def, def.Render(ctx, os.Stdout)
	}
	if err := def.RenderFile(ctx, opts.Output); err != nil {
		return def, fmt.Errorf("%s: %w", file, err)
	}
	out := opts.Output
	if out == "" {
		out = def.OutputPath()
	}
	slog.Info("chart rendered", "file", file, "output", out)
	return def, nil
}

func watchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <definition>...",
		Short: "Render charts again each time their definition or data change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			embed, err := cmd.Flags().GetBool("embed")
			if err != nil {
				return err
			}
			return watch(cmd.Context(), args, renderOptions{Embed: embed})
		},
	}
	cmd.Flags().Bool("embed", false, "write charts as img tags with a data URI")
	return cmd
}

type watchList map[string][]string

func (w watchList) track(file string, def dash.Definition) {
	w.add(file, file)
	if def.Source != nil && def.Source.Path != "" {
		w.add(def.Source.Path, file)
	}
}

func (w watchList) add(path, def string) {
	path = filepath.Clean(path)
	for _, d := range w[path] {
		if d == def {
			return
		}
	}
	w[path] = append(w[path], def)
}

func (w watchList) dirs() []string {
	seen := make(map[string]struct{})
	var list []string
	for p := range w {
		dir := filepath.Dir(p)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		list = append(list, dir)
	}
	return list
}

func watch(ctx context.Context, files []string, opts renderOptions) error {
	watched := make(watchList)
	for _, file := range files {
		def, err := renderFile(ctx, file, opts)
		if err != nil {
			slog.Error("fail to render chart", "file", file, "err", err)
		}
		watched.track(file, def)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// watch directories, not files: files replaced by an editor would be lost
	for _, dir := range watched.dirs() {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		slog.Debug("watching directory", "dir", dir)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			for _, file := range watched[filepath.Clean(event.Name)] {
				def, err := renderFile(ctx, file, opts)
				if err != nil {
					slog.Error("fail to render chart", "file", file, "err", err)
					continue
				}
				watched.track(file, def)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				slog.Warn("events lost while watching", "err", err)
				continue
			}
			slog.Error("error watching files", "err", err)
		}
	}
}
