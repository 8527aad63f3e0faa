package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/midbel/svgchart/dash"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var definitionExts = []string{".yaml", ".yml", ".json", ".toml"}

func serveCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the charts of a directory of definition files over http",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), v.GetString("addr"), v.GetString("dir"))
		},
	}
	cmd.Flags().StringP("dir", "d", ".", "directory with definition files")
	cmd.Flags().StringP("addr", "a", defaultAddr, "listening address")
	v.BindPFlag("dir", cmd.Flags().Lookup("dir"))
	v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func serve(ctx context.Context, addr, dir string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newChartHandler(dir, slog.Default()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	slog.Info("serving charts", "addr", addr, "dir", dir)

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}

type chartHandler struct {
	dir    string
	logger *slog.Logger
}

// newChartHandler renders the definitions found in dir on each request:
// GET /charts lists the charts and GET /charts/{name} renders name.yaml
// (or .yml, .json, .toml). The embed query parameter gives an img tag
// instead of the document.
func newChartHandler(dir string, logger *slog.Logger) http.Handler {
	h := chartHandler{
		dir:    dir,
		logger: logger,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /charts", h.list)
	mux.HandleFunc("GET /charts/{name}", h.render)
	return mux
}

func (h chartHandler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	var names []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || !slices.Contains(definitionExts, ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	slices.Sort(names)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

func (h chartHandler) render(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(r.PathValue("name"), ".svg")
	file, err := h.lookup(name)
	if err != nil {
		h.fail(w, r, http.StatusNotFound, err)
		return
	}
	def, err := dash.Load(file)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	def = def.SetLogger(h.logger.With("file", file))
	def.Embed = r.URL.Query().Has("embed")

	var buf bytes.Buffer
	if err := def.Render(r.Context(), &buf); err != nil {
		h.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	if def.Embed {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.Header().Set("Cache-Control", "no-cache")
	n, _ := buf.WriteTo(w)
	h.logger.Debug("chart served", "name", name, "bytes", n)
}

func (h chartHandler) lookup(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%s: invalid chart name", name)
	}
	for _, ext := range definitionExts {
		file := filepath.Join(h.dir, name+ext)
		if _, err := os.Stat(file); err == nil {
			return file, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("%s: chart not found", name)
}

func (h chartHandler) fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	h.logger.Warn("request failed", "path", r.URL.Path, "code", code, "err", err)
	http.Error(w, err.Error(), code)
}
