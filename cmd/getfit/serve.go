// ABOUTME: CLI command for starting the HTTP dashboard API.
// ABOUTME: Serves JSON views and Prometheus metrics until interrupted.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/harperreed/getfit/internal/config"
	"github.com/harperreed/getfit/internal/logging"
	"github.com/harperreed/getfit/internal/web"
	"github.com/spf13/cobra"
)

var (
	serveAddr      string
	serveAccessLog string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP dashboard API",
	Long: `Serve the dashboard as a JSON API.

ROUTES:

  GET  /api/home                Progress overview
  GET  /api/progress/{user}     One user's daily series
  GET  /api/entries             Recent entries (?user=&limit=)
  POST /api/entries             Submit an entry
  GET  /api/today               Today's entries
  GET  /api/preview/{user}      Height, BMI and water figures (?weight=)
  GET  /api/meal-plan           Weekly meal plan
  PUT  /api/meal-plan/{day}     Edit a day ({"field", "text"} or all slots)
  GET  /api/grocery-prompt      Grocery-list prompt
  GET  /api/workout/{user}      Weekly workout plan
  GET  /metrics                 Prometheus metrics

The address defaults to 127.0.0.1:8501 and can be set with --addr,
GETFIT_HTTP_ADDR, or "http_addr" in the config file.

Access lines in combined log format go to the regular log at info level,
or to a rotated file given with --access-log or "access_log".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetHTTPAddr()
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server, closeAccessLog := newAPIServer(addr)
		defer closeAccessLog()

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "getfit API on http://%s (Ctrl+C to stop)\n", addr)
		return server.ListenAndServe(ctx)
	},
}

// newAPIServer builds the HTTP server, writing access lines to a rotated
// file when one is configured. The returned func closes that file.
func newAPIServer(addr string) (*web.Server, func() error) {
	path := serveAccessLog
	if path == "" {
		path = cfg.AccessLog
	}
	if path == "" {
		return web.NewServer(svc, addr), func() error { return nil }
	}

	w := logging.NewRotatingFile(config.ExpandPath(path))
	return web.NewServer(svc, addr, web.WithAccessLog(w)), w.Close
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default 127.0.0.1:8501)")
	serveCmd.Flags().StringVar(&serveAccessLog, "access-log", "", "write access lines to this rotated file")
	rootCmd.AddCommand(serveCmd)
}
