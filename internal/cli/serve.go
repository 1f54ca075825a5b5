package cli

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rostree/internal/web"
)

type serveOptions struct {
	Addr string
}

func newServeCommand() *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve package listings and dependency trees as a JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(opts)
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "Listen address")
	_ = viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func runServe(opts serveOptions) error {
	addr := opts.Addr
	if configured := viper.GetString("addr"); configured != "" {
		addr = configured
	}

	server := web.NewServer(newAppService())
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info().Str("addr", addr).Msg("serving rostree API")
	return httpServer.ListenAndServe()
}
