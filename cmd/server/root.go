package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiliankoe/rajamantri/internal/api"
	"github.com/kiliankoe/rajamantri/internal/config"
	"github.com/kiliankoe/rajamantri/internal/game"
	"github.com/kiliankoe/rajamantri/internal/ws"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const timeout = 10 * time.Second

func newCmd() *cobra.Command {
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:   "rajamantri",
		Short: "Raja Mantri Chor Sipahi - rooms, roles and a leaderboard over HTTP",
		Long: `Raja Mantri Chor Sipahi party game server.

Every flag can also be set through the environment (PORT, EXPORT_FILE, ...)
or a .env file in the working directory.

Visit http://localhost:8080/health after starting the server.`,
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), *cfg)
		},
	}

	if err := config.LoadDotenv(".env"); err != nil {
		log.Warn().Err(err).Msg("could not load .env")
	}

	fs := cmd.Flags()
	config.RegisterFlags(fs, cfg)
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		config.BindEnv(cmd.Flags(), viper.New())
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("rajamantri {{.Version}}\n")

	return cmd
}

func setupLogging(verbose bool) {
	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(cw)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	setupLogging(cfg.Verbose)
	gin.SetMode(gin.ReleaseMode)

	rm := game.NewRoomManager()
	h := api.New(rm, cfg, version)
	r := h.Router()

	if cfg.SocketIOEnabled {
		sock := ws.New(rm, cfg)
		sock.OnResult(h.Export)
		io := sock.Mount(r)
		defer io.Close()
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Bind, strconv.Itoa(cfg.Port)),
		Handler:           r,
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      timeout,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
