package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/fitnutri/internal/api"
	"github.com/terraincognita07/fitnutri/internal/config"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(env *commandEnv) *cobra.Command {
	var allowOrigins []string

	command := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runtime, err := env.bootstrap(ctx)
			if err != nil {
				return err
			}
			defer runtime.Close()

			config.Watch(env.viper, runtime.Logger, runtime.ApplyConfig)
			return serve(ctx, runtime, allowOrigins)
		},
	}
	command.Flags().String("port", "", "listen port")
	command.Flags().StringSliceVar(&allowOrigins, "allow-origin", nil, "CORS origins allowed to call the API (default any)")
	return command
}

func serve(ctx context.Context, runtime *Runtime, allowOrigins []string) error {
	handler, err := api.NewHandler(api.Dependencies{
		Store:      runtime.Store,
		Generation: runtime.Generation,
		Plans:      runtime.Plans,
		Transfer:   runtime.Transfer,
		Providers:  runtime.Router,
		Exercises:  runtime.Exercises,
		I18n:       runtime.I18n,
		Logger:     runtime.Logger,
	})
	if err != nil {
		return err
	}
	app := api.NewApp(handler, api.AppOptions{Logger: runtime.Logger, AllowOrigins: allowOrigins})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			runtime.Logger.Error("server shutdown failed", "error", err)
		}
	}()

	storage := runtime.Config.DBPath
	if runtime.Config.Memory {
		storage = "memory"
	}
	runtime.Logger.Info("listening",
		"addr", "http://0.0.0.0:"+runtime.Config.Port,
		"storage", storage,
		"provider", runtime.Router.Active(),
		"tz", time.Local.String(),
	)
	return app.Listen(":" + runtime.Config.Port)
}
