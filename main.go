package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gearguard-backend/controller"
	"gearguard-backend/dal"
	"gearguard-backend/middelware"
	"gearguard-backend/models"
	"gearguard-backend/repository"
	"gearguard-backend/services"
	"gearguard-backend/utils"
	"gearguard-backend/utils/logger"
	"gearguard-backend/worker"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 15 * time.Second

var flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "",
		Usage:   "path to a config file (defaults to config.json in . or ./configs)",
		EnvVars: []string{"GEARGUARD_CONFIG"},
	},
}

// @title GearGuard Backend API
// @version 1.0.0
// @description Maintenance tracking API: equipment, maintenance requests, teams and the technician directory.
// @description
// @description ## Authentication
// @description 1. Call **POST /auth/login** (or use the login box above) to obtain an access token.
// @description 2. Send it as `Authorization: Bearer <token>`; the role in the token decides what you may do.
// @description 3. Without a token, the `X-User-Role` header is used as the caller role.

// @contact.name GearGuard Team
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Enter 'Bearer' [space] and then your token.
func main() {
	app := &cli.App{
		Name:  "gearguard",
		Usage: "GearGuard maintenance tracking backend",
		Flags: flags,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and the maintenance sweep worker",
				Action: serve,
			},
			{
				Name:  "setup",
				Usage: "create tables and indexes, then seed empty tables",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "seed",
						Usage: "seed file (defaults to seed_file from config)",
					},
					&cli.BoolFlag{
						Name:  "no-seed",
						Usage: "only create tables and indexes",
					},
				},
				Action: setup,
			},
			{
				Name:   "sweep",
				Usage:  "run one maintenance sweep and print the result with the worker totals",
				Action: sweep,
			},
		},
		// no subcommand behaves like serve
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// runtime holds what every command needs
type runtime struct {
	config *models.Config
	logger logger.Logger
	dal    *dal.DALContainer
	repos  *repository.RepositoryContainer
}

func bootstrap(cCtx *cli.Context) (*runtime, error) {
	config, err := utils.LoadFrom(cCtx.String("config"))
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.Infof("Starting %s %s (%s) with %s store", config.AppName, config.AppVersion, config.AppEnv, config.StoreDriver)

	connectCtx, cancel := context.WithTimeout(cCtx.Context, 30*time.Second)
	defer cancel()

	dalContainer, err := dal.NewDALContainer(connectCtx, config, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", config.StoreDriver, err)
	}

	return &runtime{
		config: config,
		logger: appLogger,
		dal:    dalContainer,
		repos:  repository.NewRepositoryContainer(dalContainer.GetDatabaseClient(), config, appLogger),
	}, nil
}

func (rt *runtime) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rt.dal.Close(ctx); err != nil {
		rt.logger.Warnf("Failed to close store connection: %v", err)
	}
}

func serve(cCtx *cli.Context) error {
	rt, err := bootstrap(cCtx)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if rt.config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	jwtManager := middelware.NewJWTManager(rt.config, rt.logger)
	svc := services.NewService(rt.repos, jwtManager, services.NewLogResetNotifier(rt.logger), rt.logger, rt.config)

	limiter := middelware.NewRateLimiter(rt.config.RateLimitRequestsPerMinute)
	go limiter.RunCleanup(ctx)

	logging := middelware.NewLoggingMiddleware(rt.logger)
	r := gin.New()
	r.Use(logging.Recovery(), logging.StructuredLogger())
	r.Use(middelware.NewCORSMiddleware(rt.config).CORS())

	c := controller.NewController(rt.config, svc, jwtManager, limiter, rt.logger)

	if rt.config.SweepEnabled {
		sweepWorker, err := worker.NewWorker(rt.config, rt.logger, worker.NewSweeper(rt.repos, rt.logger))
		if err != nil {
			return fmt.Errorf("failed to create maintenance worker: %w", err)
		}
		if err := sweepWorker.Start(); err != nil {
			return fmt.Errorf("failed to start maintenance worker: %w", err)
		}
		defer sweepWorker.Stop()
		c.SetSweepReporter(sweepWorker)
	}

	c.RegisterRoutes(r, rt.config.BasePath)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", rt.config.AppHost, rt.config.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Infof("Listening on %s (base path %s)", srv.Addr, rt.config.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	rt.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func setup(cCtx *cli.Context) error {
	rt, err := bootstrap(cCtx)
	if err != nil {
		return err
	}
	defer rt.close()

	seedPath := rt.config.SeedFile
	if cCtx.IsSet("seed") {
		seedPath = cCtx.String("seed")
	}
	if cCtx.Bool("no-seed") {
		seedPath = ""
	}

	result, err := worker.NewSetup(rt.dal.GetDatabaseClient(), rt.repos, rt.config, rt.logger).Run(cCtx.Context, seedPath)
	if err != nil {
		return err
	}
	fmt.Println(utils.PrintPrettyJSON(result))
	return nil
}

func sweep(cCtx *cli.Context) error {
	rt, err := bootstrap(cCtx)
	if err != nil {
		return err
	}
	defer rt.close()

	sweepWorker, err := worker.NewWorker(rt.config, rt.logger, worker.NewSweeper(rt.repos, rt.logger))
	if err != nil {
		return err
	}
	defer sweepWorker.Stop()

	_, err = sweepWorker.RunOnce(cCtx.Context)
	fmt.Println(utils.PrintPrettyJSON(sweepWorker.Status()))
	return err
}
