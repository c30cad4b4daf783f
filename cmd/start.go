package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-sync/core/loader"
	"catalog-sync/core/logger"
	"catalog-sync/core/middleware/auth"
	"catalog-sync/core/middleware/rayid"
	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/folder"
	"catalog-sync/feature/integrity"
	"catalog-sync/feature/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "catalog-sync/docs/swagger"
)

var startSource string

// @title Catalog Sync API
// @version 1.0
// @description API for reconciling the product catalog page with its source.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration, Logger, Parser and Store
		e, err := loadEnv()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := e.log
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := e.cfg.Server.Validate(); err != nil {
			logg.Fatal("Invalid server configuration", zap.Error(err))
		}

		// 2. Connect to Database (Optional)
		var db *gorm.DB
		if e.cfg.Database.Enabled {
			conn, closeDB, err := e.connectDB()
			if err != nil {
				logg.Warn("Optional database connection failed", zap.Error(err))
			} else {
				defer closeDB()
				db = conn
				logg.Info("Connected to inventory database", zap.String("table", e.cfg.Database.Table))
			}
		}

		// 3. Default source for plan/apply without an upload
		var src reconcile.Source
		switch startSource {
		case sourceFolder:
			src = folder.NewSource(e.cfg.Images.Dir, e.cfg.Images.Recursive, logger.Named(logg, "folder"))
		case sourceDB:
			if db != nil {
				src = inventory.NewSource(db, e.profile(), logger.Named(logg, "inventory"))
			} else {
				logg.Warn("Database source selected but no database is connected; uploads only")
			}
		default:
			src, _, _ = buildSource(e, sourceExcel, "")
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             e.cfg.Server.BodyLimit(),
			ReadTimeout:           time.Duration(e.cfg.Server.ReadTimeoutSeconds) * time.Second,
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager(logg)

		// Register Features
		settings := e.catalogService("").Settings()
		mgr.Register(catalog.NewFeature(catalog.NewService(e.store, e.parser, src, settings, logger.Named(logg, "catalog"))))
		mgr.Register(integrity.NewFeature(integrity.Config{
			Store:    e.store,
			Parser:   e.parser,
			Document: settings.Document,
			Client:   e.client,
			Bucket:   e.cfg.Storage.Bucket,
			Prefix:   e.cfg.Storage.Prefix,
			DB:       db,
			Profile:  e.profile(),
		}, logger.Named(logg, "integrity")))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: e.cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", e.cfg.Server.Port),
				zap.String("document", settings.Document),
				zap.Bool("object_storage", e.cfg.Storage.Enabled))
			if err := app.Listen(e.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	startCmd.Flags().StringVar(&startSource, "source", sourceExcel, "Default source for plan/apply: excel, folder or db")
	RootCmd.AddCommand(startCmd)
}
