package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/stockfacil/kiosco-pos/internal/application/auth"
	"github.com/stockfacil/kiosco-pos/internal/application/cash"
	"github.com/stockfacil/kiosco-pos/internal/application/catalog"
	"github.com/stockfacil/kiosco-pos/internal/application/registration"
	"github.com/stockfacil/kiosco-pos/internal/application/sales"
	syncbridge "github.com/stockfacil/kiosco-pos/internal/application/sync"
	"github.com/stockfacil/kiosco-pos/internal/infrastructure/identity"
	"github.com/stockfacil/kiosco-pos/internal/infrastructure/mirror"
	infrapdf "github.com/stockfacil/kiosco-pos/internal/infrastructure/pdf"
	"github.com/stockfacil/kiosco-pos/internal/infrastructure/postgres"
	"github.com/stockfacil/kiosco-pos/internal/infrastructure/redisdedup"
	httpRouter "github.com/stockfacil/kiosco-pos/internal/interfaces/http"
	"github.com/stockfacil/kiosco-pos/pkg/config"
	"github.com/stockfacil/kiosco-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("huso horario inválido")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	closureRepo := postgres.NewClosureRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	loginEventRepo := postgres.NewLoginEventRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Espejo compartido (MongoDB): opcional, el flujo local no depende de él.
	var mirrorStore syncbridge.Store
	var claimsIssuer registration.ClaimsIssuer
	if cfg.Mirror.Enabled() {
		client, db, err := mirror.Connect(ctx, mirror.Config{
			URI:      cfg.Mirror.URI,
			Database: cfg.Mirror.Database,
		})
		if err != nil {
			log.Warn().Err(err).Msg("espejo compartido no disponible, se continúa sin réplica")
		} else {
			defer func() { _ = client.Disconnect(context.Background()) }()
			mirrorStore = mirror.NewMongoStore(db)
			claimsIssuer = mirror.NewStoredClaimsIssuer(db)
		}
	}
	bridge := syncbridge.NewBridge(mirrorStore, log.Component("sync"))
	bridge.Start(ctx)

	// Dedup de réplicas de cierre (Redis): también opcional.
	var deduper cash.Deduper
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()
		deduper = redisdedup.NewDeduper(rdb)
	}

	authUC := auth.NewAuthUseCase(profileRepo, tenantRepo, loginEventRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, bridge, log.Component("auth"))
	catalogUC := catalog.NewCatalogUseCase(productRepo, txRunner, bridge)
	commitSaleUC := sales.NewCommitSaleUseCase(txRunner, bridge)
	cashUC := cash.NewCashUseCase(
		saleRepo, closureRepo, txRunner, bridge, deduper,
		infrapdf.NewMarotoReportGenerator(), loc, log.Component("cash"),
	)
	registrationUC := registration.NewRegistrationUseCase(
		profileRepo, employeeRepo, planRepo, txRunner,
		identity.NewJWTVerifier(cfg.JWT.Secret), claimsIssuer, bridge,
		log.Component("registration"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockFacil Kiosco API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CatalogUC:      catalogUC,
		CommitSaleUC:   commitSaleUC,
		CashUC:         cashUC,
		RegistrationUC: registrationUC,
		JWTSecret:      cfg.JWT.Secret,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("API escuchando")

	<-ctx.Done()
	log.Info().Msg("apagando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
}
