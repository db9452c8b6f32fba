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

	"github.com/monicajeon28/gmcruise-api/internal/application/auth"
	"github.com/monicajeon28/gmcruise-api/internal/application/commerce"
	"github.com/monicajeon28/gmcruise-api/internal/application/lead"
	"github.com/monicajeon28/gmcruise-api/internal/application/partner"
	"github.com/monicajeon28/gmcruise-api/internal/application/settlement"
	"github.com/monicajeon28/gmcruise-api/internal/domain/commission"
	"github.com/monicajeon28/gmcruise-api/internal/infrastructure/cache"
	"github.com/monicajeon28/gmcruise-api/internal/infrastructure/postgres"
	httpRouter "github.com/monicajeon28/gmcruise-api/internal/interfaces/http"
	"github.com/monicajeon28/gmcruise-api/pkg/config"
	"github.com/monicajeon28/gmcruise-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	saleRepo := postgres.NewSaleRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	settlementRepo := postgres.NewSettlementRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	linkRepo := postgres.NewLinkRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Summary cache is optional: when Redis is unreachable the service runs
	// against PostgreSQL alone.
	var summaryCache settlement.SummaryCache
	if redisCache, err := cache.New(cfg.Redis, log); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, settlement summaries uncached")
	} else {
		summaryCache = redisCache
		defer redisCache.Close()
	}

	rates := commission.Rates{
		Branch:       cfg.Commission.BranchRate,
		Agent:        cfg.Commission.AgentRate,
		BranchDirect: cfg.Commission.BranchDirect,
		Withholding:  cfg.Commission.WithholdingRate,
	}

	saleUC := commerce.NewConfirmSaleUseCase(txRunner, saleRepo, ledgerRepo, profileRepo, rates)
	webhookUC := commerce.NewWebhookUseCase(txRunner, saleRepo, leadRepo, linkRepo, profileRepo)
	settlementUC := settlement.NewUseCase(txRunner, settlementRepo, ledgerRepo, profileRepo, summaryCache)
	leadUC := lead.NewUseCase(leadRepo, linkRepo, profileRepo)
	partnerUC := partner.NewUseCase(userRepo, profileRepo, linkRepo, txRunner)
	authUC := auth.NewUseCase(userRepo, profileRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GMcruise API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		WebhookUC:    webhookUC,
		SaleUC:       saleUC,
		SettlementUC: settlementUC,
		LeadUC:       leadUC,
		PartnerUC:    partnerUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
