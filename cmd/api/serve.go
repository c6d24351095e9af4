package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/config"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/controller"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/handler"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/middleware"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/database"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/email"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/jwt"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/media"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/oauth"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/payment"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/storage"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/tasks"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/utils"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const shutdownGrace = 15 * time.Second

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := migrate(db, cfg, log); err != nil {
		return err
	}

	store, local, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}
	mailer, err := newMailer(cfg, log)
	if err != nil {
		return err
	}
	gateway, err := newGateway(cfg)
	if err != nil {
		return err
	}
	runner := tasks.NewRunner(log)

	accounts := repository.NewAccountRepository(db)
	otps := repository.NewOTPRepository(db)
	membershipPlans := repository.NewMembershipPlanRepository(db)
	sponsorshipPlans := repository.NewSponsorshipPlanRepository(db)
	sponsors := repository.NewSponsorRepository(db)
	payments := repository.NewPaymentRepository(db)
	donations := repository.NewDonationRepository(db)
	events := repository.NewEventRepository(db)
	galleries := repository.NewGalleryRepository(db)
	board := repository.NewBoardMemberRepository(db)
	highlights := repository.NewHighlightRepository(db)
	news := repository.NewNewsRepository(db)
	tx := repository.NewTransactor(db)

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	files := service.NewFileCleaner(store, runner, log)
	validate := utils.NewValidator()

	accountService := service.NewAccountService(service.AccountDeps{
		Accounts:  accounts,
		OTPs:      otps,
		Tokens:    tokens,
		Mailer:    mailer,
		Google:    oauth.NewGoogleVerifier(cfg.OAuth.GoogleClientID),
		Facebook:  oauth.NewFacebookVerifier(cfg.OAuth.FacebookGraphURL),
		Validator: validate,
		Logger:    log,
	})
	memberService := service.NewMemberService(service.MemberDeps{
		Accounts: accounts,
		Plans:    membershipPlans,
		Payments: payments,
		Tx:       tx,
		Mailer:   mailer,
		Runner:   runner,
		Logger:   log,
	})
	importService := service.NewImportService(memberService, log)
	planService := service.NewPlanService(membershipPlans, sponsorshipPlans)
	sponsorService := service.NewSponsorService(sponsors, sponsorshipPlans, files, validate)
	newsService := service.NewNewsService(news)
	contentService := service.NewContentService(service.ContentDeps{
		Events:     events,
		Galleries:  galleries,
		Board:      board,
		Highlights: highlights,
		Files:      files,
	})
	dashboardService := service.NewDashboardService(service.DashboardDeps{
		Members:    accounts,
		Events:     events,
		Sponsors:   sponsors,
		News:       news,
		Highlights: highlights,
	})
	paymentService := service.NewPaymentService(service.PaymentDeps{
		Accounts:    accounts,
		Plans:       membershipPlans,
		Payments:    payments,
		Gateway:     gateway,
		Tx:          tx,
		FrontendURL: cfg.FrontendURL,
		Logger:      log,
	})
	donationService := service.NewDonationService(service.DonationDeps{
		Donations:   donations,
		Gateway:     gateway,
		Mailer:      mailer,
		Runner:      runner,
		FrontendURL: cfg.FrontendURL,
		Logger:      log,
	})

	h := handlers{
		auth:    handler.NewAuthHandler(accountService),
		members: handler.NewMemberHandler(memberService, importService),
		events: handler.NewEventHandler(contentService, controller.NewContent[models.Event, *models.Event](controller.Config[models.Event]{
			Store:    events,
			Shape:    media.Single,
			Files:    files,
			Messages: controller.Messages{NotFound: "Event not found", Empty: "No Event documents found", ImageNotFound: "Image not found"},
		})),
		galleries: handler.NewGalleryHandler(contentService, controller.NewContent[models.Gallery, *models.Gallery](controller.Config[models.Gallery]{
			Store:    galleries,
			Shape:    media.List,
			Files:    files,
			Messages: controller.Messages{NotFound: "Gallery not found", ImageNotFound: "Image not found in gallery", MediaRequired: "At least one media file is required"},
		})),
		board: handler.NewBoardHandler(contentService, controller.NewContent[models.BoardMember, *models.BoardMember](controller.Config[models.BoardMember]{
			Store:    board,
			Shape:    media.Single,
			Files:    files,
			Messages: controller.Messages{NotFound: "Board member not found", ImageNotFound: "Image not found"},
		})),
		highlights: handler.NewHighlightHandler(contentService, controller.NewContent[models.HomepageHighlight, *models.HomepageHighlight](controller.Config[models.HomepageHighlight]{
			Store:    highlights,
			Shape:    media.Single,
			Files:    files,
			Messages: controller.Messages{NotFound: "Highlight not found", ImageNotFound: "Image not found"},
		})),
		membershipPlans:  handler.NewMembershipPlanHandler(planService),
		sponsorshipPlans: handler.NewSponsorshipPlanHandler(planService),
		sponsors:         handler.NewSponsorHandler(sponsorService, files),
		news:             handler.NewNewsHandler(newsService),
		dashboard:        handler.NewDashboardHandler(dashboardService),
		payments:         handler.NewPaymentHandler(paymentService, cfg.Stripe.WebhookSecret, log),
		donations:        handler.NewDonationHandler(donationService),
	}

	app := newApp(cfg, log)
	if local != nil {
		app.Static("/uploads", local.Dir())
	}
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	registerRoutes(app, h, guards{
		auth:    middleware.Auth(tokens, accounts, log),
		uploads: middleware.Uploads(store, int64(cfg.Storage.MaxBytes), log),
	})
	app.Use(middleware.NotFound)

	errc := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		errc <- app.Listen(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if err := runner.Shutdown(shutdownCtx); err != nil {
		log.Warn("background tasks did not drain", zap.Error(err))
	}
	return nil
}

func newApp(cfg *config.Config, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "telugu-association",
		ErrorHandler: middleware.ErrorHandler(log, cfg.IsDevelopment()),
		// Room for several media files in one request; each is checked by the uploads middleware.
		BodyLimit: 4 * cfg.Storage.MaxBytes,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.IsDevelopment()}))
	app.Use(requestid.New())
	app.Use(middleware.Context())
	app.Use(middleware.Logger(log))
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE",
		AllowCredentials: cfg.CORSOrigins != "*",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		// Gateways retry webhooks on 429.
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/payment/v1/webhook")
		},
		LimitReached: middleware.LimitReached,
	}))
	return app
}

// newStorage picks the upload backend. The local store is returned
// separately so its directory can be served.
func newStorage(ctx context.Context, cfg *config.Config) (storage.StorageService, *storage.LocalStorage, error) {
	switch cfg.Storage.Driver {
	case "s3":
		s3, err := storage.NewS3Storage(ctx, storage.S3Options{
			Endpoint:        cfg.Storage.S3.Endpoint,
			Region:          cfg.Storage.S3.Region,
			Bucket:          cfg.Storage.S3.Bucket,
			AccessKeyID:     cfg.Storage.S3.AccessKeyID,
			SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
			PublicURL:       cfg.Storage.S3.PublicURL,
		})
		return s3, nil, err
	case "azure":
		az, err := storage.NewAzureStorage(storage.AzureOptions{
			AccountName: cfg.Storage.Azure.AccountName,
			AccountKey:  cfg.Storage.Azure.AccountKey,
			Container:   cfg.Storage.Azure.Container,
		})
		return az, nil, err
	default:
		local, err := storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.PublicURL)
		if err != nil {
			return nil, nil, err
		}
		return local, local, nil
	}
}

func newMailer(cfg *config.Config, log *zap.Logger) (*email.EmailService, error) {
	var sender email.Sender
	switch cfg.Email.Provider {
	case "resend":
		sender = email.NewResendSender(cfg.Email.ResendAPIKey)
	default:
		sender = email.NewSMTPSender(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPUsername, cfg.Email.SMTPPassword, cfg.Email.FromAddress)
	}
	return email.NewEmailService(sender, cfg.Email.FromName, cfg.Email.FromAddress, log)
}

func newGateway(cfg *config.Config) (payment.Gateway, error) {
	switch cfg.PaymentGateway {
	case "stripe":
		return payment.NewStripeGateway(cfg.Stripe.SecretKey), nil
	case "paypal", "":
		return payment.NewPayPalGateway(cfg.PayPal.ClientID, cfg.PayPal.ClientSecret, cfg.PayPal.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported PAYMENT_GATEWAY %q", cfg.PaymentGateway)
	}
}
