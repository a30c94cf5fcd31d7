package main

import (
	"context"
	"embed"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/danehillard/dhp/cmd/website/internal/backfill"
	"github.com/danehillard/dhp/cmd/website/internal/configuration"
	"github.com/danehillard/dhp/cmd/website/internal/contact"
	"github.com/danehillard/dhp/cmd/website/internal/gallery"
	"github.com/danehillard/dhp/cmd/website/internal/home"
	"github.com/danehillard/dhp/cmd/website/internal/pricing"
	"github.com/danehillard/dhp/pkg/database"
	"github.com/danehillard/dhp/pkg/security"
	"github.com/danehillard/dhp/pkg/services"
	"github.com/danehillard/dhp/pkg/storage"
	"github.com/rfberaldo/sqlz"
)

var (
	Version string = "development"
	appName string = "dhp-website"

	//go:embed app
	appFS embed.FS

	config configuration.Config

	/* Services */
	albumService      services.AlbumServicer
	backfillService   backfill.DerivativeBackfiller
	contactService    services.ContactServicer
	db                *sqlz.DB
	derivativeService services.DerivativeServicer
	objectStore       storage.S3Store
	offeringService   services.OfferingServicer
	photographService services.PhotographServicer
	renderer          rendering.TemplateRenderer
	uploadService     services.UploadServicer

	/* Controllers */
	contactController  contact.ContactHandlers
	galleryController  gallery.GalleryHandlers
	homeController     home.HomeHandlers
	servicesController pricing.ServicesHandlers
)

func main() {
	var (
		err error
	)

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("awsEndpointUrl", config.AwsEndpointUrl),
		slog.String("awsRegion", config.AwsRegion),
	)

	slog.Debug("setting up...")

	shutdownCtx, cancel := context.WithCancel(context.Background())

	/*
	 * Setup services
	 */
	if db, err = database.Connect(config.DSN); err != nil {
		panic(err)
	}

	s3Client, err := storage.ConnectS3(storage.S3Config{
		Endpoint:        config.AwsEndpointUrl,
		Region:          config.AwsRegion,
		AccessKeyID:     config.AwsAccessKeyId,
		SecretAccessKey: config.AwsSecretAccessKey,
	})

	if err != nil {
		panic(err)
	}

	objectStore = storage.NewS3Store(storage.S3StoreConfig{
		Bucket:   config.AwsBucket,
		Region:   config.AwsRegion,
		S3Client: s3Client,
	})

	if err = objectStore.EnsureBucket(); err != nil {
		panic(err)
	}

	renderer, err = rendering.NewGoTemplateRenderer(rendering.GoTemplateRendererConfig{
		TemplateDir:       "app",
		TemplateExtension: ".html",
		TemplateFS:        appFS,
		PagesDir:          "pages",
	})

	if err != nil {
		panic(err)
	}

	albumService = services.NewAlbumService(services.AlbumServiceConfig{
		DB: db,
	})

	offeringService = services.NewOfferingService(services.OfferingServiceConfig{
		DB: db,
	})

	photographService = services.NewPhotographService(services.PhotographServiceConfig{
		DB: db,
	})

	if derivativeService, err = services.NewDerivativeService(services.DerivativeServiceConfig{
		Folder:      config.PhotographFolder,
		ObjectStore: objectStore,
	}); err != nil {
		panic(err)
	}

	uploadService = services.NewUploadService(services.UploadServiceConfig{
		DerivativeService: derivativeService,
		Folder:            config.PhotographFolder,
		ObjectStore:       objectStore,
		PhotographService: photographService,
	})

	contactService = services.NewContactService(services.ContactServiceConfig{
		FromEmail: "noreply@danehillard.com",
		FromName:  "danehillard.com",
		Mailer:    services.NewResendMailer(config.EmailApiKey),
		ToEmail:   config.ContactEmail,
		ToName:    "Dane Hillard",
	})

	backfillService = backfill.NewDerivativeBackfill(backfill.DerivativeBackfillConfig{
		MaxWorkers:        config.MaxBackfillWorkers,
		PhotographService: photographService,
		ShutdownCtx:       shutdownCtx,
		UploadService:     uploadService,
	})

	/*
	 * Setup controllers
	 */
	contactController = contact.NewContactController(contact.ContactControllerConfig{
		ContactService: contactService,
		Renderer:       renderer,
	})

	galleryController = gallery.NewGalleryController(gallery.GalleryControllerConfig{
		AlbumService:      albumService,
		ObjectStore:       objectStore,
		PhotographService: photographService,
		Renderer:          renderer,
	})

	homeController = home.NewHomeController(home.HomeControllerConfig{
		ObjectStore:       objectStore,
		PhotoCount:        config.HomePagePhotoCount,
		PhotographService: photographService,
		Renderer:          renderer,
	})

	servicesController = pricing.NewServicesController(pricing.ServicesControllerConfig{
		OfferingService: offeringService,
		Renderer:        renderer,
	})

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	policy := security.DefaultPolicy.Allow("img-src", imageSource(objectStore))

	pageMiddlewares := []mux.MiddlewareFunc{
		newRequestLoggingMiddleware(),
		security.ContentSecurityPolicy(policy),
	}

	routes := []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat, Middlewares: pageMiddlewares},
		{Path: "GET /{$}", HandlerFunc: homeController.HomePage, Middlewares: pageMiddlewares},
		{Path: "GET /about", HandlerFunc: homeController.AboutPage, Middlewares: pageMiddlewares},
		{Path: "GET /photography", HandlerFunc: galleryController.AlbumListPage, Middlewares: pageMiddlewares},
		{Path: "GET /photography/{uuid}", HandlerFunc: galleryController.ViewAlbumPage, Middlewares: pageMiddlewares},
		{Path: "GET /services", HandlerFunc: servicesController.ServicesPage, Middlewares: pageMiddlewares},
		{Path: "GET /contact", HandlerFunc: contactController.ContactPage, Middlewares: pageMiddlewares},
		{Path: "POST /contact", HandlerFunc: contactController.ContactAction, Middlewares: pageMiddlewares},
	}

	routerConfig := mux.RouterConfig{
		Address:              config.Host,
		Debug:                Version == "development",
		ServeStaticContent:   true,
		StaticContentRootDir: "app",
		StaticContentPrefix:  "/static/",
		StaticFS:             appFS,
		HttpWriteTimeout:     60,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	/*
	 * Start the derivative backfill job
	 */
	setupDerivativeBackfill(shutdownCtx, time.Duration(config.BackfillInterval)*time.Minute)

	/*
	 * Wait for graceful shutdown
	 */
	slog.Info("server started")

	<-quit

	cancel()
	mux.Shutdown(httpServer)
	slog.Info("server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}

/*
imageSource returns the scheme and host derivative URLs are served from,
so the CSP allows them.
*/
func imageSource(store storage.ObjectStorer) string {
	raw, err := store.URL(storage.PhotographPrefix(config.PhotographFolder, "probe"))

	if err != nil {
		slog.Error("error getting storage URL for CSP", "error", err)
		return ""
	}

	u, err := url.Parse(raw)

	if err != nil || u.Host == "" {
		return ""
	}

	return u.Scheme + "://" + u.Host
}

/*
setupDerivativeBackfill runs the backfill now and then on every tick until
ctx is cancelled. The signal channel belongs to main alone.
*/
func setupDerivativeBackfill(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		running := false
		done := make(chan struct{}, 1)

		runner := func() {
			running = true

			go func() {
				backfillService.Run()
				done <- struct{}{}
			}()
		}

		runner()

		for {
			select {
			case <-ctx.Done():
				return

			case <-done:
				running = false

			case <-ticker.C:
				if running {
					slog.Info("derivative backfill already running. skipping...")
					continue
				}

				runner()
			}
		}
	}()
}
