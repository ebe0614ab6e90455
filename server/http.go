package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"voice-memos/config"
	"voice-memos/constant"
	"voice-memos/handler"
	"voice-memos/pkg/blob"
	"voice-memos/repository"
	"voice-memos/service"
	"voice-memos/web"
)

func RunHttp(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().
		Str("env", cfg.App.Environment).
		Str("storage", cfg.Storage.Backend.String()).
		Str("uploads", cfg.Uploads.Backend.String()).
		Send()
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := newRepository(cfg)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to init recording repository")
	}

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to init blob store")
	}

	recordingService := service.NewService(repo, blobs)
	recordingHandler := handler.NewRecordingHandler(recordingService, blobs)

	r := gin.Default()
	r.Use(cors.Default())
	r.Use(requestLogger(ctx))

	addRoutes(r, recordingHandler)
	addHealth(r)
	r.Use(static.Serve("/", web.Static()))

	srv := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("addr", srv.Addr).Msg("start http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Msg(err.Error())
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	if err := srv.Shutdown(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Msg("server shutdown")
}

func addRoutes(r *gin.Engine, h *handler.RecordingHandler) {
	api := r.Group("/api")
	{
		api.GET("/recordings", h.List)
		api.POST("/recordings", h.Create)
		api.DELETE("/recordings/:id", h.Delete)
	}
	r.GET(constant.UploadsURLPrefix+"/:filename", h.ServeAudio)
}

func addHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}

func newRepository(cfg *config.Config) (repository.RecordingRepository, error) {
	if cfg.Storage.Backend == constant.StorageBackendMemory {
		return repository.NewMemoryRepo(), nil
	}
	return repository.NewRepo(cfg.DB)
}

func newBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	if cfg.Uploads.Backend == constant.BlobBackendMinio {
		return blob.NewMinioStore(ctx, cfg.Blobs, cfg.Uploads.Bucket)
	}
	return blob.NewDiskStore(cfg.Uploads.Dir), nil
}

// requestLogger tags every request with an id and puts a request-scoped
// logger on the request context.
func requestLogger(ctx context.Context) gin.HandlerFunc {
	base := zerolog.Ctx(ctx)
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		logger := base.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func setupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Log to standard output
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
