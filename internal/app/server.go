package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tush00nka/group_chat/internal/handler"
	"tush00nka/group_chat/internal/pkg/logging"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	router *mux.Router
	logger zerolog.Logger
}

func NewServer(userHandler *handler.UserHandler, chatHandler *handler.ChatHandler, logger zerolog.Logger) *Server {
	router := mux.NewRouter()
	router.Use(logging.HTTPMiddleware(logger))

	router.HandleFunc("/ping", handler.Ping).Methods(http.MethodGet)
	userHandler.RegisterRoutes(router)
	chatHandler.RegisterRoutes(router)

	// doc.json is rendered from docs.SwaggerInfo
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return &Server{router: router, logger: logger}
}

// Handler returns the router wrapped in the CORS policy.
func (s *Server) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID"}),
	)
	return cors(s.router)
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Run(port string) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("port", port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		s.logger.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	s.logger.Info().Msg("server exited")
	return nil
}
