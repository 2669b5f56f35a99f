package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	NewGame(ctx context.Context) (*entity.Snapshot, error)
	GetGame(ctx context.Context, id string) (*entity.Snapshot, error)
	SelectCell(ctx context.Context, id string, cell int) (*entity.Snapshot, bool, error)
	ResetGame(ctx context.Context, id string) (*entity.Snapshot, error)
	EndGame(ctx context.Context, id string) error
}

type Server struct {
	logger *slog.Logger
	games  gameUseCase
}

func New(logger *slog.Logger, games gameUseCase) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

// Router wires the JSON API, the health check and the browser page.
func (that *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(recovery(that.logger))
	router.Use(logging(that.logger))

	router.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/games", that.handleNewGame).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", that.handleGetGame).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", that.handleEndGame).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/cells/{cell}", that.handleSelectCell).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/reset", that.handleResetGame).Methods(http.MethodPost)

	router.PathPrefix("/").Handler(pageHandler()).Methods(http.MethodGet)

	return router
}

// Start serves HTTP on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
