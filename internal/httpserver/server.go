package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"gamevault/backend/internal/config"
	"gamevault/backend/internal/metrics"
	authusecase "gamevault/backend/internal/usecase/auth"
	gameusecase "gamevault/backend/internal/usecase/game"
	libraryusecase "gamevault/backend/internal/usecase/library"
	roleusecase "gamevault/backend/internal/usecase/role"
	userusecase "gamevault/backend/internal/usecase/user"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer     *http.Server
	router         *mux.Router
	logger         *zap.Logger
	httpMetrics    *metrics.HTTP
	authService    *authusecase.Service
	userService    *userusecase.Service
	roleService    *roleusecase.Service
	gameService    *gameusecase.Service
	libraryService *libraryusecase.Service
	allowedOrigins []string
	addr           string
}

// Services bundles the application services the server fronts.
type Services struct {
	Auth    *authusecase.Service
	User    *userusecase.Service
	Role    *roleusecase.Service
	Game    *gameusecase.Service
	Library *libraryusecase.Service
}

// NewServer constructs a new Server with configured dependencies.
func NewServer(cfg config.Config, logger *zap.Logger, httpMetrics *metrics.HTTP, services Services) *Server {
	router := mux.NewRouter()
	addr := cfg.HTTPPort
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	srv := &Server{
		router:         router,
		logger:         logger,
		httpMetrics:    httpMetrics,
		authService:    services.Auth,
		userService:    services.User,
		roleService:    services.Role,
		gameService:    services.Game,
		libraryService: services.Library,
		allowedOrigins: cfg.AllowedOrigins,
		addr:           addr,
	}

	router.Use(srv.withMetrics)
	handler := srv.withRequestID(srv.withLogging(withCORS(router, cfg.AllowedOrigins)))

	srv.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
	}
	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.router.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	s.router.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	s.router.Handle("/auth/me", s.protect(s.handleCurrentUser)).Methods(http.MethodGet)

	s.router.HandleFunc("/users/register", s.handleRegister).Methods(http.MethodPost)
	s.router.Handle("/users/change-password", s.protect(s.handleChangePassword)).Methods(http.MethodPost)
	s.router.Handle("/users", s.protectAdmin(s.handleListUsers)).Methods(http.MethodGet)
	s.router.Handle("/users", s.protectAdmin(s.handleCreateUser)).Methods(http.MethodPost)
	s.router.Handle("/users/{id:[0-9]+}", s.protectAdmin(s.handleGetUser)).Methods(http.MethodGet)
	s.router.Handle("/users/{id:[0-9]+}", s.protectAdmin(s.handleUpdateUser)).Methods(http.MethodPut, http.MethodPatch)
	s.router.Handle("/users/{id:[0-9]+}", s.protectAdmin(s.handleDeleteUser)).Methods(http.MethodDelete)

	s.router.Handle("/roles", s.protectAdmin(s.handleListRoles)).Methods(http.MethodGet)
	s.router.Handle("/roles", s.protectAdmin(s.handleCreateRole)).Methods(http.MethodPost)
	s.router.Handle("/roles/{id:[0-9]+}", s.protectAdmin(s.handleGetRole)).Methods(http.MethodGet)
	s.router.Handle("/roles/{id:[0-9]+}", s.protectAdmin(s.handleUpdateRole)).Methods(http.MethodPut, http.MethodPatch)
	s.router.Handle("/roles/{id:[0-9]+}", s.protectAdmin(s.handleDeleteRole)).Methods(http.MethodDelete)

	s.router.Handle("/games", s.protect(s.handleListGames)).Methods(http.MethodGet)
	s.router.Handle("/games/on-sale", s.protect(s.handleListGamesOnSale)).Methods(http.MethodGet)
	s.router.Handle("/games/{id:[0-9]+}", s.protect(s.handleGetGame)).Methods(http.MethodGet)
	s.router.Handle("/games", s.protectAdmin(s.handleCreateGame)).Methods(http.MethodPost)
	s.router.Handle("/games/{id:[0-9]+}", s.protectAdmin(s.handleUpdateGame)).Methods(http.MethodPut, http.MethodPatch)
	s.router.Handle("/games/{id:[0-9]+}", s.protectAdmin(s.handleDeleteGame)).Methods(http.MethodDelete)
	s.router.Handle("/games/{id:[0-9]+}/discount", s.protectAdmin(s.handleApplyDiscount)).Methods(http.MethodPatch)
	s.router.Handle("/games/{id:[0-9]+}/sale-status", s.protectAdmin(s.handleUpdateSaleStatus)).Methods(http.MethodPatch)

	s.router.Handle("/library", s.protectAdmin(s.handleListLibraries)).Methods(http.MethodGet)
	s.router.Handle("/library", s.protect(s.handleAddToLibrary)).Methods(http.MethodPost)
	s.router.Handle("/library", s.protectAdmin(s.handleMoveLibraryEntry)).Methods(http.MethodPut)
	s.router.Handle("/library/user/{userId:[0-9]+}", s.protect(s.handleUserLibrary)).Methods(http.MethodGet)
	s.router.Handle("/library/game/{gameId:[0-9]+}", s.protectAdmin(s.handleGameOwners)).Methods(http.MethodGet)
	s.router.Handle("/library/{userId:[0-9]+}/{gameId:[0-9]+}", s.protect(s.handleGetLibraryEntry)).Methods(http.MethodGet)
	s.router.Handle("/library/{userId:[0-9]+}/{gameId:[0-9]+}", s.protect(s.handleRemoveFromLibrary)).Methods(http.MethodDelete)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start bootstraps the HTTP server on the configured address.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}
