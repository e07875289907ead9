// Package mockapi is a self-contained implementation of the Ledgerline
// REST contract, backed by in-memory state. It serves local development
// (cmd/mockapi) and the client integration tests; it is not the production
// backend.
package mockapi

import (
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

var (
	errEmailTaken     = errors.New("email already registered")
	errBadCredentials = errors.New("invalid email or password")
)

// errorResponse is the backend's error body shape.
type errorResponse struct {
	Error string `json:"error"`
}

// Server implements the REST contract over in-memory state.
type Server struct {
	echo   *echo.Echo
	state  *state
	logger zerolog.Logger

	// failSpendReset makes resetBudgetSpending return 500, for exercising
	// the client's partial-failure path.
	failSpendReset atomic.Bool
}

// New creates a Server with empty state.
func New(logger zerolog.Logger) *Server {
	s := &Server{
		echo:   echo.New(),
		state:  newState(),
		logger: logger,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(echomiddleware.RequestID())
	s.echo.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	s.echo.Use(echomiddleware.Recover())

	s.routes()
	return s
}

// Handler exposes the server as an http.Handler for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on the given address until Shutdown.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Echo returns the underlying echo instance for shutdown wiring.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// SetFailSpendReset toggles failure injection on the spend reset endpoint.
func (s *Server) SetFailSpendReset(fail bool) {
	s.failSpendReset.Store(fail)
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/register", s.handleRegister)
	api.GET("/auth/me", s.handleMe, s.requireAuth)

	api.GET("/categories/getCategories", s.handleListCategories, s.requireAuth)
	api.POST("/categories/createCategory", s.handleCreateCategory, s.requireAuth)
	api.DELETE("/categories/deleteCategory/:id", s.handleDeleteCategory, s.requireAuth)

	api.GET("/budgets/getBudgetsForUser/:userId", s.handleListBudgets, s.requireAuth)
	api.POST("/budgets/createBudget/:userId", s.handleCreateBudget, s.requireAuth)
	api.PUT("/budgets/editBudget/:budgetId/:userId", s.handleUpdateBudget, s.requireAuth)
	api.DELETE("/budgets/deleteBudget/:budgetId/:userId", s.handleDeleteBudget, s.requireAuth)
	api.POST("/budgets/resetBudgetSpending/:userId", s.handleResetBudgetSpending, s.requireAuth)

	api.GET("/transactions/getTransactionsForUser/:userId", s.handleListTransactions, s.requireAuth)
	api.POST("/transactions/createTransaction", s.handleCreateTransaction, s.requireAuth)
	api.PUT("/transactions/editTransaction/:id", s.handleUpdateTransaction, s.requireAuth)
	api.DELETE("/transactions/deleteTransaction/:id", s.handleDeleteTransaction, s.requireAuth)
	api.DELETE("/transactions/resetTransactions/:userId", s.handleResetTransactions, s.requireAuth)

	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

// requireAuth resolves the bearer token into the requesting user and puts
// it on the context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		}
		user, ok := s.state.userForToken(token)
		if !ok {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
		}
		c.Set("user", user)
		return next(c)
	}
}
