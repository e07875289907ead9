package mockapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerline/ledgerline-client/internal/domain"
)

func currentUser(c echo.Context) *domain.User {
	user, _ := c.Get("user").(*domain.User)
	return user
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	token, userID, err := s.state.login(req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
	}
	s.logger.Info().Str("user_id", userID).Msg("User logged in")
	return c.JSON(http.StatusOK, map[string]string{"token": token, "userId": userID})
}

func (s *Server) handleRegister(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "email and password are required"})
	}
	id, err := s.state.register(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "registration failed"})
	}
	s.logger.Info().Str("user_id", id).Msg("User registered")
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleMe(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) handleListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, s.state.listCategories(currentUser(c).ID))
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "category name is required"})
	}
	category := s.state.createCategory(currentUser(c).ID, req.Name)
	return c.JSON(http.StatusCreated, category)
}

func (s *Server) handleDeleteCategory(c echo.Context) error {
	if !s.state.deleteCategory(currentUser(c).ID, c.Param("id")) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "category not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// requireOwnUser rejects requests addressing another user's collections.
// The bool reports whether the handler may proceed; when false the 403 has
// already been written and the handler must stop.
func requireOwnUser(c echo.Context) (bool, error) {
	if c.Param("userId") != currentUser(c).ID {
		return false, c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
	}
	return true, nil
}

func (s *Server) handleListBudgets(c echo.Context) error {
	if ok, err := requireOwnUser(c); !ok {
		return err
	}
	return c.JSON(http.StatusOK, s.state.listBudgets(currentUser(c).ID))
}

func (s *Server) handleCreateBudget(c echo.Context) error {
	if ok, err := requireOwnUser(c); !ok {
		return err
	}
	var req domain.BudgetCreate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	budget := s.state.createBudget(currentUser(c).ID, req)
	return c.JSON(http.StatusCreated, budget)
}

func (s *Server) handleUpdateBudget(c echo.Context) error {
	if ok, err := requireOwnUser(c); !ok {
		return err
	}
	var req domain.BudgetUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	budget, ok := s.state.updateBudget(currentUser(c).ID, c.Param("budgetId"), req)
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "budget not found"})
	}
	return c.JSON(http.StatusOK, budget)
}

func (s *Server) handleDeleteBudget(c echo.Context) error {
	if ok, err := requireOwnUser(c); !ok {
		return err
	}
	if !s.state.deleteBudget(currentUser(c).ID, c.Param("budgetId")) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "budget not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleResetBudgetSpending(c echo.Context) error {
	if ok, err := requireOwnUser(c); !ok {
		return err
	}
	if s.failSpendReset.Load() {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "spending reset unavailable"})
	}
	s.state.resetBudgetSpending(currentUser(c).ID)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListTransactions(c echo.Context) error {
	if ok, err := requireOwnUser(c); !ok {
		return err
	}
	return c.JSON(http.StatusOK, s.state.listTransactions(currentUser(c).ID))
}

func (s *Server) handleCreateTransaction(c echo.Context) error {
	var req domain.TransactionCreate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	tx := s.state.createTransaction(currentUser(c).ID, req)
	return c.JSON(http.StatusCreated, tx)
}

func (s *Server) handleUpdateTransaction(c echo.Context) error {
	var tx domain.Transaction
	if err := c.Bind(&tx); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	tx.ID = c.Param("id")
	updated, ok := s.state.updateTransaction(currentUser(c).ID, &tx)
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "transaction not found"})
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(c echo.Context) error {
	if !s.state.deleteTransaction(currentUser(c).ID, c.Param("id")) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "transaction not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleResetTransactions(c echo.Context) error {
	if ok, err := requireOwnUser(c); !ok {
		return err
	}
	s.state.resetTransactions(currentUser(c).ID)
	return c.NoContent(http.StatusNoContent)
}
