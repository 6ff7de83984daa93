package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/mrruby/stonfi-liquidity-app/internal/catalog"
	"github.com/mrruby/stonfi-liquidity-app/internal/metrics"
	"github.com/mrruby/stonfi-liquidity-app/internal/provision"
)

type Config struct {
	Port string `envconfig:"SERVER_PORT" default:"8080"`
	// AssetFilter is the liquidity-tier tag disjunction passed to the
	// catalog; the result order is the catalog's own.
	AssetFilter string `envconfig:"ASSET_FILTER" default:"liquidity:very_high | liquidity:high | liquidity:medium"`
}

// AssetCatalog is the catalog collaborator; satisfied by catalog.Client.
type AssetCatalog interface {
	QueryAssets(ctx context.Context, filter string) ([]catalog.Asset, error)
}

// Server exposes the provisioning flow over HTTP.
type Server struct {
	logger       *logrus.Logger
	cfg          Config
	echo         *echo.Echo
	catalog      AssetCatalog
	sessions     *provision.Store
	orchestrator *provision.Orchestrator
	assembler    *provision.Assembler
}

func New(
	cfg Config,
	logger *logrus.Logger,
	assetCatalog AssetCatalog,
	sessions *provision.Store,
	orchestrator *provision.Orchestrator,
	assembler *provision.Assembler,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(metrics.HTTPMiddleware())

	s := &Server{
		logger:       logger,
		cfg:          cfg,
		echo:         e,
		catalog:      assetCatalog,
		sessions:     sessions,
		orchestrator: orchestrator,
		assembler:    assembler,
	}

	e.GET("/health", s.handleHealth)
	e.GET("/api/v1/assets", s.handleAssets)
	e.POST("/api/v1/sessions", s.handleCreateSession)
	e.GET("/api/v1/sessions/:id", s.handleGetSession)
	e.PUT("/api/v1/sessions/:id", s.handleUpdateSession)
	e.POST("/api/v1/sessions/:id/simulate", s.handleSimulate)
	e.POST("/api/v1/sessions/:id/assemble", s.handleAssemble)

	return s
}

// Handler exposes the route tree; used by tests and embedding servers.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the context is cancelled, then shuts down.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(":" + s.cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAssets(c echo.Context) error {
	assets, err := s.catalog.QueryAssets(c.Request().Context(), s.cfg.AssetFilter)
	if err != nil {
		s.logger.WithError(err).Error("failed to query assets")
		return c.JSON(http.StatusBadGateway, errorBody(err))
	}
	return c.JSON(http.StatusOK, map[string]any{"assets": assets})
}

// handleCreateSession opens a session preselecting the catalog's first
// two assets as a starting point.
func (s *Server) handleCreateSession(c echo.Context) error {
	session := s.sessions.Create()

	assets, err := s.catalog.QueryAssets(c.Request().Context(), s.cfg.AssetFilter)
	if err != nil {
		s.logger.WithError(err).Warn("failed to preselect assets")
	} else if len(assets) >= 2 {
		session.SelectAssets(&assets[0], &assets[1])
	}

	return c.JSON(http.StatusCreated, session.View())
}

func (s *Server) handleGetSession(c echo.Context) error {
	session, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, errorMessage("session not found"))
	}
	return c.JSON(http.StatusOK, session.View())
}

type updateSessionRequest struct {
	AssetA  *catalog.Asset `json:"asset_a"`
	AssetB  *catalog.Asset `json:"asset_b"`
	AmountA string         `json:"amount_a"`
	AmountB string         `json:"amount_b"`
}

func (s *Server) handleUpdateSession(c echo.Context) error {
	session, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, errorMessage("session not found"))
	}

	var req updateSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err))
	}

	if req.AssetA != nil || req.AssetB != nil {
		session.SelectAssets(req.AssetA, req.AssetB)
	}
	session.EnterAmounts(req.AmountA, req.AmountB)

	return c.JSON(http.StatusOK, session.View())
}

type simulateRequest struct {
	WalletAddress string `json:"wallet_address"`
}

func (s *Server) handleSimulate(c echo.Context) error {
	session, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, errorMessage("session not found"))
	}

	var req simulateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err))
	}

	if _, err := s.orchestrator.Simulate(c.Request().Context(), session, req.WalletAddress); err != nil {
		return c.JSON(statusFor(err), errorBody(err))
	}
	return c.JSON(http.StatusOK, session.View())
}

func (s *Server) handleAssemble(c echo.Context) error {
	session, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, errorMessage("session not found"))
	}

	var req simulateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err))
	}

	tx, err := s.assembler.Assemble(c.Request().Context(), session, req.WalletAddress)
	if err != nil {
		metrics.AssemblyDone("error")
		return c.JSON(statusFor(err), errorBody(err))
	}
	metrics.AssemblyDone("success")
	return c.JSON(http.StatusOK, tx)
}

// statusFor maps classified provisioning errors to HTTP statuses; the
// message itself always passes through verbatim.
func statusFor(err error) int {
	var pErr *provision.Error
	if !errors.As(err, &pErr) {
		return http.StatusInternalServerError
	}
	switch pErr.Kind {
	case provision.ErrValidation, provision.ErrPrecondition:
		return http.StatusUnprocessableEntity
	case provision.ErrAPIRejection, provision.ErrPoolExtraction:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func errorBody(err error) map[string]string {
	return errorMessage(err.Error())
}

func errorMessage(msg string) map[string]string {
	return map[string]string{"error": msg}
}
