package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/analytics"
	"github.com/Akr1040317/hiveUniDash/core/board"
	"github.com/Akr1040317/hiveUniDash/core/bug"
	"github.com/Akr1040317/hiveUniDash/core/calendar"
	"github.com/Akr1040317/hiveUniDash/core/content"
	"github.com/Akr1040317/hiveUniDash/core/event"
	"github.com/Akr1040317/hiveUniDash/core/feature"
	"github.com/Akr1040317/hiveUniDash/core/quiz"
	"github.com/Akr1040317/hiveUniDash/core/user"
	"github.com/Akr1040317/hiveUniDash/services/calcom"
)

type (
	// ServerDeps carries everything the API needs. Regions tells the region
	// middleware which tokens are routable; anything else falls back to the
	// default.
	ServerDeps struct {
		Conf   *core.Config
		Logger core.Logger

		UserSvc      *user.Service
		ContentSvc   *content.Service
		BugSvc       *bug.Service
		FeatureSvc   *feature.Service
		EventSvc     *event.Service
		QuizSvc      *quiz.Service
		AnalyticsSvc *analytics.Service
		Aggregator   *calendar.Aggregator
		Boards       *board.Manager
		Calcom       *calcom.Client

		ResolveRegion func(string) string

		DisableReqLogs bool
	}

	Server struct {
		deps ServerDeps
		app  *echo.Echo

		errs     chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.SignalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)
	s.app.GET("/health", s.health)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))
	region := regionMiddleware(s.deps.ResolveRegion)

	registerAuthAPI(v1, jwt, s.deps)
	registerContentAPI(v1, jwt, region, s.deps)
	registerBugAPI(v1, jwt, region, s.deps)
	registerFeatureAPI(v1, jwt, region, s.deps)
	registerEventAPI(v1, jwt, region, s.deps)
	registerCalendarAPI(v1, jwt, region, s.deps)
	registerQuizAPI(v1, jwt, region, s.deps)
	registerDashboardAPI(v1, jwt, region, s.deps)
	registerAnalyticsAPI(v1, jwt, region, s.deps)
	registerCalcomAPI(v1, jwt, s.deps)
}

func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address()); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

// Errors surfaces fatal listener errors to the main goroutine.
func (s *Server) Errors() <-chan error {
	return s.errs
}

// ShutdownSignal surfaces OS signals and internal shutdown requests.
func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown requests a graceful shutdown, used when an integrity
// error makes continuing unsafe.
func (s *Server) SignalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the Hive Admin API!")
}

func (s *Server) health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok", "build": s.deps.Conf.Build})
}
