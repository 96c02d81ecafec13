package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	echoapi "github.com/Akr1040317/hiveUniDash/apps/api/echo"
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
	emailsvc "github.com/Akr1040317/hiveUniDash/services/email"
	logsvc "github.com/Akr1040317/hiveUniDash/services/logger"
	"github.com/Akr1040317/hiveUniDash/storage/document"
	"github.com/Akr1040317/hiveUniDash/storage/document/mongodb"
)

const shutdownTimeout = 20 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig(core.Getwd())

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	if err := bug.ValidateFieldChains(); err != nil {
		logger.Fatal(fmt.Sprintf("checking tenant field chains: %v", err), err)
	}

	ctx := context.Background()
	gateway, err := document.Open(ctx, conf.Database)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up databases: %v", err), err)
	}
	defer gateway.Close(ctx)

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	usrSvc := user.NewService(mongodb.NewUserRepository(gateway), conf, logger)
	contentSvc := content.NewService(mongodb.NewContentRepository(gateway), logger)
	bugSvc := bug.NewService(mongodb.NewBugRepository(gateway), mailSvc, conf, logger)
	featureSvc := feature.NewService(mongodb.NewFeatureRepository(gateway), logger)
	eventSvc := event.NewService(mongodb.NewEventRepository(gateway), logger)
	quizSvc := quiz.NewService(mongodb.NewQuizRepository(gateway), logger)
	analyticsSvc := analytics.NewService(mongodb.NewAnalyticsRepository(gateway), logger)
	calcomClient := calcom.NewClient(conf.Calcom, logger)
	aggregator := calendar.NewAggregator(featureSvc, bugSvc, quizSvc, eventSvc, calcomClient, logger)
	boards := board.NewManager(featureSvc, bugSvc, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	core.InitValidators(core.Validate, core.Translator)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:          conf,
		Logger:        logger,
		UserSvc:       usrSvc,
		ContentSvc:    contentSvc,
		BugSvc:        bugSvc,
		FeatureSvc:    featureSvc,
		EventSvc:      eventSvc,
		QuizSvc:       quizSvc,
		AnalyticsSvc:  analyticsSvc,
		Aggregator:    aggregator,
		Boards:        boards,
		Calcom:        calcomClient,
		ResolveRegion: gateway.Region,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(sctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err := server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
