package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoapi "github.com/Narendra3579/ssvteachersapp/apps/teacher/echo"
	"github.com/Narendra3579/ssvteachersapp/core"
	"github.com/Narendra3579/ssvteachersapp/core/auth"
	"github.com/Narendra3579/ssvteachersapp/core/classroom"
	alertsvc "github.com/Narendra3579/ssvteachersapp/services/alert"
	logsvc "github.com/Narendra3579/ssvteachersapp/services/logger"
	redisstore "github.com/Narendra3579/ssvteachersapp/storage/kvstore/redis"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "TEACHER : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up the shared store
	store, err := redisstore.Open(conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening shared store: %v", err), err)
	}
	defer func() {
		if err = store.Close(); err != nil {
			logger.Error("failed to close shared store", err)
		}
	}()
	acc := core.NewAccessor(store, logger)

	// set up services
	alerter := alertsvc.NewConsoleService(conf)

	verifier, err := auth.NewStaticVerifier(conf.Teacher.Username, conf.Teacher.Password)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up credential verifier: %v", err), err)
	}
	authSvc := auth.NewService(acc, verifier, func(loggedIn bool) {
		logger.Info(fmt.Sprintf("login state changed externally: loggedIn=%t", loggedIn))
	})

	state := classroom.NewState(acc, authSvc.IsLoggedIn)
	classSvc := classroom.NewService(state, acc, logger, conf)

	// react to changes made by other instances sharing the store
	unwatch, err := store.Watch(func(evt core.Event) {
		state.HandleChange(evt)
		authSvc.HandleChange(evt)
	})
	if err != nil {
		logger.Fatal(fmt.Sprintf("watching shared store: %v", err), err)
	}
	defer unwatch()

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:     conf,
			Logger:   logger,
			Alerter:  alerter,
			AuthSvc:  authSvc,
			ClassSvc: classSvc,
			State:    state,
		},
	)
	server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
