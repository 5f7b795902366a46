package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Narendra3579/ssvteachersapp/core"
	logsvc "github.com/Narendra3579/ssvteachersapp/services/logger"
	redisstore "github.com/Narendra3579/ssvteachersapp/storage/kvstore/redis"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up the shared store
	store, err := redisstore.Open(conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening shared store: %v", err), err)
	}
	defer store.Close()

	// start CLI
	cli := commandLine{
		acc: core.NewAccessor(store, logger),
		out: os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
