package main

import (
	"context"
	"log"
	"os"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/storage/document"
	"github.com/Akr1040317/hiveUniDash/storage/document/mongodb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig(core.Getwd())

	ctx := context.Background()
	gateway, err := document.Open(ctx, conf.Database)
	errAndDie(err)
	defer gateway.Close(ctx)
	errAndDie(gateway.Ping(ctx))

	// start CLI
	cli := commandLine{
		conf:    conf,
		usrRepo: mongodb.NewUserRepository(gateway),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
