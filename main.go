package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/km-arc/go-ioc/app/demo"
	appproviders "github.com/km-arc/go-ioc/app/providers"
	"github.com/km-arc/go-ioc/framework/app"
	"github.com/km-arc/go-ioc/framework/container"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	application, err := app.New() // loads .env automatically
	if err != nil {
		return err
	}
	log := application.Logger()

	// The scenarios share the application's type identities, so their ids
	// start at IOC_TYPE_ID_BASE too.
	if err := demo.Run(os.Stdout,
		container.WithLogger(log),
		container.WithTypeIDs(application.TypeIDs()),
	); err != nil {
		return err
	}

	if !application.Config().App.Serve {
		return nil
	}

	if err := application.Register(&appproviders.HardwareServiceProvider{}); err != nil {
		return err
	}
	if err := application.Register(&appproviders.RouteServiceProvider{}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return application.Run(ctx)
}
