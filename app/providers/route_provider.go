package providers

import (
	apphttp "github.com/km-arc/go-ioc/app/http"
	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/routing"
)

// RouteServiceProvider builds the controllers and mounts the API routes.
type RouteServiceProvider struct {
	container.BaseProvider
}

func (p *RouteServiceProvider) Register(app *container.Container) error {
	return nil
}

// Boot builds the controller, which pulls in the deferred hardware bindings.
func (p *RouteServiceProvider) Boot(app *container.Container) error {
	if err := container.RegisterInstanceOf[*apphttp.ComputerController, apphttp.ComputerController](app); err != nil {
		return err
	}
	ctl, err := container.Resolve[*apphttp.ComputerController](app)
	if err != nil {
		return err
	}
	router, err := container.Resolve[*routing.Router](app)
	if err != nil {
		return err
	}
	apphttp.Routes(router, ctl)
	return nil
}
