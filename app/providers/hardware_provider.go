// Package providers registers the application's own services.
package providers

import (
	"reflect"

	"github.com/km-arc/go-ioc/app/hardware"
	"github.com/km-arc/go-ioc/framework/container"
)

// HardwareServiceProvider binds the processors and the computer. It is
// deferred: nothing is registered until one of Provides is first resolved.
//
// Bound abstracts:
//   - *hardware.AMDProcessor, *hardware.IntelProcessor (factories)
//   - hardware.Processor (a fresh AMD processor with default info)
//   - *hardware.Computer (a new computer around a fresh Processor)
type HardwareServiceProvider struct {
	container.BaseProvider
}

func (p *HardwareServiceProvider) Register(app *container.Container) error {
	if err := container.RegisterFactory[*hardware.AMDProcessor, hardware.AMDProcessor](app); err != nil {
		return err
	}
	if err := container.RegisterFactory[*hardware.IntelProcessor, hardware.IntelProcessor](app); err != nil {
		return err
	}
	if err := container.RegisterFunctor[hardware.Processor](app, defaultProcessor); err != nil {
		return err
	}
	return container.RegisterFunctor[*hardware.Computer](app, hardware.NewComputer)
}

func defaultProcessor(amd *hardware.AMDProcessor) hardware.Processor {
	amd.SetProcessorInfo("Ryzen7", hardware.X64, 5.3)
	return amd
}

func (p *HardwareServiceProvider) IsDeferred() bool { return true }

func (p *HardwareServiceProvider) Provides() []reflect.Type {
	return []reflect.Type{
		container.TypeOf[*hardware.AMDProcessor](),
		container.TypeOf[*hardware.IntelProcessor](),
		container.TypeOf[hardware.Processor](),
		container.TypeOf[*hardware.Computer](),
	}
}
