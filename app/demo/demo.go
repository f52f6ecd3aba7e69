// Package demo walks through the three ways of binding a processor: a
// pre-built instance, an instance the container builds once, and a factory
// that builds a new processor per resolve.
package demo

import (
	"fmt"
	"io"

	"github.com/km-arc/go-ioc/app/hardware"
	"github.com/km-arc/go-ioc/framework/container"
)

// Run plays every scenario against its own container, writing a report to
// w. opts are applied to each container.
func Run(w io.Writer, opts ...container.Option) error {
	scenarios := []func(io.Writer, ...container.Option) error{
		PrebuiltInstance,
		BuiltOnceInstance,
		FactoryWithSwap,
	}
	for i, scenario := range scenarios {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := scenario(w, opts...); err != nil {
			return err
		}
	}
	return nil
}

// PrebuiltInstance registers an already configured AMD processor.
func PrebuiltInstance(w io.Writer, opts ...container.Option) error {
	c := container.New(opts...)

	amd := &hardware.AMDProcessor{}
	amd.SetProcessorInfo("Ryzen7", hardware.X64, 5.3)
	container.RegisterInstance[hardware.Processor](c, amd)

	cpu, err := container.Resolve[hardware.Processor](c)
	if err != nil {
		return err
	}
	pc := hardware.NewComputer(cpu)
	fmt.Fprintf(w, "Computer 1 Processor Info: %s\n", pc.ComputerProcessorInfo())

	again, err := container.Resolve[hardware.Processor](c)
	if err != nil {
		return err
	}
	if again == hardware.Processor(amd) {
		fmt.Fprintln(w, "RegisterInstance uses the pre-built AMDProcessor.")
	} else {
		fmt.Fprintln(w, "RegisterInstance creates a new AMDProcessor.")
	}

	same, err := resolvesSame(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, sameness("RegisterInstance", same))
	return nil
}

// BuiltOnceInstance lets the container build one Intel processor at
// registration time and share it.
func BuiltOnceInstance(w io.Writer, opts ...container.Option) error {
	c := container.New(opts...)

	if err := container.RegisterInstanceOf[hardware.Processor, hardware.IntelProcessor](c); err != nil {
		return err
	}

	cpu, err := container.Resolve[hardware.Processor](c)
	if err != nil {
		return err
	}
	cpu.SetProcessorInfo("Core i9", hardware.X64, 3.8)

	if err := container.RegisterFunctor[*hardware.Computer](c, hardware.NewComputer); err != nil {
		return err
	}
	pc, err := container.Resolve[*hardware.Computer](c)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Computer 2 Processor Info: %s\n", pc.ComputerProcessorInfo())
	return nil
}

// FactoryWithSwap binds a factory, re-binds it to another vendor and
// installs the new processor into an existing computer.
func FactoryWithSwap(w io.Writer, opts ...container.Option) error {
	c := container.New(opts...)

	if err := container.RegisterFactory[hardware.Processor, hardware.IntelProcessor](c); err != nil {
		return err
	}
	intel, err := container.Resolve[hardware.Processor](c)
	if err != nil {
		return err
	}
	intel.SetProcessorInfo("Core i9", hardware.X64, 3.8)

	pc := hardware.NewComputer(intel)
	fmt.Fprintf(w, "Computer 3 Processor Info: %s\n", pc.ComputerProcessorInfo())

	if err := container.RegisterFactory[hardware.Processor, hardware.AMDProcessor](c); err != nil {
		return err
	}
	amd, err := container.Resolve[hardware.Processor](c)
	if err != nil {
		return err
	}
	amd.SetProcessorInfo("Ryzen7", hardware.X64, 5.3)

	pc.InstallProcessor(amd)
	fmt.Fprintf(w, "Computer 3 Processor Info: %s\n", pc.ComputerProcessorInfo())

	same, err := resolvesSame(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, sameness("RegisterFactory", same))
	return nil
}

// resolvesSame resolves the processor twice and compares the results.
func resolvesSame(c *container.Container) (bool, error) {
	a, err := container.Resolve[hardware.Processor](c)
	if err != nil {
		return false, err
	}
	b, err := container.Resolve[hardware.Processor](c)
	if err != nil {
		return false, err
	}
	return a == b, nil
}

func sameness(strategy string, same bool) string {
	if same {
		return strategy + " uses the same object for every Resolve"
	}
	return strategy + " creates a new object for every Resolve"
}
