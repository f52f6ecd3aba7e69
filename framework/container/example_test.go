package container_test

import (
	"errors"
	"fmt"

	"github.com/km-arc/go-ioc/framework/container"
)

type Engine interface {
	Start() string
}

type V8 struct{ Cylinders int }

func (e *V8) Start() string { return "vroom" }

type Car struct {
	Engine Engine `ioc:"inject"`
}

func (c *Car) Drive() string { return "car: " + c.Engine.Start() }

type Driver interface {
	Drive() string
}

func ExampleRegisterInstance() {
	c := container.New()
	engine := &V8{}
	container.RegisterInstance[Engine](c, engine)

	a, _ := container.Resolve[Engine](c)
	b, _ := container.Resolve[Engine](c)
	fmt.Println(a == b, a == Engine(engine))
	// Output: true true
}

func ExampleRegisterFactory() {
	c := container.New()
	_ = container.RegisterFactory[Engine, V8](c)
	_ = container.RegisterFactory[Driver, Car](c)

	d1, _ := container.Resolve[Driver](c)
	d2, _ := container.Resolve[Driver](c)
	fmt.Println(d1.Drive())
	fmt.Println(d1 == d2)
	// Output:
	// car: vroom
	// false
}

func ExampleRegisterFunctor() {
	c := container.New()
	_ = container.RegisterFactory[Engine, V8](c)
	_ = container.RegisterFunctor[Driver](c, func(e Engine) *Car {
		return &Car{Engine: e}
	})

	d, _ := container.Resolve[Driver](c)
	fmt.Println(d.Drive())
	// Output: car: vroom
}

func ExampleResolve_unregistered() {
	c := container.New()

	_, err := container.Resolve[Engine](c)
	fmt.Println(errors.Is(err, container.ErrUnregisteredType))
	fmt.Println(err)
	// Output:
	// true
	// container: no binding registered for [github.com/km-arc/go-ioc/framework/container_test.Engine]
}
