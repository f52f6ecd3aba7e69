// Package http is the JSON API over the application's computer.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/km-arc/go-ioc/app/hardware"
	"github.com/km-arc/go-ioc/framework/container"
	gohttp "github.com/km-arc/go-ioc/framework/http"
	"github.com/km-arc/go-ioc/framework/http/validation"
	"github.com/km-arc/go-ioc/framework/routing"
)

// ComputerController serves one long-lived computer. Its processor can be
// swapped for a fresh one of either vendor.
type ComputerController struct {
	Container *container.Container `ioc:"inject"`
	Computer  *hardware.Computer   `ioc:"inject"`
	Logger    *slog.Logger         `ioc:"inject"`

	mu sync.RWMutex
}

// ProcessorView is the JSON shape of the installed processor.
type ProcessorView struct {
	Vendor string `json:"vendor"`
	Info   string `json:"info"`
}

// ProcessorRequest is the body of PUT /computer/processor/{vendor}.
type ProcessorRequest struct {
	Version string      `json:"version"`
	Type    string      `json:"type"`
	Speed   json.Number `json:"speed"`
}

var processorRules = validation.Rules{
	"version": "required|name|max:64",
	"type":    "required|in:x86,x64",
	"speed":   "required|numeric|gt:0",
}

var errUnknownVendor = errors.New("unknown vendor")

// Routes mounts the controller on r.
//
//	GET /computer
//	PUT /computer/processor/{vendor}
//	GET /bindings
func Routes(r *routing.Router, ctl *ComputerController) {
	r.Prefix("/computer", func(cr *routing.Router) {
		cr.Get("/", ctl.Show)
		cr.Put("/processor/{vendor}", ctl.InstallProcessor)
	})
	r.Get("/bindings", ctl.Bindings)
}

// Show reports the installed processor.
func (ctl *ComputerController) Show(w http.ResponseWriter, r *http.Request) {
	ctl.mu.RLock()
	view := ctl.view()
	ctl.mu.RUnlock()

	gohttp.NewResponse(w).Success(view)
}

// InstallProcessor resolves a new processor of the vendor in the path, sets
// its info from the body and installs it.
func (ctl *ComputerController) InstallProcessor(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	res := gohttp.NewResponse(w)

	var body ProcessorRequest
	if err := req.Bind(&body); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	if errs := validation.Validate(map[string]string{
		"version": body.Version,
		"type":    body.Type,
		"speed":   body.Speed.String(),
	}, processorRules); errs.Has() {
		res.ValidationError(errs)
		return
	}
	typ, err := hardware.ParseProcessorType(body.Type)
	if err != nil {
		res.Error(http.StatusUnprocessableEntity, err.Error())
		return
	}
	speed, _ := body.Speed.Float64()

	vendor := req.RouteParam("vendor")
	cpu, err := ctl.newProcessor(vendor)
	switch {
	case errors.Is(err, errUnknownVendor):
		res.NotFound("no processor vendor " + vendor)
		return
	case err != nil:
		ctl.Logger.Error("computer: resolve processor", "vendor", vendor, "err", err)
		res.ServerError()
		return
	}
	cpu.SetProcessorInfo(body.Version, typ, speed)

	ctl.mu.Lock()
	ctl.Computer.InstallProcessor(cpu)
	view := ctl.view()
	ctl.mu.Unlock()

	ctl.Logger.Info("computer: processor installed", "vendor", view.Vendor, "info", view.Info)
	res.Success(view)
}

// Bindings lists the container's bound types.
func (ctl *ComputerController) Bindings(w http.ResponseWriter, r *http.Request) {
	gohttp.NewResponse(w).Success(ctl.Container.Bindings())
}

func (ctl *ComputerController) newProcessor(vendor string) (hardware.Processor, error) {
	switch strings.ToLower(vendor) {
	case "amd":
		p, err := container.Resolve[*hardware.AMDProcessor](ctl.Container)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "intel":
		p, err := container.Resolve[*hardware.IntelProcessor](ctl.Container)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, errUnknownVendor
}

// view must be called with mu held.
func (ctl *ComputerController) view() ProcessorView {
	p := ctl.Computer.Processor()
	if p == nil {
		return ProcessorView{Info: ctl.Computer.ComputerProcessorInfo()}
	}
	return ProcessorView{Vendor: p.Vendor(), Info: p.ProcessorInfo()}
}
