// Package hardware is the example client of the container: processors from
// two vendors behind one Processor abstraction, and a Computer that holds one.
package hardware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ProcessorType is the instruction-set width. The value is the number shown
// after the "x".
type ProcessorType int

const (
	X86 ProcessorType = 86
	X64 ProcessorType = 64
)

// ErrUnknownProcessorType is returned by ParseProcessorType.
var ErrUnknownProcessorType = errors.New("hardware: unknown processor type")

func (t ProcessorType) String() string {
	return "x" + strconv.Itoa(int(t))
}

// ParseProcessorType accepts "x86"/"x64" (any case) or the bare number.
func ParseProcessorType(s string) (ProcessorType, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "x") {
	case "86":
		return X86, nil
	case "64":
		return X64, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProcessorType, s)
}

// MarshalText makes ProcessorType encode as "x64" in JSON.
func (t ProcessorType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (t *ProcessorType) UnmarshalText(b []byte) error {
	v, err := ParseProcessorType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Processor is the abstract capability the container binds.
type Processor interface {
	// Vendor names the manufacturer.
	Vendor() string

	// ProcessorInfo describes the processor, e.g.
	// "Processor by Ryzen7, Speed:5.3, ProcessorType:x64".
	ProcessorInfo() string

	SetProcessorInfo(version string, typ ProcessorType, speed float64)
}

// spec is the state every processor shares.
type spec struct {
	version string
	typ     ProcessorType
	speed   float64
}

func (s *spec) ProcessorInfo() string {
	return "Processor by " + s.version +
		", Speed:" + strconv.FormatFloat(s.speed, 'f', -1, 64) +
		", ProcessorType:" + s.typ.String()
}

func (s *spec) SetProcessorInfo(version string, typ ProcessorType, speed float64) {
	s.version = version
	s.typ = typ
	s.speed = speed
}

// AMDProcessor is an AMD-made Processor.
type AMDProcessor struct{ spec }

func (p *AMDProcessor) Vendor() string { return "AMD" }

// IntelProcessor is an Intel-made Processor.
type IntelProcessor struct{ spec }

func (p *IntelProcessor) Vendor() string { return "Intel" }
