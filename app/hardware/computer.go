package hardware

// Computer holds one Processor. It does not own it: whoever installed the
// processor (usually the container) may hand the same value to others.
type Computer struct {
	processor Processor
}

// NewComputer builds a Computer around p. It doubles as the creation
// function registered for *Computer, with p resolved from the container.
func NewComputer(p Processor) *Computer {
	return &Computer{processor: p}
}

// InstallProcessor swaps the processor.
func (c *Computer) InstallProcessor(p Processor) {
	c.processor = p
}

// Processor returns the installed processor.
func (c *Computer) Processor() Processor {
	return c.processor
}

// ComputerProcessorInfo forwards to the installed processor. A computer
// without one reports "no processor".
func (c *Computer) ComputerProcessorInfo() string {
	if c.processor == nil {
		return "no processor"
	}
	return c.processor.ProcessorInfo()
}
