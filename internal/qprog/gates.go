package qprog

type gateType string

const (
	HGate       gateType = "H"
	XGate       gateType = "X"
	ZGate       gateType = "Z"
	SGate       gateType = "S"
	CNotGate    gateType = "CNot"
	CZGate      gateType = "CZ"
	SwapGate    gateType = "Swap"
	ToffoliGate gateType = "Toffoli"
	FredkinGate gateType = "Fredkin"
	Measurement gateType = "M"
)

// NewXGate returns a new XGate.
func NewXGate(target int) *Gate {
	return &Gate{
		Type:    XGate,
		Targets: []int{target},
	}
}

// NewHGate returns a new HGate.
func NewHGate(target int) *Gate {
	return &Gate{
		Type:    HGate,
		Targets: []int{target},
	}
}

// NewZGate returns a new ZGate.
func NewZGate(target int) *Gate {
	return &Gate{
		Type:    ZGate,
		Targets: []int{target},
	}
}

// NewSGate returns a new SGate.
func NewSGate(target int) *Gate {
	return &Gate{
		Type:    SGate,
		Targets: []int{target},
	}
}

// NewMeasurement returns a new Measurement.
func NewMeasurement(target int) *Gate {
	return &Gate{
		Type:    Measurement,
		Targets: []int{target},
	}
}

// NewCNotGate returns a new CNotGate.
func NewCNotGate(control int, target int) *Gate {
	return &Gate{
		Type:     CNotGate,
		Targets:  []int{target},
		Controls: []int{control},
	}
}

// NewCZGate returns a new CZGate.
func NewCZGate(control int, target int) *Gate {
	return &Gate{
		Type:     CZGate,
		Targets:  []int{target},
		Controls: []int{control},
	}
}

// NewSwapGate returns a new SwapGate between a and b.
func NewSwapGate(a, b int) *Gate {
	return &Gate{
		Type:    SwapGate,
		Targets: []int{a, b},
	}
}

// NewToffoliGate returns a new ToffoliGate.
func NewToffoliGate(control0 int, control1 int, target int) *Gate {
	return &Gate{
		Type:     ToffoliGate,
		Targets:  []int{target},
		Controls: []int{control0, control1},
	}
}

// NewFredkinGate returns a new FredkinGate (controlled swap of a and b).
func NewFredkinGate(control int, a int, b int) *Gate {
	return &Gate{
		Type:     FredkinGate,
		Targets:  []int{a, b},
		Controls: []int{control},
	}
}
