package qservice

import (
	"github.com/kegliz/synthesis/internal/logger"
	"github.com/kegliz/synthesis/internal/qprog"
	"github.com/kegliz/synthesis/qc/facade"
)

type (
	ProgramValue struct {
		Program qprog.Program `json:"program"`
	}
	ProgramIDValue struct {
		ID string `json:"id"`
	}

	// RunResult is the shot-count snapshot taken after a program plays
	// out against the shared engine facade.
	RunResult struct {
		NumQubits     int                `json:"num_qubits"`
		Probabilities map[string]float64 `json:"probabilities"`
		Counts        map[string]int     `json:"counts,omitempty"`
	}

	// ServiceOptions are options for constructing a service
	ServiceOptions struct {
		Logger *logger.Logger
		Store  ProgramStore
		Facade *facade.Facade
	}

	Service interface {
		SaveProgram(log *logger.Logger, pv *ProgramValue) (string, error)
		RunProgram(log *logger.Logger, id string, shots int) (*RunResult, error)
	}

	service struct {
		store  ProgramStore
		logger *logger.Logger
		facade *facade.Facade
	}
)

// NewService creates a new service.
func NewService(opts ServiceOptions) Service {
	if opts.Logger == nil {
		opts.Logger = logger.NewLogger(logger.LoggerOptions{
			Debug: true,
		})
	}
	if opts.Store == nil {
		opts.Store = NewProgramStore()
	}
	return &service{
		logger: opts.Logger,
		store:  opts.Store,
		facade: opts.Facade,
	}
}

// SaveProgram implements Service. It validates and persists the
// submitted program verbatim, returning its generated id.
func (s *service) SaveProgram(l *logger.Logger, pv *ProgramValue) (string, error) {
	l.Debug().Msg("saving program")
	p := pv.Program
	return s.store.SaveProgram(&p)
}

// RunProgram implements Service: resets the shared facade to the
// program's qubit count, plays every step's gates against it, and
// returns a probabilities/shot-count snapshot.
func (s *service) RunProgram(l *logger.Logger, id string, shots int) (*RunResult, error) {
	l.Debug().Msgf("running program %s", id)
	p, err := s.store.GetProgram(id)
	if err != nil {
		return nil, err
	}
	if err := s.facade.Reset(p.NumOfQubits); err != nil {
		return nil, err
	}
	if err := qprog.ApplyToFacade(s.facade, p); err != nil {
		return nil, err
	}
	result, err := s.facade.Compute("probabilities", shots)
	if err != nil {
		return nil, err
	}
	return &RunResult{
		NumQubits:     result.NumQubits,
		Probabilities: result.Probabilities,
		Counts:        result.Counts,
	}, nil
}
