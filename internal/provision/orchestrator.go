package provision

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/mrruby/stonfi-liquidity-app/internal/catalog"
	"github.com/mrruby/stonfi-liquidity-app/internal/metrics"
	"github.com/mrruby/stonfi-liquidity-app/internal/stonapi"
	"github.com/mrruby/stonfi-liquidity-app/internal/units"
)

// SlippageTolerance is fixed for every simulation; tuning it is out of
// scope for this flow.
const SlippageTolerance = "0.001"

// QuoteService is the quote/simulation collaborator; satisfied by
// stonapi.Client.
type QuoteService interface {
	SimulateProvision(ctx context.Context, req stonapi.SimulateRequest) (*stonapi.SimulateResponse, error)
}

// Orchestrator drives the two-phase simulation protocol: try Initial
// (new pool) first, and on the quote service's own existing-pool
// rejection fall back to one Balanced attempt against the pool address
// extracted from the rejection. At most one fallback ever happens.
//
// The optimistic first attempt saves a round trip in the new-pool case
// and avoids racing a separate existence check against the simulation.
type Orchestrator struct {
	logger *logrus.Entry
	quotes QuoteService
}

func NewOrchestrator(logger *logrus.Logger, quotes QuoteService) *Orchestrator {
	return &Orchestrator{
		logger: logger.WithField("pkg", "provision.Orchestrator"),
		quotes: quotes,
	}
}

// Simulate runs one full protocol invocation for the session. It
// restarts at Idle, clearing any previous result and error, validates
// inputs synchronously, and on success refreshes the session's leg-B
// amount from the simulation's authoritative figure so the displayed
// ratio matches what the chain would execute.
//
// A run that has been superseded by a newer invocation discards its
// outcome instead of touching the session.
func (o *Orchestrator) Simulate(ctx context.Context, s *Session, walletAddress string) (*stonapi.SimulateResponse, error) {
	s.mu.Lock()
	if s.AssetA == nil || s.AssetB == nil || s.AmountA == "" || s.AmountB == "" {
		s.mu.Unlock()
		return nil, newError(ErrValidation, "both assets and both amounts are required")
	}
	s.generation++
	gen := s.generation
	s.State = StateSimulatingInitial
	s.Result = nil
	s.LastError = ""
	assetA, assetB := s.AssetA, s.AssetB
	amountA, amountB := s.AmountA, s.AmountB
	s.mu.Unlock()

	initialReq := stonapi.SimulateRequest{
		ProvisionType:     stonapi.ProvisionInitial,
		TokenA:            assetA.ContractAddress,
		TokenB:            assetB.ContractAddress,
		TokenAUnits:       units.ToBaseUnits(assetA, amountA),
		TokenBUnits:       units.ToBaseUnits(assetB, amountB),
		SlippageTolerance: SlippageTolerance,
		WalletAddress:     walletAddress,
	}

	result, err := o.quotes.SimulateProvision(ctx, initialReq)
	if err == nil {
		metrics.SimulationDone(string(stonapi.ProvisionInitial), "success")
		return o.finish(s, gen, assetB, result)
	}
	metrics.SimulationDone(string(stonapi.ProvisionInitial), "error")

	var apiErr *stonapi.APIError
	if !errors.As(err, &apiErr) {
		return nil, o.fail(s, gen, wrapError(ErrTransport, err.Error(), err))
	}
	if !stonapi.IsExistingPoolError(apiErr.Payload) {
		return nil, o.fail(s, gen, wrapError(ErrAPIRejection, apiErr.Payload, err))
	}

	poolAddress, ok := stonapi.ExtractPoolAddress(apiErr.Payload)
	if !ok {
		return nil, o.fail(s, gen, newError(ErrPoolExtraction,
			"Failed to extract pool information from error message"))
	}

	o.logger.WithField("pool", poolAddress).Info("pair already has a pool, retrying balanced")
	metrics.FallbackTaken()

	if !o.transition(s, gen, StateSimulatingBalanced) {
		return nil, nil // superseded mid-flight
	}

	// leg B's amount is implied by the existing pool's ratio, so only
	// leg A is sent
	balancedReq := stonapi.SimulateRequest{
		ProvisionType:     stonapi.ProvisionBalanced,
		TokenA:            assetA.ContractAddress,
		TokenB:            assetB.ContractAddress,
		TokenAUnits:       units.ToBaseUnits(assetA, amountA),
		PoolAddress:       poolAddress,
		SlippageTolerance: SlippageTolerance,
		WalletAddress:     walletAddress,
	}

	result, err = o.quotes.SimulateProvision(ctx, balancedReq)
	if err != nil {
		metrics.SimulationDone(string(stonapi.ProvisionBalanced), "error")
		if errors.As(err, &apiErr) {
			return nil, o.fail(s, gen, wrapError(ErrAPIRejection, apiErr.Payload, err))
		}
		return nil, o.fail(s, gen, wrapError(ErrTransport, err.Error(), err))
	}
	metrics.SimulationDone(string(stonapi.ProvisionBalanced), "success")

	return o.finish(s, gen, assetB, result)
}

// finish applies a successful result unless the run was superseded.
func (o *Orchestrator) finish(s *Session, gen uint64, assetB *catalog.Asset, result *stonapi.SimulateResponse) (*stonapi.SimulateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		o.logger.Debug("discarding superseded simulation result")
		return nil, nil
	}
	s.State = StateReady
	s.Result = result
	s.AmountB = units.FromBaseUnits(assetB, result.TokenBUnits)
	return result, nil
}

// fail records a terminal error unless the run was superseded; the
// classified error is returned either way.
func (o *Orchestrator) fail(s *Session, gen uint64, e *Error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.generation {
		s.State = StateError
		s.LastError = e.Message
	}
	return e
}

func (o *Orchestrator) transition(s *Session, gen uint64, state State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.State = state
	return true
}
