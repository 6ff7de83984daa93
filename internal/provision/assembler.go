package provision

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mrruby/stonfi-liquidity-app/internal/catalog"
	"github.com/mrruby/stonfi-liquidity-app/internal/ton"
	"github.com/mrruby/stonfi-liquidity-app/internal/wallet"
)

// validityWindow bounds how long an assembled transaction stays
// submittable; the wallet and chain reject it afterwards instead of
// retrying.
const validityWindow = 5 * time.Minute

// MetadataService is the chain-metadata collaborator; satisfied by
// ton.Client.
type MetadataService interface {
	GetRouterMetadata(ctx context.Context, routerAddress string) (ton.RouterMetadata, error)
	ton.WalletResolver
}

// Assembler turns a completed simulation into the two on-chain
// transfer messages, one per leg: native legs route through the
// wrapped-native proxy, jetton legs transfer from the token's own
// contract. Either both messages are produced or none.
type Assembler struct {
	logger *logrus.Entry
	meta   MetadataService
}

func NewAssembler(logger *logrus.Logger, meta MetadataService) *Assembler {
	return &Assembler{
		logger: logger.WithField("pkg", "provision.Assembler"),
		meta:   meta,
	}
}

// Assemble builds the transaction for the session's current result.
// Messages come back in fixed order, leg A then leg B, with a shared
// minimum-LP floor and a validity deadline five minutes out.
func (a *Assembler) Assemble(ctx context.Context, s *Session, walletAddress string) (wallet.Transaction, error) {
	s.mu.Lock()
	if s.State != StateReady || s.Result == nil {
		s.mu.Unlock()
		return wallet.Transaction{}, newError(ErrPrecondition, "a completed simulation is required before assembling")
	}
	if walletAddress == "" {
		s.mu.Unlock()
		return wallet.Transaction{}, newError(ErrPrecondition, "a connected wallet is required before assembling")
	}
	result := s.Result
	assetA, assetB := s.AssetA, s.AssetB
	s.mu.Unlock()

	unitsA, okA := new(big.Int).SetString(result.TokenAUnits, 10)
	unitsB, okB := new(big.Int).SetString(result.TokenBUnits, 10)
	minLp, okLp := new(big.Int).SetString(result.MinLpUnits, 10)
	if !okA || !okB || !okLp {
		return wallet.Transaction{}, newError(ErrPrecondition, "simulation result is malformed")
	}

	meta, err := a.meta.GetRouterMetadata(ctx, result.RouterAddress)
	if err != nil {
		return wallet.Transaction{}, wrapError(ErrTransport,
			fmt.Sprintf("failed to resolve router metadata: %v", err), err)
	}

	contracts := ton.NewContracts(a.meta, meta)
	queryID := uint64(time.Now().Unix())

	// each leg references its counterpart so the router can match the
	// pair; a native counterpart is represented by the pTON master
	counterpartA := counterpartMaster(assetB, meta)
	counterpartB := counterpartMaster(assetA, meta)

	var messages [2]wallet.Message
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		msg, er := buildLeg(gctx, contracts, assetA, ton.ProvideArgs{
			UserWalletAddress: walletAddress,
			TokenMaster:       assetA.ContractAddress,
			OtherTokenMaster:  counterpartA,
			SendUnits:         unitsA,
			MinLpOut:          minLp,
			QueryID:           queryID,
		})
		if er != nil {
			return fmt.Errorf("failed to build leg A: %w", er)
		}
		messages[0] = msg
		return nil
	})
	g.Go(func() error {
		msg, er := buildLeg(gctx, contracts, assetB, ton.ProvideArgs{
			UserWalletAddress: walletAddress,
			TokenMaster:       assetB.ContractAddress,
			OtherTokenMaster:  counterpartB,
			SendUnits:         unitsB,
			MinLpOut:          minLp,
			QueryID:           queryID,
		})
		if er != nil {
			return fmt.Errorf("failed to build leg B: %w", er)
		}
		messages[1] = msg
		return nil
	})
	if err := g.Wait(); err != nil {
		return wallet.Transaction{}, wrapError(ErrTransport, err.Error(), err)
	}

	return wallet.Transaction{
		ValidUntil: time.Now().Add(validityWindow).Unix(),
		Messages:   messages[:],
	}, nil
}

func counterpartMaster(other *catalog.Asset, meta ton.RouterMetadata) string {
	if other.IsNative() {
		return meta.PtonMasterAddress
	}
	return other.ContractAddress
}

func buildLeg(ctx context.Context, contracts *ton.Contracts, asset *catalog.Asset, args ton.ProvideArgs) (wallet.Message, error) {
	if asset.IsNative() {
		return contracts.Proxy.ProvideLiquidityNativeTxParams(ctx, args)
	}
	return contracts.Router.ProvideLiquidityTokenTxParams(ctx, args)
}
