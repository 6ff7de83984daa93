package ton

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/mrruby/stonfi-liquidity-app/internal/wallet"
)

const (
	opJettonTransfer   = 0x0f8a7ea5
	opProvideLiquidity = 0xfcf9e58f
)

// Gas attached to provisioning transfers. The forward amount covers
// the router's own processing of the provide-liquidity notification.
var (
	jettonProvideGas        = tlb.MustFromTON("0.3").Nano()
	jettonProvideForwardGas = tlb.MustFromTON("0.24").Nano()
	nativeProvideGas        = tlb.MustFromTON("0.26").Nano()
)

// WalletResolver resolves jetton wallet addresses; satisfied by Client.
type WalletResolver interface {
	GetJettonWalletAddress(ctx context.Context, master, owner string) (string, error)
}

// ProvideArgs carries one leg of a liquidity provision.
type ProvideArgs struct {
	UserWalletAddress string
	// TokenMaster is this leg's jetton master; unused on the native path.
	TokenMaster string
	// OtherTokenMaster is the counterpart leg's master (the pTON
	// master when the counterpart is native), so the router can match
	// the pair atomically.
	OtherTokenMaster string
	SendUnits        *big.Int
	MinLpOut         *big.Int
	QueryID          uint64
}

// Contracts bundles the two companion handles derived from router
// metadata.
type Contracts struct {
	Router *Router
	Proxy  *PtonProxy
}

// NewContracts builds the Router and wrapped-native proxy handles for
// one router's metadata.
func NewContracts(api WalletResolver, meta RouterMetadata) *Contracts {
	return &Contracts{
		Router: &Router{api: api, meta: meta},
		Proxy:  &PtonProxy{api: api, meta: meta},
	}
}

// Router builds transfer parameters for jetton legs: a jetton-transfer
// message on the user's jetton wallet, carrying the provide-liquidity
// body as forward payload for the router.
type Router struct {
	api  WalletResolver
	meta RouterMetadata
}

func (r *Router) ProvideLiquidityTokenTxParams(ctx context.Context, args ProvideArgs) (wallet.Message, error) {
	userJettonWallet, err := r.api.GetJettonWalletAddress(ctx, args.TokenMaster, args.UserWalletAddress)
	if err != nil {
		return wallet.Message{}, fmt.Errorf("failed to resolve user jetton wallet: %w", err)
	}

	forward, err := routerForwardBody(ctx, r.api, r.meta, args)
	if err != nil {
		return wallet.Message{}, err
	}

	dest, err := address.ParseAddr(userJettonWallet)
	if err != nil {
		return wallet.Message{}, fmt.Errorf("failed to parse jetton wallet address: %w", err)
	}
	routerAddr, err := address.ParseAddr(r.meta.RouterAddress)
	if err != nil {
		return wallet.Message{}, fmt.Errorf("failed to parse router address: %w", err)
	}
	userAddr, err := address.ParseAddr(args.UserWalletAddress)
	if err != nil {
		return wallet.Message{}, fmt.Errorf("failed to parse user wallet address: %w", err)
	}

	body := cell.BeginCell().
		MustStoreUInt(opJettonTransfer, 32).
		MustStoreUInt(args.QueryID, 64).
		MustStoreBigCoins(args.SendUnits).
		MustStoreAddr(routerAddr).
		MustStoreAddr(userAddr).
		MustStoreBoolBit(false). // no custom payload
		MustStoreBigCoins(jettonProvideForwardGas).
		MustStoreBoolBit(true). // forward payload as ref
		MustStoreRef(forward).
		EndCell()

	return wallet.Message{
		Address: dest.String(),
		Amount:  jettonProvideGas.String(),
		Payload: base64.StdEncoding.EncodeToString(body.ToBOC()),
	}, nil
}

// PtonProxy builds transfer parameters for the native leg. Native
// coins cannot carry the provide-liquidity payload directly, so the
// transfer is routed through the router's wallet of the wrapped-native
// (pTON) master, with the provisioned amount attached on top of gas.
type PtonProxy struct {
	api  WalletResolver
	meta RouterMetadata
}

func (p *PtonProxy) ProvideLiquidityNativeTxParams(ctx context.Context, args ProvideArgs) (wallet.Message, error) {
	routerPtonWallet, err := p.api.GetJettonWalletAddress(ctx, p.meta.PtonMasterAddress, p.meta.RouterAddress)
	if err != nil {
		return wallet.Message{}, fmt.Errorf("failed to resolve router pTON wallet: %w", err)
	}

	forward, err := routerForwardBody(ctx, p.api, p.meta, args)
	if err != nil {
		return wallet.Message{}, err
	}

	dest, err := address.ParseAddr(routerPtonWallet)
	if err != nil {
		return wallet.Message{}, fmt.Errorf("failed to parse pTON wallet address: %w", err)
	}
	routerAddr, err := address.ParseAddr(p.meta.RouterAddress)
	if err != nil {
		return wallet.Message{}, fmt.Errorf("failed to parse router address: %w", err)
	}
	userAddr, err := address.ParseAddr(args.UserWalletAddress)
	if err != nil {
		return wallet.Message{}, fmt.Errorf("failed to parse user wallet address: %w", err)
	}

	body := cell.BeginCell().
		MustStoreUInt(opJettonTransfer, 32).
		MustStoreUInt(args.QueryID, 64).
		MustStoreBigCoins(args.SendUnits).
		MustStoreAddr(routerAddr).
		MustStoreAddr(userAddr).
		MustStoreBoolBit(false).
		MustStoreBigCoins(jettonProvideForwardGas).
		MustStoreBoolBit(true).
		MustStoreRef(forward).
		EndCell()

	attached := new(big.Int).Add(args.SendUnits, nativeProvideGas)

	return wallet.Message{
		Address: dest.String(),
		Amount:  attached.String(),
		Payload: base64.StdEncoding.EncodeToString(body.ToBOC()),
	}, nil
}

// routerForwardBody builds the provide-liquidity notification the
// router consumes: the counterpart leg's router-side jetton wallet and
// the shared minimum-LP floor.
func routerForwardBody(ctx context.Context, api WalletResolver, meta RouterMetadata, args ProvideArgs) (*cell.Cell, error) {
	routerOtherWallet, err := api.GetJettonWalletAddress(ctx, args.OtherTokenMaster, meta.RouterAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve counterpart router wallet: %w", err)
	}
	otherAddr, err := address.ParseAddr(routerOtherWallet)
	if err != nil {
		return nil, fmt.Errorf("failed to parse counterpart wallet address: %w", err)
	}

	return cell.BeginCell().
		MustStoreUInt(opProvideLiquidity, 32).
		MustStoreAddr(otherAddr).
		MustStoreBigCoins(args.MinLpOut).
		EndCell(), nil
}
