package ton

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// testAddr derives a syntactically valid bounceable address from a
// single seed byte.
func testAddr(seed byte) string {
	data := make([]byte, 32)
	for i := range data {
		data[i] = seed
	}
	return address.NewAddress(0, 0, data).String()
}

// fakeResolver maps "master|owner" to a jetton wallet address.
type fakeResolver struct {
	wallets map[string]string
	calls   []string
}

func (f *fakeResolver) GetJettonWalletAddress(_ context.Context, master, owner string) (string, error) {
	key := master + "|" + owner
	f.calls = append(f.calls, key)
	addr, ok := f.wallets[key]
	if !ok {
		return "", fmt.Errorf("no wallet for %s", key)
	}
	return addr, nil
}

func TestProvideLiquidityTokenTxParams(t *testing.T) {
	var (
		user        = testAddr(0x01)
		tokenMaster = testAddr(0x02)
		otherMaster = testAddr(0x03)
		router      = testAddr(0x04)
		pton        = testAddr(0x05)
		userWallet  = testAddr(0x06)
		otherWallet = testAddr(0x07)
	)

	api := &fakeResolver{wallets: map[string]string{
		tokenMaster + "|" + user:   userWallet,
		otherMaster + "|" + router: otherWallet,
	}}
	contracts := NewContracts(api, RouterMetadata{RouterAddress: router, PtonMasterAddress: pton})

	msg, err := contracts.Router.ProvideLiquidityTokenTxParams(context.Background(), ProvideArgs{
		UserWalletAddress: user,
		TokenMaster:       tokenMaster,
		OtherTokenMaster:  otherMaster,
		SendUnits:         big.NewInt(1_500_000_000),
		MinLpOut:          big.NewInt(1_695_000_000),
		QueryID:           42,
	})
	require.NoError(t, err)

	// funds leave through the user's own jetton wallet
	assert.Equal(t, userWallet, msg.Address)
	assert.Equal(t, jettonProvideGas.String(), msg.Amount)

	raw, err := base64.StdEncoding.DecodeString(msg.Payload)
	require.NoError(t, err)
	body, err := cell.FromBOC(raw)
	require.NoError(t, err)

	s := body.BeginParse()
	op, err := s.LoadUInt(32)
	require.NoError(t, err)
	assert.Equal(t, uint64(opJettonTransfer), op)

	queryID, err := s.LoadUInt(64)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), queryID)

	amount, err := s.LoadBigCoins()
	require.NoError(t, err)
	assert.Equal(t, "1500000000", amount.String())

	dest, err := s.LoadAddr()
	require.NoError(t, err)
	assert.Equal(t, router, dest.String())
}

func TestProvideLiquidityTokenTxParams_ForwardBodyReferencesCounterpart(t *testing.T) {
	var (
		user        = testAddr(0x01)
		tokenMaster = testAddr(0x02)
		otherMaster = testAddr(0x03)
		router      = testAddr(0x04)
		userWallet  = testAddr(0x06)
		otherWallet = testAddr(0x07)
	)

	api := &fakeResolver{wallets: map[string]string{
		tokenMaster + "|" + user:   userWallet,
		otherMaster + "|" + router: otherWallet,
	}}
	contracts := NewContracts(api, RouterMetadata{RouterAddress: router, PtonMasterAddress: testAddr(0x05)})

	msg, err := contracts.Router.ProvideLiquidityTokenTxParams(context.Background(), ProvideArgs{
		UserWalletAddress: user,
		TokenMaster:       tokenMaster,
		OtherTokenMaster:  otherMaster,
		SendUnits:         big.NewInt(100),
		MinLpOut:          big.NewInt(90),
	})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(msg.Payload)
	require.NoError(t, err)
	body, err := cell.FromBOC(raw)
	require.NoError(t, err)

	s := body.BeginParse()
	_, err = s.LoadUInt(32) // op
	require.NoError(t, err)
	_, err = s.LoadUInt(64) // query id
	require.NoError(t, err)
	_, err = s.LoadBigCoins() // amount
	require.NoError(t, err)
	_, err = s.LoadAddr() // destination
	require.NoError(t, err)
	_, err = s.LoadAddr() // response destination
	require.NoError(t, err)
	_, err = s.LoadBoolBit() // custom payload flag
	require.NoError(t, err)
	_, err = s.LoadBigCoins() // forward ton amount
	require.NoError(t, err)
	_, err = s.LoadBoolBit() // forward payload in ref
	require.NoError(t, err)

	forward, err := s.LoadRef()
	require.NoError(t, err)

	op, err := forward.LoadUInt(32)
	require.NoError(t, err)
	assert.Equal(t, uint64(opProvideLiquidity), op)

	counterpart, err := forward.LoadAddr()
	require.NoError(t, err)
	assert.Equal(t, otherWallet, counterpart.String())

	minLp, err := forward.LoadBigCoins()
	require.NoError(t, err)
	assert.Equal(t, "90", minLp.String())
}

func TestProvideLiquidityNativeTxParams(t *testing.T) {
	var (
		user        = testAddr(0x01)
		otherMaster = testAddr(0x03)
		router      = testAddr(0x04)
		pton        = testAddr(0x05)
		ptonWallet  = testAddr(0x08)
		otherWallet = testAddr(0x07)
	)

	api := &fakeResolver{wallets: map[string]string{
		pton + "|" + router:        ptonWallet,
		otherMaster + "|" + router: otherWallet,
	}}
	contracts := NewContracts(api, RouterMetadata{RouterAddress: router, PtonMasterAddress: pton})

	send := big.NewInt(2_000_000_000)
	msg, err := contracts.Proxy.ProvideLiquidityNativeTxParams(context.Background(), ProvideArgs{
		UserWalletAddress: user,
		OtherTokenMaster:  otherMaster,
		SendUnits:         send,
		MinLpOut:          big.NewInt(1_900_000_000),
	})
	require.NoError(t, err)

	// native coins route through the router's pTON wallet
	assert.Equal(t, ptonWallet, msg.Address)

	// attached value carries the provisioned amount on top of gas
	want := new(big.Int).Add(send, nativeProvideGas)
	assert.Equal(t, want.String(), msg.Amount)
	assert.NotEmpty(t, msg.Payload)
}

func TestProvideLiquidityNativeTxParams_ResolverFailure(t *testing.T) {
	api := &fakeResolver{wallets: map[string]string{}}
	contracts := NewContracts(api, RouterMetadata{
		RouterAddress:     testAddr(0x04),
		PtonMasterAddress: testAddr(0x05),
	})

	_, err := contracts.Proxy.ProvideLiquidityNativeTxParams(context.Background(), ProvideArgs{
		UserWalletAddress: testAddr(0x01),
		OtherTokenMaster:  testAddr(0x03),
		SendUnits:         big.NewInt(1),
		MinLpOut:          big.NewInt(1),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pTON wallet")
}
