package catalog

// Kind tags how an asset moves value on chain
type Kind string

const (
	// KindNative is the chain's own coin (TON)
	KindNative Kind = "native"
	// KindJetton is a contract-issued token
	KindJetton Kind = "jetton"
)

// Asset is one tradable token as reported by the catalog service.
// Assets are immutable once fetched; the provisioning flow holds
// references and never mutates them.
type Asset struct {
	ContractAddress string `json:"contract_address"`
	Kind            Kind   `json:"kind"`
	Symbol          string `json:"symbol"`
	DisplayName     string `json:"display_name"`
	// Decimals is nil when the catalog has no precision metadata
	// for the asset; consumers fall back to 9.
	Decimals *int   `json:"decimals,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// IsNative reports whether the asset is the chain's native coin.
func (a *Asset) IsNative() bool {
	return a != nil && a.Kind == KindNative
}
