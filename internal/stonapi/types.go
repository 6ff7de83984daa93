package stonapi

// ProvisionType selects the simulation code path on the quote service.
type ProvisionType string

const (
	// ProvisionInitial assumes a brand-new pool for the pair.
	ProvisionInitial ProvisionType = "Initial"
	// ProvisionBalanced adds to an existing pool at its current ratio.
	ProvisionBalanced ProvisionType = "Balanced"
)

// SimulateRequest describes one liquidity-provision simulation attempt.
// Initial carries both legs' base units; Balanced carries leg A only
// (leg B is implied by the existing pool's ratio) plus the pool address.
type SimulateRequest struct {
	ProvisionType     ProvisionType
	TokenA            string
	TokenB            string
	TokenAUnits       string
	TokenBUnits       string
	PoolAddress       string
	SlippageTolerance string
	// WalletAddress may be empty for a pure simulation; the service
	// tolerates unconnected callers.
	WalletAddress string
}

// SimulateResponse is the quote service's view of the resulting pool
// state. Produced once per successful attempt, never mutated.
type SimulateResponse struct {
	ProvisionType    string `json:"provision_type"`
	PoolAddress      string `json:"pool_address"`
	RouterAddress    string `json:"router_address"`
	TokenA           string `json:"token_a"`
	TokenB           string `json:"token_b"`
	TokenAUnits      string `json:"token_a_units"`
	TokenBUnits      string `json:"token_b_units"`
	LpAccountAddress string `json:"lp_account_address"`
	EstLpUnits       string `json:"estimated_lp_units"`
	MinLpUnits       string `json:"min_lp_units"`
	PriceImpact      string `json:"price_impact"`
}
