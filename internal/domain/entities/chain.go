package entities

// BalanceResult is the outcome of a token balance read. Unavailable marks
// the benign "0" produced when the RPC endpoint could not be reached, so
// callers can tell an empty wallet from a dead endpoint.
type BalanceResult struct {
	Amount      string `json:"amount"`
	Unavailable bool   `json:"-"`
}

// TransferEvent is a decoded ERC-20 Transfer log, amount already scaled by
// the token's decimals
type TransferEvent struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// TransactionDetail is the best-effort display enrichment of an on-chain
// transaction
type TransactionDetail struct {
	Hash        string `json:"hash"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	BlockNumber uint64 `json:"block_number"`
	Status      string `json:"status"`
	Timestamp   int64  `json:"timestamp,omitempty"`
}

// ChainHealth reports RPC endpoint reachability
type ChainHealth struct {
	Connected bool   `json:"connected"`
	Network   string `json:"network"`
}

// DashboardStats aggregates live balance with ledger volume and counts
type DashboardStats struct {
	TotalBalance     string  `json:"total_balance"`
	MonthlyVolume    string  `json:"monthly_volume"`
	MonthlyChangePct float64 `json:"monthly_change_pct"`
	ReceivedCount    int64   `json:"received_count"`
	ReceivedAmount   string  `json:"received_amount"`
	SentCount        int64   `json:"sent_count"`
	SentAmount       string  `json:"sent_amount"`
}
