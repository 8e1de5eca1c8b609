package state

type JSONSignedDeposit struct {
	RequestID       string `json:"request_id"`
	OriginChainID   uint64 `json:"origin_chain_id"`
	OriginTxHash    string `json:"origin_tx_hash"`
	TempoRecipient  string `json:"tempo_recipient"`
	Amount          uint64 `json:"amount"`
	SignatureTxHash string `json:"signature_tx_hash"`
	SignedAt        int64  `json:"signed_at"`
	Finalized       bool   `json:"finalized"`
	FinalizedAt     int64  `json:"finalized_at,omitempty"`
}

type JSONProcessedBurn struct {
	BurnID           string `json:"burn_id"`
	OriginChainID    uint64 `json:"origin_chain_id"`
	OriginRecipient  string `json:"origin_recipient"`
	Amount           uint64 `json:"amount"`
	TempoBlockNumber uint64 `json:"tempo_block_number"`
	UnlockTxHash     string `json:"unlock_tx_hash,omitempty"`
	ProcessedAt      int64  `json:"processed_at"`
}

// Stats is a point-in-time summary of the ledger, served by the reporter.
type Stats struct {
	SignedDeposits    int64  `json:"signed_deposits"`
	FinalizedDeposits int64  `json:"finalized_deposits"`
	ProcessedBurns    int64  `json:"processed_burns"`
	TempoBlock        uint64 `json:"tempo_block"`
}
