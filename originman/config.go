package originman

import ethcommon "github.com/ethereum/go-ethereum/common"

type Config struct {
	// ChainName is a human-readable label used in logs, e.g. "sepolia".
	ChainName string

	// ChainID of the origin chain; transactions are signed against it.
	ChainID uint64

	// RPCURL is the primary JSON-RPC endpoint.
	RPCURL string

	// SecondaryRPCURL is an optional read-only endpoint used to cross-check
	// block hashes before every submission.
	SecondaryRPCURL string

	// RequireQuorum makes a primary/secondary hash mismatch a hard failure
	// instead of a logged warning.
	RequireQuorum bool

	// LightClientAddress is the deployed Tempo light client contract.
	LightClientAddress ethcommon.Address

	// EscrowAddress is the deployed stablecoin escrow contract.
	EscrowAddress ethcommon.Address

	// PrivateKey is the submitter key in hex (0x prefix optional).
	PrivateKey string

	// BroadcasterKey optionally signs the outgoing transactions instead of
	// PrivateKey, keeping the validator key off the broadcast path.
	BroadcasterKey string
}
