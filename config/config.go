// Runtime configuration for the verifier node, read with viper from a
// configuration file or from BRIDGE_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"

	"github.com/tempo-io/bridge-go/common"
	"github.com/tempo-io/bridge-go/originman"
)

// EnvPrefix is prepended (with an underscore) to every environment variable
// read by LoadFromEnv, e.g. BRIDGE_TEMPO_RPC_URL.
const EnvPrefix = "BRIDGE"

// BridgeConfig is the top-level configuration of a verifier node.
type BridgeConfig struct {
	// TempoRPCURL is the Tempo execution JSON-RPC endpoint, used for block
	// headers and receipts.
	TempoRPCURL string `mapstructure:"TEMPO_RPC_URL"`

	// TempoConsensusRPCURL is the Tempo consensus JSON-RPC endpoint serving
	// certified blocks.
	TempoConsensusRPCURL string `mapstructure:"TEMPO_CONSENSUS_RPC_URL"`

	// StateDBPath is the sqlite database file; empty selects an in-memory
	// database that is lost on shutdown.
	StateDBPath string `mapstructure:"STATE_DB_PATH"`

	// ValidatorKey is the attestation key in hex, 0x prefix optional. It also
	// signs origin-chain submissions for chains without a BROADCASTER_KEY.
	ValidatorKey string `mapstructure:"VALIDATOR_KEY"`

	// UseECDSAMode selects the ECDSA light-client signature format instead of
	// the default BLS aggregate. The formatter currently rejects it.
	UseECDSAMode bool `mapstructure:"USE_ECDSA_MODE"`

	// HTTPIP and HTTPPort locate the read-only status server.
	HTTPIP   string `mapstructure:"HTTP_IP"`
	HTTPPort string `mapstructure:"HTTP_PORT"`

	// Chains maps a chain label (lowercase, e.g. "anvil") to the settings of
	// that origin chain.
	Chains map[string]ChainConfig `mapstructure:"CHAINS"`
}

// ChainConfig holds the per-origin-chain settings.
type ChainConfig struct {
	// ChainID of the origin chain.
	ChainID uint64 `mapstructure:"CHAIN_ID"`

	// RPCURL is the primary JSON-RPC endpoint.
	RPCURL string `mapstructure:"RPC_URL"`

	// SecondaryRPCURL is an optional endpoint cross-checked against the
	// primary before every submission.
	SecondaryRPCURL string `mapstructure:"SECONDARY_RPC_URL"`

	// RequireQuorum makes a primary/secondary hash mismatch a hard failure.
	RequireQuorum bool `mapstructure:"REQUIRE_QUORUM"`

	// LightClientAddress is the deployed Tempo light client contract, hex.
	LightClientAddress string `mapstructure:"LIGHT_CLIENT_ADDRESS"`

	// EscrowAddress is the deployed stablecoin escrow contract, hex.
	EscrowAddress string `mapstructure:"ESCROW_ADDRESS"`

	// BroadcasterKey optionally signs this chain's transactions instead of
	// the validator key.
	BroadcasterKey string `mapstructure:"BROADCASTER_KEY"`
}

// Load reads and validates a configuration file. The format is inferred from
// the file extension.
func Load(path string) (*BridgeConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	cfg := &BridgeConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv builds a configuration from BRIDGE_-prefixed environment
// variables. Only scalar settings have environment forms; origin chains
// require a configuration file.
func LoadFromEnv() (*BridgeConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	cfg := &BridgeConfig{
		TempoRPCURL:          v.GetString("TEMPO_RPC_URL"),
		TempoConsensusRPCURL: v.GetString("TEMPO_CONSENSUS_RPC_URL"),
		StateDBPath:          v.GetString("STATE_DB_PATH"),
		ValidatorKey:         v.GetString("VALIDATOR_KEY"),
		UseECDSAMode:         v.GetBool("USE_ECDSA_MODE"),
		HTTPIP:               v.GetString("HTTP_IP"),
		HTTPPort:             v.GetString("HTTP_PORT"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that everything needed to run is present. Chains may be
// empty, but a configured chain must be complete.
func (c *BridgeConfig) Validate() error {
	if c.TempoRPCURL == "" {
		return errors.New("TEMPO_RPC_URL is required")
	}
	if c.TempoConsensusRPCURL == "" {
		return errors.New("TEMPO_CONSENSUS_RPC_URL is required")
	}
	if c.ValidatorKey == "" {
		return errors.New("VALIDATOR_KEY is required")
	}
	for name, chain := range c.Chains {
		if chain.ChainID == 0 {
			return fmt.Errorf("chain %s: CHAIN_ID is required", name)
		}
		if chain.RPCURL == "" {
			return fmt.Errorf("chain %s: RPC_URL is required", name)
		}
		if !ethcommon.IsHexAddress(chain.LightClientAddress) {
			return fmt.Errorf("chain %s: LIGHT_CLIENT_ADDRESS %q is not a hex address", name, chain.LightClientAddress)
		}
		if !ethcommon.IsHexAddress(chain.EscrowAddress) {
			return fmt.Errorf("chain %s: ESCROW_ADDRESS %q is not a hex address", name, chain.EscrowAddress)
		}
	}
	return nil
}

// OriginConfig assembles the origin-chain client configuration for the named
// chain. The validator key signs submissions unless the chain configures its
// own broadcaster key.
func (c *BridgeConfig) OriginConfig(name string) (*originman.Config, error) {
	chain, ok := c.Chains[name]
	if !ok {
		return nil, fmt.Errorf("chain %s is not configured", name)
	}
	return &originman.Config{
		ChainName:          name,
		ChainID:            chain.ChainID,
		RPCURL:             chain.RPCURL,
		SecondaryRPCURL:    chain.SecondaryRPCURL,
		RequireQuorum:      chain.RequireQuorum,
		LightClientAddress: ethcommon.HexToAddress(chain.LightClientAddress),
		EscrowAddress:      ethcommon.HexToAddress(chain.EscrowAddress),
		PrivateKey:         c.ValidatorKey,
		BroadcasterKey:     chain.BroadcasterKey,
	}, nil
}

// DefaultTestConfig targets a local anvil node with the stock dev account and
// the deterministic first two contract deployments.
func DefaultTestConfig() *BridgeConfig {
	return &BridgeConfig{
		TempoRPCURL:          "http://127.0.0.1:8546",
		TempoConsensusRPCURL: "http://127.0.0.1:26657",
		ValidatorKey:         "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
		HTTPIP:               "127.0.0.1",
		HTTPPort:             "8080",
		Chains: map[string]ChainConfig{
			"anvil": {
				ChainID:            common.AnvilChainID,
				RPCURL:             "http://127.0.0.1:8545",
				LightClientAddress: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
				EscrowAddress:      "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512",
			},
		},
	}
}
