// Verifier = tempo-side clients + per-chain origin clients + state + http reporter.
// All components are configured via the config package.

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"

	"github.com/tempo-io/bridge-go/config"
	"github.com/tempo-io/bridge-go/consensus"
	"github.com/tempo-io/bridge-go/originman"
	"github.com/tempo-io/bridge-go/proof"
	"github.com/tempo-io/bridge-go/reporter"
	"github.com/tempo-io/bridge-go/signer"
	"github.com/tempo-io/bridge-go/state"
)

// Verifier holds the objects that consist of the bridge verifier.
type Verifier struct {
	MyState     *state.Manager
	MyConsensus *consensus.Client
	MyProofGen  *proof.Generator
	MySigner    *signer.BridgeSigner
	MyOrigins   map[string]*originman.OriginClient
	MyReporter  *reporter.HttpReporter

	useECDSAMode bool
}

// NewVerifier creates every component of the verifier from cfg.
func NewVerifier(cfg *config.BridgeConfig) (*Verifier, error) {
	// 1) ledger of signed deposits, processed burns and watermarks
	var myState *state.Manager
	var err error
	if cfg.StateDBPath == "" {
		logger.Warn("STATE_DB_PATH is empty, state will not survive a restart")
		myState, err = state.NewInMemory()
	} else {
		myState, err = state.NewPersistent(cfg.StateDBPath)
	}
	if err != nil {
		logger.Fatalf("failed to open state db: %v", err)
		return nil, err
	}

	// 2) consensus client for finalization certificates
	myConsensus, err := consensus.Dial(cfg.TempoConsensusRPCURL)
	if err != nil {
		logger.Fatalf("failed to dial consensus rpc %s: %v", cfg.TempoConsensusRPCURL, err)
		return nil, err
	}

	// 3) proof generator over the tempo execution rpc
	myProofGen, err := proof.DialGenerator(cfg.TempoRPCURL)
	if err != nil {
		logger.Fatalf("failed to dial tempo rpc %s: %v", cfg.TempoRPCURL, err)
		return nil, err
	}

	// 4) validator attestation key
	mySigner, err := signer.FromHex(cfg.ValidatorKey)
	if err != nil {
		logger.Fatalf("failed to load validator key: %v", err)
		return nil, err
	}
	logger.WithField("address", mySigner.Address().Hex()).Info("Validator address")

	// 5) one origin client per configured chain
	myOrigins := make(map[string]*originman.OriginClient, len(cfg.Chains))
	for name := range cfg.Chains {
		occfg, err := cfg.OriginConfig(name)
		if err != nil {
			logger.Fatalf("failed to assemble origin chain config %s: %v", name, err)
			return nil, err
		}
		oc, err := originman.New(occfg)
		if err != nil {
			logger.Fatalf("failed to create origin chain client %s: %v", name, err)
			return nil, err
		}
		logger.WithFields(logger.Fields{
			"chain":       name,
			"submitter":   oc.SubmitterAddress().Hex(),
			"broadcaster": oc.BroadcasterAddress().Hex(),
		}).Info("Origin chain client ready")
		myOrigins[name] = oc
	}

	// *** Setup a http server to report status ***
	httpServer := reporter.NewHttpReporter(cfg.HTTPIP, cfg.HTTPPort, myState)
	// Turn on the http server
	go httpServer.Run()

	return &Verifier{
		MyState:      myState,
		MyConsensus:  myConsensus,
		MyProofGen:   myProofGen,
		MySigner:     mySigner,
		MyOrigins:    myOrigins,
		MyReporter:   httpServer,
		useECDSAMode: cfg.UseECDSAMode,
	}, nil
}

// FormatCertificateSignature renders a certificate's signature for the light
// client submitHeader call in the configured signature mode.
func (v *Verifier) FormatCertificateSignature(cert *consensus.CertifiedBlock) ([]byte, error) {
	return consensus.FormatSignaturesForLightClient(cert, v.useECDSAMode)
}

// Close releases the state db and the consensus rpc connection.
func (v *Verifier) Close() {
	v.MyConsensus.Close()
	v.MyState.Close()
}

// Create, then start the verifier and wait.
// The watcher loops that drive deposits and burns live outside this module;
// the verifier serves its components (and the http reporter) until stopped.
// Press Ctrl-C to kill it.
func StartVerifierAndWait(cfg *config.BridgeConfig) {
	v, err := NewVerifier(cfg)
	if err != nil {
		logger.Fatalf("failed to create verifier: %v", err)
		return
	}
	defer v.Close()

	// Set up a signal channel to listen for Ctrl-C (SIGINT) or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	sig := <-sigCh
	fmt.Printf("Received signal: %v, shutting down...\n", sig)
}
