package originman

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	logger "github.com/sirupsen/logrus"
)

const lightClientABIJSON = `[
	{"type":"function","name":"submitHeader","stateMutability":"nonpayable","inputs":[
		{"name":"height","type":"uint64"},
		{"name":"parentHash","type":"bytes32"},
		{"name":"stateRoot","type":"bytes32"},
		{"name":"receiptsRoot","type":"bytes32"},
		{"name":"epoch","type":"uint64"},
		{"name":"signature","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"isHeaderFinalized","stateMutability":"view","inputs":[
		{"name":"blockNumber","type":"uint64"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"latestFinalizedBlock","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"uint64"}]}
]`

const escrowABIJSON = `[
	{"type":"function","name":"unlockWithProof","stateMutability":"nonpayable","inputs":[
		{"name":"burnId","type":"bytes32"},
		{"name":"recipient","type":"address"},
		{"name":"amount","type":"uint256"},
		{"name":"proof","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"isUnlocked","stateMutability":"view","inputs":[
		{"name":"burnId","type":"bytes32"}],"outputs":[{"name":"","type":"bool"}]}
]`

var (
	lightClientABI = mustParseABI(lightClientABIJSON)
	escrowABI      = mustParseABI(escrowABIJSON)
)

func mustParseABI(json string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(json))
	if err != nil {
		logger.Fatal(err)
	}
	return parsed
}
