package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tempo-io/bridge-go/cmd"
	"github.com/tempo-io/bridge-go/config"
	"github.com/tempo-io/bridge-go/logconfig"
)

const (
	ENV_CONFIG_FILE_PATH = "BRIDGE_CONFIG"
)

func main() {
	logconfig.ConfigProductionLogger()

	// Tool to read environment variables
	viper.AutomaticEnv()

	// Accessing an environment variable of configuration file location.
	_config_file := viper.GetString(ENV_CONFIG_FILE_PATH)

	var cfg *config.BridgeConfig
	var err error
	switch {
	case _config_file == "":
		fmt.Println("BRIDGE_CONFIG not set, reading BRIDGE_* environment variables")
		cfg, err = config.LoadFromEnv()
	case !cmd.FileExists(_config_file):
		fmt.Printf("Bridge verifier configuration file not found: %s\n", _config_file)
		return
	default:
		fmt.Printf("Bridge verifier configuration file = %s\n", _config_file)
		cfg, err = config.Load(_config_file)
	}
	if err != nil {
		fmt.Printf("Error loading bridge verifier configuration: %v\n", err)
		return
	}

	fmt.Println("Starting bridge verifier... press Ctrl+C to kill it")
	// Start verifier and block.
	cmd.StartVerifierAndWait(cfg)
}
