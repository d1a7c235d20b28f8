// Package config loads cmd/jitcompress's TOML configuration, the same way
// go-ethereum's cmd/geth loads config.toml with naoina/toml: a plain struct
// decoded directly from the file, no generated accessors.
package config

import (
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/naoina/toml"
)

// Config overrides the fixed wire values spec.md §6 otherwise hard-codes,
// for deployments against a non-mainnet decompressor contract (a testnet
// with its own decompressor/Multicall3 addresses, or different size
// thresholds tuned for a different fee market).
type Config struct {
	DecompressorAddress common.Address `toml:"decompressor-address"`
	Multicall3Address   common.Address `toml:"multicall3-address"`
	MinDataHexLen        int `toml:"min-data-hex-len"`
	JITLowBound          int `toml:"jit-low-bound"`
	JITHighBound         int `toml:"jit-high-bound"`
}

// Default mirrors spec.md §6's fixed constants, used whenever no config
// file is given.
func Default() Config {
	return Config{
		DecompressorAddress: common.HexToAddress("0x00000000000000000000000000000000000000e0"),
		Multicall3Address:   common.HexToAddress("0xca11bde05977b3631167028862be2a173976ca11"),
		MinDataHexLen:       1150,
		JITLowBound:         3000,
		JITHighBound:        8000,
	}
}

// Load reads and decodes a TOML config file at path, starting from Default
// so a config file only needs to specify the fields it overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
