/*
 * Copyright 2023 ICON Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/icon-project/btp2/common/cli"
	"github.com/icon-project/btp2/common/config"
	"github.com/icon-project/btp2/common/intconv"
	"github.com/icon-project/btp2/common/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/icon-project/abi-sdk/abi"
	"github.com/icon-project/abi-sdk/contract"
	"github.com/icon-project/abi-sdk/contract/eth"
)

type Config struct {
	config.FileConfig `json:",squash"`

	Network NetworkConfig `json:"network"`

	LogLevel     string            `json:"log_level"`
	ConsoleLevel string            `json:"console_level"`
	LogWriter    *log.WriterConfig `json:"log_writer,omitempty"`
}

type NetworkConfig struct {
	NetworkType string           `json:"type"`
	Endpoint    string           `json:"endpoint"`
	Options     contract.Options `json:"options,omitempty"`
}

func ReadConfig(filePath string, cfg *Config, vc *viper.Viper) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("fail to open config file=%s err=%+v", filePath, err)
	}
	defer f.Close()
	vc.SetConfigType("json")
	err = vc.ReadConfig(f)
	if err != nil {
		return fmt.Errorf("fail to read config file=%s err=%+v", filePath, err)
	}
	if err = vc.Unmarshal(cfg, cli.ViperDecodeOptJson); err != nil {
		return fmt.Errorf("fail to unmarshall config from env err=%+v", err)
	}
	cfg.FilePath, _ = filepath.Abs(filePath)
	return nil
}

func MustEncodeOptions(v interface{}) contract.Options {
	opt, err := contract.EncodeOptions(v)
	if err != nil {
		log.Panicf("%+v", err)
	}
	return opt
}

func SetupLogger(cfg *Config, modLevels map[string]string) (log.Logger, error) {
	l := log.GlobalLogger()
	if cfg.LogWriter != nil && len(cfg.LogWriter.Filename) > 0 {
		lwCfg := *cfg.LogWriter
		lwCfg.Filename = cfg.ResolveAbsolute(lwCfg.Filename)
		writer, err := log.NewWriter(&lwCfg)
		if err != nil {
			return nil, fmt.Errorf("fail to make writer err=%+v", err)
		}
		if err = l.SetFileWriter(writer); err != nil {
			return nil, fmt.Errorf("fail to set file logger err=%+v", err)
		}
	}
	if lv, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log_level=%s", cfg.LogLevel)
	} else {
		l.SetLevel(lv)
	}
	if lv, err := log.ParseLevel(cfg.ConsoleLevel); err != nil {
		return nil, fmt.Errorf("invalid console_level=%s", cfg.ConsoleLevel)
	} else {
		l.SetConsoleLevel(lv)
	}
	for mod, lvStr := range modLevels {
		if lv, err := log.ParseLevel(lvStr); err != nil {
			return nil, fmt.Errorf("invalid mod_level mod=%s level=%s", mod, lvStr)
		} else {
			l.SetModuleLevel(mod, lv)
		}
	}
	return l, nil
}

func NewAdaptor(cfg *Config, l log.Logger) (contract.Adaptor, error) {
	n := cfg.Network
	if len(n.Endpoint) == 0 {
		return nil, contract.ErrorCodeInvalidOption.Errorf("require network.endpoint")
	}
	return contract.NewAdaptor(n.NetworkType, n.Endpoint, n.Options, l)
}

func ParseBlock(s string) (*big.Int, error) {
	if len(s) == 0 || s == "latest" {
		return nil, nil
	}
	v, err := intconv.ParseInt(s, 64)
	if err != nil {
		return nil, err
	}
	return big.NewInt(v), nil
}

func NewNetworkCommand(parentCmd *cobra.Command, parentVc *viper.Viper) (*cobra.Command, *viper.Viper) {
	rootCmd, rootVc := cli.NewCommand(parentCmd, parentVc, "network", "Access network")
	cfg := &Config{}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := cli.ValidateFlagsWithViper(rootVc, cmd.Flags()); err != nil {
			return err
		}
		if cfgFilePath := rootVc.GetString("config"); cfgFilePath != "" {
			if err := ReadConfig(cfgFilePath, cfg, rootVc); err != nil {
				return err
			}
		}
		if err := rootVc.Unmarshal(cfg, cli.ViperDecodeOptJson); err != nil {
			return fmt.Errorf("fail to unmarshall config from env err=%+v", err)
		}
		return nil
	}
	rootPFlags := rootCmd.PersistentFlags()
	rootPFlags.StringP("config", "c", "", "Parsing configuration file")
	rootPFlags.String("log_level", "debug", "Global log level (trace,debug,info,warn,error,fatal,panic)")
	rootPFlags.String("console_level", "info", "Console log level (trace,debug,info,warn,error,fatal,panic)")
	rootPFlags.String("log_writer.filename", "", "Log file name (rotated files resides in same directory)")
	rootPFlags.Int("log_writer.maxsize", 100, "Maximum log file size in MiB")
	rootPFlags.Int("log_writer.maxage", 0, "Maximum age of log file in day")
	rootPFlags.Int("log_writer.maxbackups", 0, "Maximum number of backups")
	rootPFlags.Bool("log_writer.localtime", false, "Use localtime on rotated log file instead of UTC")
	rootPFlags.Bool("log_writer.compress", false, "Use gzip on rotated log file")
	//NetworkConfig
	rootPFlags.String("network.type", eth.NetworkTypeEth, "network type")
	rootPFlags.String("network.endpoint", "", "json-rpc endpoint")
	rootPFlags.StringToString("mod_level", nil, "Set console log level for specific module ('mod'='level',...)")
	rootPFlags.MarkHidden("mod_level")
	cli.BindPFlags(rootVc, rootPFlags)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "Print supported network types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.JsonPrettyPrintln(os.Stdout, contract.NetworkTypes())
		},
	})

	saveCmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Save configuration",
		Args:  cli.ArgsWithDefaultErrorFunc(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			saveFilePath := args[0]
			cfg.FilePath, _ = filepath.Abs(saveFilePath)
			cfg.BaseDir = cfg.ResolveRelative(cfg.BaseDir)
			if cfg.LogWriter != nil {
				cfg.LogWriter.Filename = cfg.ResolveRelative(cfg.LogWriter.Filename)
			}
			if example, err := cmd.Flags().GetBool("example"); err != nil {
				return err
			} else if example {
				codec := abi.DefaultOptions()
				cfg.Network = NetworkConfig{
					NetworkType: eth.NetworkTypeEth,
					Endpoint:    "http://localhost:8545",
					Options: MustEncodeOptions(eth.AdaptorOption{
						TransportLogLevel: contract.LogLevel(log.TraceLevel),
						Codec:             &codec,
						RetryAttempts:     eth.DefaultRetryAttempts,
						CallCacheSize:     1024,
						BlockRange:        eth.DefaultBlockRange,
					}),
				}
			}
			if err := cli.JsonPrettySaveFile(saveFilePath, 0644, cfg); err != nil {
				return err
			}
			cmd.Println("Save configuration to", saveFilePath)
			return nil
		},
	}
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().Bool("example", false, "example")

	callCmd := &cobra.Command{
		Use:   "call ADDRESS [ARGS...]",
		Short: "Call view function",
		Args:  cli.ArgsWithDefaultErrorFunc(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			modLevels, _ := cmd.Flags().GetStringToString("mod_level")
			l, err := SetupLogger(cfg, modLevels)
			if err != nil {
				return err
			}
			sig, _ := cmd.Flags().GetString("sig")
			f, err := contract.ParseFunction(sig)
			if err != nil {
				return err
			}
			if !common.IsHexAddress(args[0]) {
				return contract.ErrorCodeInvalidParam.Errorf("invalid address %s", args[0])
			}
			to := common.HexToAddress(args[0])
			tokens, err := ArgTokens(f.Inputs, args[1:])
			if err != nil {
				return err
			}
			block, err := ParseBlock(cmd.Flag("block").Value.String())
			if err != nil {
				return err
			}
			a, err := NewAdaptor(cfg, l)
			if err != nil {
				return err
			}
			ret, err := f.Call(context.Background(), a, to, block, tokens...)
			if err != nil {
				return err
			}
			return cli.JsonPrettyPrintln(os.Stdout, NewParams(f.Outputs, ret))
		},
	}
	rootCmd.AddCommand(callCmd)
	callFlags := callCmd.Flags()
	callFlags.String("sig", "", "function signature, 'balanceOf(address) returns (uint256)'")
	callFlags.String("block", "latest", "block number")
	cli.MarkAnnotationRequired(callFlags, "sig")

	blockCmd := &cobra.Command{
		Use:   "block",
		Short: "Print latest block number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modLevels, _ := cmd.Flags().GetStringToString("mod_level")
			l, err := SetupLogger(cfg, modLevels)
			if err != nil {
				return err
			}
			a, err := NewAdaptor(cfg, l)
			if err != nil {
				return err
			}
			height, err := a.BlockNumber(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(height)
			return nil
		},
	}
	rootCmd.AddCommand(blockCmd)

	NewMonitorCommand(rootCmd, cfg)
	return rootCmd, rootVc
}
