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
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/icon-project/btp2/common/cli"
	"github.com/spf13/cobra"

	"github.com/icon-project/abi-sdk/abi"
	"github.com/icon-project/abi-sdk/contract"
)

// LogFromFlags builds a log from --address, --topics and --data.
func LogFromFlags(cmd *cobra.Command) (*contract.Log, error) {
	l := &contract.Log{}
	if addr, _ := cmd.Flags().GetString("address"); len(addr) > 0 {
		if !common.IsHexAddress(addr) {
			return nil, contract.ErrorCodeInvalidParam.Errorf("invalid address %s", addr)
		}
		l.Address = common.HexToAddress(addr)
	}
	var err error
	topics, _ := cmd.Flags().GetStringSlice("topics")
	if l.Topics, err = ParseHashes(topics); err != nil {
		return nil, err
	}
	if data, _ := cmd.Flags().GetString("data"); len(data) > 0 {
		if l.Data, err = DecodeHex(data); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func AddCodecCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "selector SIGNATURE",
		Short: "Print function selector",
		Args:  cli.ArgsWithDefaultErrorFunc(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := contract.ParseFunction(args[0])
			if err != nil {
				return err
			}
			fmt.Println(f.Selector, f.Signature())
			return nil
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "topic SIGNATURE",
		Short: "Print event topic",
		Args:  cli.ArgsWithDefaultErrorFunc(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := contract.ParseEvent(args[0])
			if err != nil {
				return err
			}
			fmt.Println(e.Topic0.Hex(), e.Signature())
			return nil
		},
	})

	encodeCmd := &cobra.Command{
		Use:   "encode [ARGS...]",
		Short: "Encode call input of function or values of types",
		Long: "Encode call input of function or values of types.\n" +
			"Arrays and tuples are given as json array, integers as decimal or 0x prefixed hex.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sig, _ := cmd.Flags().GetString("sig"); len(sig) > 0 {
				f, err := contract.ParseFunction(sig)
				if err != nil {
					return err
				}
				tokens, err := ArgTokens(f.Inputs, args)
				if err != nil {
					return err
				}
				b, err := f.Encode(tokens...)
				if err != nil {
					return err
				}
				fmt.Println(hexutil.Encode(b))
				return nil
			}
			s, _ := cmd.Flags().GetString("types")
			types, err := abi.ParseTypes(s)
			if err != nil {
				return err
			}
			tokens, err := ArgTokens(types, args)
			if err != nil {
				return err
			}
			b, err := abi.Pack(types, tokens)
			if err != nil {
				return err
			}
			fmt.Println(hexutil.Encode(b))
			return nil
		},
	}
	rootCmd.AddCommand(encodeCmd)
	encodeFlags := encodeCmd.Flags()
	encodeFlags.String("sig", "", "function signature, 'transfer(address,uint256)'")
	encodeFlags.String("types", "", "parameter types, '(address,uint256)'")
	encodeCmd.MarkFlagsMutuallyExclusive("sig", "types")

	decodeCmd := &cobra.Command{
		Use:   "decode HEX",
		Short: "Decode values of types",
		Args:  cli.ArgsWithDefaultErrorFunc(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _ := cmd.Flags().GetString("types")
			types, err := abi.ParseTypes(s)
			if err != nil {
				return err
			}
			b, err := DecodeHex(args[0])
			if err != nil {
				return err
			}
			lenient, _ := cmd.Flags().GetBool("lenient")
			tokens, err := abi.NewDecoder(CodecOptions(lenient)).Decode(types, b)
			if err != nil {
				return err
			}
			return cli.JsonPrettyPrintln(os.Stdout, NewParams(types, tokens))
		},
	}
	rootCmd.AddCommand(decodeCmd)
	decodeFlags := decodeCmd.Flags()
	decodeFlags.String("types", "", "parameter types, '(address,uint256)'")
	decodeFlags.Bool("lenient", false, "accept dirty address padding and bool words")
	cli.MarkAnnotationRequired(decodeFlags, "types")

	decodeCallCmd := &cobra.Command{
		Use:   "decode-call HEX",
		Short: "Decode call input or return data of function",
		Args:  cli.ArgsWithDefaultErrorFunc(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := DecodeHex(args[0])
			if err != nil {
				return err
			}
			lenient, _ := cmd.Flags().GetBool("lenient")
			output, _ := cmd.Flags().GetBool("output")
			sig, _ := cmd.Flags().GetString("sig")
			if len(sig) == 0 {
				bindings, _ := cmd.Flags().GetStringSlice("binding")
				if len(bindings) == 0 {
					return contract.ErrorCodeInvalidParam.Errorf("require --sig or --binding")
				}
				if output {
					return contract.ErrorCodeInvalidParam.Errorf("--output requires --sig")
				}
				r, err := NewBindingRegistry(bindings)
				if err != nil {
					return err
				}
				f, tokens, err := r.WithOptions(CodecOptions(lenient)).DecodeCall(b)
				if err != nil {
					return err
				}
				return cli.JsonPrettyPrintln(os.Stdout, NewCallOutput(f, tokens))
			}
			f, err := contract.ParseFunction(sig)
			if err != nil {
				return err
			}
			f = f.WithOptions(CodecOptions(lenient))
			types := f.Inputs
			var tokens []abi.Token
			if output {
				types = f.Outputs
				tokens, err = f.Output(b)
			} else {
				tokens, err = f.Decode(b)
			}
			if err != nil {
				return err
			}
			return cli.JsonPrettyPrintln(os.Stdout, NewParams(types, tokens))
		},
	}
	rootCmd.AddCommand(decodeCallCmd)
	decodeCallFlags := decodeCallCmd.Flags()
	decodeCallFlags.String("sig", "", "function signature, 'balanceOf(address) returns (uint256)'")
	decodeCallFlags.StringSlice("binding", nil, "name of bindings to find function by selector (erc20,uniswapv3)")
	decodeCallFlags.Bool("output", false, "decode return data instead of call input")
	decodeCallFlags.Bool("lenient", false, "accept dirty address padding and bool words")
	decodeCallCmd.MarkFlagsMutuallyExclusive("sig", "binding")

	decodeLogCmd := &cobra.Command{
		Use:   "decode-log",
		Short: "Decode event log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := LogFromFlags(cmd)
			if err != nil {
				return err
			}
			lenient, _ := cmd.Flags().GetBool("lenient")
			sig, _ := cmd.Flags().GetString("event")
			if len(sig) == 0 {
				bindings, _ := cmd.Flags().GetStringSlice("binding")
				if len(bindings) == 0 {
					return contract.ErrorCodeInvalidParam.Errorf("require --event or --binding")
				}
				r, err := NewBindingRegistry(bindings)
				if err != nil {
					return err
				}
				e, params, err := r.WithOptions(CodecOptions(lenient)).DecodeLog(l)
				if err != nil {
					return err
				}
				return cli.JsonPrettyPrintln(os.Stdout, NewEventOutput(l, e, params))
			}
			e, err := contract.ParseEvent(sig)
			if err != nil {
				return err
			}
			e = e.WithOptions(CodecOptions(lenient))
			params, err := e.Decode(l)
			if err != nil {
				return err
			}
			return cli.JsonPrettyPrintln(os.Stdout, NewEventOutput(l, e, params))
		},
	}
	rootCmd.AddCommand(decodeLogCmd)
	decodeLogFlags := decodeLogCmd.Flags()
	decodeLogFlags.String("event", "", "event signature, 'Transfer(address indexed,address indexed,uint256)'")
	decodeLogFlags.StringSlice("binding", nil, "name of bindings to find event by topics (erc20,uniswapv3)")
	decodeLogFlags.String("address", "", "emitter address")
	decodeLogFlags.StringSlice("topics", nil, "topics of log")
	decodeLogFlags.String("data", "", "data of log")
	decodeLogFlags.Bool("lenient", false, "accept dirty address padding and bool words")
	decodeLogCmd.MarkFlagsMutuallyExclusive("event", "binding")
}
