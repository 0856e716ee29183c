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
	"os"

	"github.com/icon-project/btp2/common/cli"
	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/intconv"
	"github.com/spf13/cobra"

	"github.com/icon-project/abi-sdk/abi"
	"github.com/icon-project/abi-sdk/bindings/erc20"
	"github.com/icon-project/abi-sdk/bindings/uniswapv3"
	"github.com/icon-project/abi-sdk/contract"
)

var bindingRegisters = map[string]func(r *contract.Registry){
	"erc20":     erc20.Register,
	"uniswapv3": uniswapv3.Register,
}

// NewBindingRegistry registers functions and events of named bindings.
func NewBindingRegistry(bindings []string) (*contract.Registry, error) {
	r := contract.NewRegistry()
	for _, name := range bindings {
		register, ok := bindingRegisters[name]
		if !ok {
			return nil, contract.ErrorCodeInvalidParam.Errorf("not found binding name:%s", name)
		}
		register(r)
	}
	return r, nil
}

// NewMonitorRegistry registers events of signatures and of named bindings.
func NewMonitorRegistry(sigs []string, bindings []string) (*contract.Registry, error) {
	r, err := NewBindingRegistry(bindings)
	if err != nil {
		return nil, err
	}
	for _, sig := range sigs {
		e, err := contract.ParseEvent(sig)
		if err != nil {
			return nil, err
		}
		r.RegisterEvent(e)
	}
	if len(r.Events()) == 0 {
		return nil, errors.New("require event or binding at least one")
	}
	return r, nil
}

func NewMonitorCommand(parentCmd *cobra.Command, cfg *Config) *cobra.Command {
	eventCmd := &cobra.Command{
		Use:   "monitor",
		Short: "Event monitor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modLevels, _ := cmd.Flags().GetStringToString("mod_level")
			l, err := SetupLogger(cfg, modLevels)
			if err != nil {
				return err
			}
			height, err := intconv.ParseInt(cmd.Flag("height").Value.String(), 64)
			if err != nil {
				return err
			}
			if height < 0 {
				return errors.Errorf("invalid height %d", height)
			}
			sigs, _ := cmd.Flags().GetStringArray("event")
			bindings, _ := cmd.Flags().GetStringSlice("binding")
			r, err := NewMonitorRegistry(sigs, bindings)
			if err != nil {
				return err
			}
			addrs, _ := cmd.Flags().GetStringSlice("address")
			addresses, err := ParseAddresses(addrs)
			if err != nil {
				return err
			}
			a, err := NewAdaptor(cfg, l)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithCancel(context.Background())
			cli.OnInterrupt(cancel)
			onEvent := func(lg *contract.Log, e *contract.Event, params []abi.Token) error {
				return cli.JsonPrettyPrintln(os.Stdout, NewEventOutput(lg, e, params))
			}
			if err = a.MonitorEvent(ctx, onEvent, r, addresses, uint64(height)); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	parentCmd.AddCommand(eventCmd)
	eventFlags := eventCmd.Flags()
	eventFlags.StringArray("event", nil,
		"event signature, 'Transfer(address indexed from,address indexed to,uint256 value)'")
	eventFlags.StringSlice("binding", nil, "name of bindings to monitor (erc20,uniswapv3)")
	eventFlags.StringSlice("address", nil, "contract address, all contracts if empty")
	eventFlags.String("height", "0", "start height, latest if zero")
	return eventCmd
}
