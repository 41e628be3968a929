/*
 * Copyright 2025 Hewlett Packard Enterprise Development LP
 * Other additional copyright holders may be indicated within.
 *
 * The entirety of this work is licensed under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 *
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

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/NearNodeFlash/nf2-counterdump/internal/nf2/pkg/nf2"
	"github.com/NearNodeFlash/nf2-counterdump/internal/nf2/pkg/sram"
)

const programName = "counterdump"

// Environment is everything a counter dump touches outside the process
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	Controller nf2.ControllerInterface
	Sleep      func(time.Duration)
}

func DefaultEnvironment() Environment {
	return Environment{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Controller: nf2.NewController(),
		Sleep:      time.Sleep,
	}
}

// CounterDumpCmd defines the counter dump CLI and its parameters
type CounterDumpCmd struct {
	Iface string `kong:"short='i',default='${default_iface}',placeholder='<iface>',help='Interface name.'"`
	Help  bool   `kong:"short='h',help='Print this message and exit.'"`
}

// Run will load the port-drop table into SRAM and print what reads back
func (cmd *CounterDumpCmd) Run(env Environment) error {
	return run(env.Controller, cmd.Iface, func(dev nf2.DeviceInterface) error {
		dumper, err := sram.NewDumper(env.Stdout)
		if err != nil {
			return err
		}

		if env.Sleep != nil {
			dumper.Sleep = env.Sleep
		}

		return dumper.Dump(dev)
	})
}

// Execute parses args and runs the counter dump, returning the process exit
// status. Help and every failure exit with 1.
func Execute(args []string, env Environment) int {
	cli := CounterDumpCmd{}

	parser, err := kong.New(&cli,
		kong.Name(programName),
		kong.Description("Load the port-drop table into NetFPGA SRAM and dump it."),
		kong.NoDefaultHelp(),
		kong.Writers(env.Stdout, env.Stderr),
		kong.Vars{"default_iface": nf2.DefaultIface},
	)
	if err != nil {
		fmt.Fprintf(env.Stderr, "%s: error: %v\n", programName, err)
		return 1
	}

	if _, err := parser.Parse(args); err != nil {
		parser.Errorf("%s", err)
		usage(env.Stdout)
		return 1
	}

	if cli.Help {
		usage(env.Stdout)
		return 1
	}

	if err := cli.Run(env); err != nil {
		parser.Errorf("%s", err)
		return 1
	}

	return 0
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: ./%s <options> \n\n", programName)
	fmt.Fprintf(w, "Options: -i <iface> : interface name (default %s)\n", nf2.DefaultIface)
	fmt.Fprintf(w, "         -h : Print this message and exit.\n")
}
