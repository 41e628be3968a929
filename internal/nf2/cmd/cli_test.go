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

package cmd_test

import (
	"bytes"
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/NearNodeFlash/nf2-counterdump/internal/nf2/cmd"
	"github.com/NearNodeFlash/nf2-counterdump/internal/nf2/pkg/nf2"
	"github.com/NearNodeFlash/nf2-counterdump/internal/nf2/pkg/sram"
)

var _ = Describe("Counter dump CLI", func() {
	var (
		ctrl   *nf2.MockController
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	)

	execute := func(args ...string) int {
		return cmd.Execute(args, cmd.Environment{
			Stdout:     stdout,
			Stderr:     stderr,
			Controller: ctrl,
			Sleep:      ctrl.Sleep,
		})
	}

	BeforeEach(func() {
		ctrl = nf2.NewMockController()
		stdout = new(bytes.Buffer)
		stderr = new(bytes.Buffer)
	})

	Describe("argument processing", func() {
		It("opens the default interface when no arguments are given", func() {
			Expect(execute()).To(Equal(0))

			Expect(ctrl.Filter(nf2.MockCheck, nf2.MockOpen)).To(Equal([]nf2.MockOp{
				{Kind: nf2.MockCheck, Name: "nf2c0"},
				{Kind: nf2.MockOpen, Name: "nf2c0"},
			}))
		})

		It("opens the interface given with -i", func() {
			Expect(execute("-i", "foo")).To(Equal(0))

			Expect(ctrl.Filter(nf2.MockCheck, nf2.MockOpen)).To(Equal([]nf2.MockOp{
				{Kind: nf2.MockCheck, Name: "foo"},
				{Kind: nf2.MockOpen, Name: "foo"},
			}))
		})

		It("prints usage and fails on -h without touching the device", func() {
			Expect(execute("-h")).To(Equal(1))

			Expect(stdout.String()).To(HavePrefix("Usage: ./counterdump <options>"))
			Expect(stdout.String()).To(ContainSubstring("-i <iface> : interface name (default nf2c0)"))
			Expect(ctrl.Ops).To(BeEmpty())
		})

		It("reports an unknown option, prints usage and fails", func() {
			Expect(execute("-x")).To(Equal(1))

			Expect(stderr.String()).To(HavePrefix("counterdump: error:"))
			Expect(stderr.String()).To(ContainSubstring("-x"))
			Expect(stdout.String()).To(HavePrefix("Usage:"))
			Expect(ctrl.Ops).To(BeEmpty())
		})

		It("reports an unexpected argument, prints usage and fails", func() {
			Expect(execute("extra")).To(Equal(1))

			Expect(stderr.String()).To(HavePrefix("counterdump: error:"))
			Expect(stderr.String()).To(ContainSubstring("extra"))
			Expect(stdout.String()).To(HavePrefix("Usage:"))
			Expect(ctrl.Ops).To(BeEmpty())
		})

		It("fails when -i has no value", func() {
			Expect(execute("-i")).To(Equal(1))

			Expect(stderr.String()).To(HavePrefix("counterdump: error:"))
			Expect(stdout.String()).To(HavePrefix("Usage:"))
			Expect(ctrl.Ops).To(BeEmpty())
		})
	})

	Describe("device lifecycle", func() {
		It("does no register access when the interface check fails", func() {
			ctrl.CheckErr = fmt.Errorf("interface nf2c9 not found")

			Expect(execute("-i", "nf2c9")).To(Equal(1))

			Expect(ctrl.Ops).To(Equal([]nf2.MockOp{{Kind: nf2.MockCheck, Name: "nf2c9"}}))
			Expect(stderr.String()).To(ContainSubstring("interface nf2c9 not found"))
			Expect(stdout.Len()).To(BeZero())
		})

		It("does no register access when the open fails", func() {
			ctrl.OpenErr = fmt.Errorf("open nf2c0: permission denied")

			Expect(execute()).To(Equal(1))

			Expect(ctrl.Filter(nf2.MockRead, nf2.MockWrite, nf2.MockSleep)).To(BeEmpty())
			Expect(stderr.String()).To(ContainSubstring("permission denied"))
		})

		It("runs the whole sequence and closes the device", func() {
			Expect(execute()).To(Equal(0))

			kinds := make([]nf2.MockOpKind, len(ctrl.Ops))
			for i, op := range ctrl.Ops {
				kinds[i] = op.Kind
			}

			Expect(kinds).To(Equal([]nf2.MockOpKind{
				nf2.MockCheck, nf2.MockOpen,
				nf2.MockWrite, nf2.MockWrite, nf2.MockWrite, nf2.MockWrite,
				nf2.MockSleep,
				nf2.MockRead, nf2.MockRead,
				nf2.MockClose,
			}))

			writes := ctrl.Filter(nf2.MockWrite)
			for i, expected := range []uint32{0x400003F2, 0x30000050, 0x20000016, 0x1000029B} {
				Expect(writes[i].Addr).To(Equal(uint32(0x1000000)))
				Expect(writes[i].Val).To(Equal(expected))
			}

			Expect(ctrl.Filter(nf2.MockSleep)[0].Sleep).To(Equal(sram.SettleTime))
		})

		It("closes the device and fails when a register write fails", func() {
			ctrl.FailWriteAt = 3

			Expect(execute()).To(Equal(1))

			Expect(ctrl.Filter(nf2.MockWrite)).To(HaveLen(3))
			Expect(ctrl.Filter(nf2.MockRead, nf2.MockSleep)).To(BeEmpty())
			Expect(ctrl.Ops[len(ctrl.Ops)-1].Kind).To(Equal(nf2.MockClose))
			Expect(stderr.String()).To(ContainSubstring("load port 22 into SRAM lane 2"))
		})
	})

	It("prints exactly two SRAM lines and succeeds", func() {
		Expect(execute("-i", "nf2c1")).To(Equal(0))

		lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(MatchRegexp(`^SRAM 1000000: [0-9a-f]+$`))
		Expect(lines[1]).To(MatchRegexp(`^SRAM 1000004: [0-9a-f]+$`))

		// The low half of the word holds ports 667 and 22
		Expect(lines[0]).To(Equal(fmt.Sprintf("SRAM 1000000: %x", uint32(667)|uint32(22)<<18)))
	})
})
