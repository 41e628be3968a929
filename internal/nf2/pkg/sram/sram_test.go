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

package sram_test

import (
	"bytes"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/NearNodeFlash/nf2-counterdump/internal/nf2/pkg/nf2"
	"github.com/NearNodeFlash/nf2-counterdump/internal/nf2/pkg/sram"
)

var _ = Describe("Port-drop SRAM dump", func() {
	var (
		ctrl   *nf2.MockController
		dev    nf2.DeviceInterface
		out    *bytes.Buffer
		dumper *sram.Dumper
	)

	BeforeEach(func() {
		var err error

		ctrl = nf2.NewMockController()
		dev, err = ctrl.Open(nf2.DefaultIface)
		Expect(err).NotTo(HaveOccurred())

		out = new(bytes.Buffer)
		dumper, err = sram.NewDumper(out)
		Expect(err).NotTo(HaveOccurred())
		dumper.Sleep = ctrl.Sleep
	})

	It("resolves the SRAM window from the register map", func() {
		Expect(dumper.Base).To(Equal(uint32(0x1000000)))
	})

	It("writes the table, waits, then reads both halves of the word", func() {
		Expect(dumper.Dump(dev)).To(Succeed())

		ops := ctrl.Filter(nf2.MockWrite, nf2.MockSleep, nf2.MockRead)
		Expect(ops).To(HaveLen(7))

		Expect(ops[0:4]).To(Equal([]nf2.MockOp{
			{Kind: nf2.MockWrite, Name: nf2.DefaultIface, Addr: 0x1000000, Val: 0x400003F2},
			{Kind: nf2.MockWrite, Name: nf2.DefaultIface, Addr: 0x1000000, Val: 0x30000050},
			{Kind: nf2.MockWrite, Name: nf2.DefaultIface, Addr: 0x1000000, Val: 0x20000016},
			{Kind: nf2.MockWrite, Name: nf2.DefaultIface, Addr: 0x1000000, Val: 0x1000029B},
		}))

		Expect(ops[4].Kind).To(Equal(nf2.MockSleep))
		Expect(ops[4].Sleep).To(Equal(sram.SettleTime))

		Expect(ops[5].Kind).To(Equal(nf2.MockRead))
		Expect(ops[5].Addr).To(Equal(uint32(0x1000000)))
		Expect(ops[6].Kind).To(Equal(nf2.MockRead))
		Expect(ops[6].Addr).To(Equal(uint32(0x1000004)))
	})

	It("prints the address and value of each read in hex", func() {
		Expect(dumper.Dump(dev)).To(Succeed())

		reads := ctrl.Filter(nf2.MockRead)
		Expect(reads).To(HaveLen(2))

		Expect(out.String()).To(Equal(fmt.Sprintf("SRAM 1000000: %x\nSRAM 1000004: %x\n", reads[0].Val, reads[1].Val)))
	})

	It("stops at the first failed write", func() {
		ctrl.FailWriteAt = 2

		err := dumper.Dump(dev)
		Expect(err).To(MatchError(ContainSubstring("load port 80 into SRAM lane 3")))

		Expect(ctrl.Filter(nf2.MockWrite)).To(HaveLen(2))
		Expect(ctrl.Filter(nf2.MockSleep, nf2.MockRead)).To(BeEmpty())
		Expect(out.Len()).To(BeZero())
	})

	It("stops at the first failed read", func() {
		ctrl.FailReadAt = 1

		Expect(dumper.Dump(dev)).To(MatchError(ContainSubstring("read back SRAM")))

		Expect(ctrl.Filter(nf2.MockRead)).To(HaveLen(1))
		Expect(out.Len()).To(BeZero())
	})
})
