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

package sram

import (
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/NearNodeFlash/nf2-counterdump/internal/nf2/pkg/nf2"
)

const (
	// BaseRegister names the SRAM window in the register map
	BaseRegister = "SRAM_BASE_ADDR"

	// ReadbackOffset is the byte offset of the second 32-bit half of the SRAM word
	ReadbackOffset = 4

	// SettleTime is how long the SRAM arbiter is given to commit the writes
	SettleTime = time.Second

	selectorShift = 28
	selectorMask  = 0xF
)

// Selector picks which 16-bit lane of the SRAM word a write lands in.
type Selector uint8

// PortDropTable holds the destination ports the on-card firewall drops.
var PortDropTable = [4]uint16{1010, 80, 22, 667}

// PackWord builds the value written to the SRAM arbiter: the selector in the
// top four bits and the data in the low sixteen.
func PackWord(sel Selector, data uint16) uint32 {
	return uint32(sel&selectorMask)<<selectorShift | uint32(data)
}

// Write is a single SRAM arbiter write
type Write struct {
	Selector Selector
	Port     uint16
}

func (w Write) Word() uint32 { return PackWord(w.Selector, w.Port) }

// PortDropWrites returns the writes that load the port-drop table. Selectors
// run from 4 down to 1, so the first port lands in the highest lane.
func PortDropWrites() []Write {
	writes := make([]Write, len(PortDropTable))
	for i, port := range PortDropTable {
		writes[i] = Write{
			Selector: Selector(len(PortDropTable) - i),
			Port:     port,
		}
	}

	return writes
}

// Dumper loads the port-drop table into SRAM and prints the word read back
type Dumper struct {
	Base  uint32
	Out   io.Writer
	Sleep func(time.Duration)
}

func NewDumper(out io.Writer) (*Dumper, error) {
	m, err := nf2.LoadRegisterMap()
	if err != nil {
		return nil, err
	}

	base, err := m.Lookup(BaseRegister)
	if err != nil {
		return nil, err
	}

	return &Dumper{
		Base:  base,
		Out:   out,
		Sleep: time.Sleep,
	}, nil
}

// Dump runs the write, settle, read sequence once. Any register failure
// ends the sequence.
func (d *Dumper) Dump(dev nf2.DeviceInterface) error {
	logger := log.WithField("iface", dev.Name())

	for _, w := range PortDropWrites() {
		if err := dev.WriteReg(d.Base, w.Word()); err != nil {
			return fmt.Errorf("load port %d into SRAM lane %d: %w", w.Port, w.Selector, err)
		}
	}

	logger.Debugf("Port-drop table written, waiting %s", SettleTime)
	d.Sleep(SettleTime)

	for _, addr := range []uint32{d.Base, d.Base + ReadbackOffset} {
		val, err := dev.ReadReg(addr)
		if err != nil {
			return fmt.Errorf("read back SRAM: %w", err)
		}

		if _, err := fmt.Fprintf(d.Out, "SRAM %x: %x\n", addr, val); err != nil {
			return err
		}
	}

	return nil
}
