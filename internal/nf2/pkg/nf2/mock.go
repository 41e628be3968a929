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

package nf2

import (
	"fmt"
	"time"
)

type MockOpKind string

const (
	MockCheck MockOpKind = "check"
	MockOpen  MockOpKind = "open"
	MockRead  MockOpKind = "read"
	MockWrite MockOpKind = "write"
	MockSleep MockOpKind = "sleep"
	MockClose MockOpKind = "close"
)

// MockOp is one recorded call against the mock
type MockOp struct {
	Kind  MockOpKind
	Name  string
	Addr  uint32
	Val   uint32
	Sleep time.Duration
}

func (op MockOp) String() string {
	switch op.Kind {
	case MockRead, MockWrite:
		return fmt.Sprintf("%s %#x %#x", op.Kind, op.Addr, op.Val)
	case MockSleep:
		return fmt.Sprintf("%s %s", op.Kind, op.Sleep)
	}
	return fmt.Sprintf("%s %s", op.Kind, op.Name)
}

// MockController stands in for the nf2 driver. Every call is appended to Ops
// in the order it was made. Writes to the SRAM window are assembled the way
// the SRAM arbiter does it: the top four bits of the value select an 18-bit
// lane of the 72-bit memory word and the low 16 bits are stored in it.
type MockController struct {
	Ops []MockOp

	CheckErr error
	OpenErr  error

	// FailReadAt and FailWriteAt fail the n'th (1-based) read or write. Zero never fails.
	FailReadAt  int
	FailWriteAt int

	sramBase  uint32
	sramLanes [4]uint16
	regs      map[uint32]uint32

	reads  int
	writes int
}

const (
	mockSramLaneBits = 18
	mockSramLaneMask = 0xFFFF
)

func NewMockController() *MockController {
	ctrl := &MockController{
		regs: make(map[uint32]uint32),
	}

	if m, err := LoadRegisterMap(); err == nil {
		ctrl.sramBase, _ = m.Lookup("SRAM_BASE_ADDR")
	}

	return ctrl
}

func (c *MockController) Check(name string) error {
	c.Ops = append(c.Ops, MockOp{Kind: MockCheck, Name: name})
	if c.CheckErr != nil {
		return c.CheckErr
	}

	return validateName(name)
}

func (c *MockController) Open(name string) (DeviceInterface, error) {
	c.Ops = append(c.Ops, MockOp{Kind: MockOpen, Name: name})
	if c.OpenErr != nil {
		return nil, c.OpenErr
	}

	return &MockDevice{ctrl: c, name: name, open: true}, nil
}

// Sleep records the wait instead of blocking
func (c *MockController) Sleep(d time.Duration) {
	c.Ops = append(c.Ops, MockOp{Kind: MockSleep, Sleep: d})
}

// Filter returns the recorded operations of the given kinds
func (c *MockController) Filter(kinds ...MockOpKind) []MockOp {
	ops := make([]MockOp, 0)
	for _, op := range c.Ops {
		for _, k := range kinds {
			if op.Kind == k {
				ops = append(ops, op)
				break
			}
		}
	}
	return ops
}

// SramWord returns the 72-bit SRAM word: bits 64-71 in hi and bits 0-63 in lo.
// Only lo is visible through the base and base+4 registers.
func (c *MockController) SramWord() (hi uint8, lo uint64) {
	for i, lane := range c.sramLanes {
		shift := mockSramLaneBits * i
		lo |= uint64(lane) << shift
		if shift+mockSramLaneBits > 64 {
			hi |= uint8(uint64(lane) >> (64 - shift))
		}
	}
	return hi, lo
}

type MockDevice struct {
	ctrl *MockController
	name string
	open bool
}

func (d *MockDevice) Name() string { return d.name }

func (d *MockDevice) ReadReg(addr uint32) (uint32, error) {
	c := d.ctrl
	if !d.open {
		return 0, fmt.Errorf("%s: device closed", d.name)
	}

	c.reads++
	if c.reads == c.FailReadAt {
		c.Ops = append(c.Ops, MockOp{Kind: MockRead, Name: d.name, Addr: addr})
		return 0, fmt.Errorf("%s: read register %#x: input/output error", d.name, addr)
	}

	_, word := c.SramWord()

	var val uint32
	switch addr {
	case c.sramBase:
		val = uint32(word)
	case c.sramBase + 4:
		val = uint32(word >> 32)
	default:
		val = c.regs[addr]
	}

	c.Ops = append(c.Ops, MockOp{Kind: MockRead, Name: d.name, Addr: addr, Val: val})

	return val, nil
}

func (d *MockDevice) WriteReg(addr uint32, val uint32) error {
	c := d.ctrl
	if !d.open {
		return fmt.Errorf("%s: device closed", d.name)
	}

	c.Ops = append(c.Ops, MockOp{Kind: MockWrite, Name: d.name, Addr: addr, Val: val})

	c.writes++
	if c.writes == c.FailWriteAt {
		return fmt.Errorf("%s: write register %#x: input/output error", d.name, addr)
	}

	if addr == c.sramBase {
		// Selectors 1..4 address lanes 0..3; anything else is dropped by the arbiter
		if sel := val >> 28; sel >= 1 && sel <= 4 {
			c.sramLanes[sel-1] = uint16(val & mockSramLaneMask)
		}
		return nil
	}

	c.regs[addr] = val

	return nil
}

func (d *MockDevice) Close() error {
	d.ctrl.Ops = append(d.ctrl.Ops, MockOp{Kind: MockClose, Name: d.name})
	d.open = false
	return nil
}
