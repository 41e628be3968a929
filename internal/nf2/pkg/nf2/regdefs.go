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
	"sync"

	"gopkg.in/yaml.v2"
)

// Register definitions for the reference NIC bitfile. Addresses are byte
// addresses into the card's register space.
const registerMapFile = `
version: v1
metadata:
  name: NetFPGA Reference NIC Register Map
registers:
  - name: CPCI_ID_REG
    addr: 0x0000000
    desc: CPCI identification
  - name: CPCI_BOARD_ID_REG
    addr: 0x0000004
    desc: Board identification
  - name: CPCI_CTRL_REG
    addr: 0x0000008
    desc: CPCI control
  - name: SRAM_BASE_ADDR
    addr: 0x1000000
    desc: SRAM window through the SRAM arbiter
  - name: DRAM_BASE_ADDR
    addr: 0x4000000
    desc: DRAM window
`

// RegisterMapFile is the top-level structure of the register definitions
type RegisterMapFile struct {
	Version  string
	Metadata struct {
		Name string
	}
	Registers []RegisterDef
}

type RegisterDef struct {
	Name string
	Addr uint32
	Desc string
}

// RegisterMap resolves register names to addresses
type RegisterMap struct {
	Name  string
	addrs map[string]uint32
}

var (
	registerMap     *RegisterMap
	registerMapErr  error
	registerMapOnce sync.Once
)

// LoadRegisterMap returns the register map of the reference NIC. The map is
// parsed on first use.
func LoadRegisterMap() (*RegisterMap, error) {
	registerMapOnce.Do(func() {
		registerMap, registerMapErr = parseRegisterMap([]byte(registerMapFile))
	})

	return registerMap, registerMapErr
}

func parseRegisterMap(data []byte) (*RegisterMap, error) {
	file := new(RegisterMapFile)
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("register map: %w", err)
	}

	m := &RegisterMap{
		Name:  file.Metadata.Name,
		addrs: make(map[string]uint32, len(file.Registers)),
	}

	for _, r := range file.Registers {
		if len(r.Name) == 0 {
			return nil, fmt.Errorf("register map: register at %#x has no name", r.Addr)
		}
		if _, ok := m.addrs[r.Name]; ok {
			return nil, fmt.Errorf("register map: duplicate register %s", r.Name)
		}

		m.addrs[r.Name] = r.Addr
	}

	return m, nil
}

// Lookup returns the address of the named register
func (m *RegisterMap) Lookup(name string) (uint32, error) {
	addr, ok := m.addrs[name]
	if !ok {
		return 0, fmt.Errorf("register %s not found in %s", name, m.Name)
	}

	return addr, nil
}
