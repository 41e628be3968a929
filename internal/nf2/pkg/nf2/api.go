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

// DefaultIface is the interface used when none is given on the command line.
const DefaultIface = "nf2c0"

// ControllerInterface locates and opens NetFPGA devices.
type ControllerInterface interface {
	// Check validates that name refers to a NetFPGA network interface or
	// character device. It must succeed before Open is called.
	Check(name string) error

	Open(name string) (DeviceInterface, error)
}

// DeviceInterface is an open handle to the card's register space.
type DeviceInterface interface {
	Name() string

	ReadReg(addr uint32) (uint32, error)
	WriteReg(addr uint32, val uint32) error

	Close() error
}
