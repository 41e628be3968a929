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

//go:build !linux

package nf2

import "fmt"

// Controller is a placeholder on platforms without the nf2 driver.
type Controller struct{}

func NewController() ControllerInterface {
	return &Controller{}
}

func (c *Controller) Check(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return fmt.Errorf("nf2 driver is not available on this platform")
}

func (c *Controller) Open(name string) (DeviceInterface, error) {
	return nil, fmt.Errorf("nf2 driver is not available on this platform")
}
