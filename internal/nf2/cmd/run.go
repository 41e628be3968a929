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
	log "github.com/sirupsen/logrus"

	"github.com/NearNodeFlash/nf2-counterdump/internal/nf2/pkg/nf2"
)

// run validates and opens the interface, hands the device to f, and closes
// it again on the way out. Nothing touches the device if either step fails.
func run(ctrl nf2.ControllerInterface, iface string, f func(nf2.DeviceInterface) error) error {
	if err := ctrl.Check(iface); err != nil {
		return err
	}

	dev, err := ctrl.Open(iface)
	if err != nil {
		return err
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.WithError(err).WithField("iface", iface).Warn("Failed to close device")
		}
	}()

	return f(dev)
}
