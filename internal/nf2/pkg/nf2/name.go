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
	"strings"
)

// ifNameSize matches the kernel's IFNAMSIZ, which counts the terminating NUL.
const ifNameSize = 16

func validateName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("interface name is empty")
	}

	if len(name) >= ifNameSize {
		return fmt.Errorf("interface name is too long: %s", name)
	}

	if strings.ContainsAny(name, "/\x00") {
		return fmt.Errorf("interface name is invalid: %q", name)
	}

	return nil
}
