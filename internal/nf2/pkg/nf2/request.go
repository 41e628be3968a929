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
	"bytes"
	"fmt"

	"github.com/HewlettPackard/structex"
)

// registerRequest is the block exchanged with the nf2 driver on a register
// read or write. The driver fills in Val on a read.
type registerRequest struct {
	Reg uint32
	Val uint32
}

func (r registerRequest) encode() ([]byte, error) {
	buf := structex.NewBuffer(r)
	if err := structex.Encode(buf, r); err != nil {
		return nil, fmt.Errorf("encode register request %#x: %w", r.Reg, err)
	}

	return buf.Bytes(), nil
}

func decodeRegisterRequest(b []byte) (registerRequest, error) {
	r := registerRequest{}
	if err := structex.DecodeByteBuffer(bytes.NewBuffer(b), &r); err != nil {
		return r, fmt.Errorf("decode register request: %w", err)
	}

	return r, nil
}
