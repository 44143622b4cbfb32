/*
 * MIT License
 *
 * Copyright (c) 2026 Orchd Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package model

import "github.com/google/uuid"

// NodeState is the observed runtime state an agent reports for one node:
// which manifestations it actually hosts, the filesystem paths they are
// mounted at (by dataset id), and the block devices backing them (by
// device id).
type NodeState struct {
	Hostname       string                      `json:"hostname"`
	UUID           uuid.UUID                   `json:"uuid"`
	Manifestations map[uuid.UUID]Manifestation `json:"manifestations"`
	Paths          map[uuid.UUID]string        `json:"paths"`
	Devices        map[uuid.UUID]string        `json:"devices"`
}

// NewNodeState creates an empty NodeState for the given node.
func NewNodeState(hostname string, id uuid.UUID) NodeState {
	return NodeState{
		Hostname:       hostname,
		UUID:           id,
		Manifestations: map[uuid.UUID]Manifestation{},
		Paths:          map[uuid.UUID]string{},
		Devices:        map[uuid.UUID]string{},
	}
}
