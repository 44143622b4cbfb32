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

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/orchd/orchd/codec"
)

// Deployment is the full desired topology: the cluster's nodes keyed by
// node id and the outstanding dataset leases keyed by dataset id.
type Deployment struct {
	Nodes  map[uuid.UUID]Node  `json:"nodes"`
	Leases map[uuid.UUID]Lease `json:"leases"`
}

// NewDeployment creates a Deployment with no nodes and no leases.
func NewDeployment() Deployment {
	return Deployment{
		Nodes:  map[uuid.UUID]Node{},
		Leases: map[uuid.UUID]Lease{},
	}
}

// WithNode returns a copy of the deployment with the node added or
// replaced under its id.
func (d Deployment) WithNode(node Node) Deployment {
	nodes := make(map[uuid.UUID]Node, len(d.Nodes)+1)
	for id, n := range d.Nodes {
		nodes[id] = n
	}
	nodes[node.UUID] = node
	d.Nodes = nodes
	return d
}

// WithoutNode returns a copy of the deployment with the given node
// removed. Removing an absent node is a no-op copy.
func (d Deployment) WithoutNode(id uuid.UUID) Deployment {
	nodes := make(map[uuid.UUID]Node, len(d.Nodes))
	for nodeID, n := range d.Nodes {
		if nodeID == id {
			continue
		}
		nodes[nodeID] = n
	}
	d.Nodes = nodes
	return d
}

// WithLease returns a copy of the deployment with the lease added or
// replaced under its dataset id.
func (d Deployment) WithLease(lease Lease) Deployment {
	leases := make(map[uuid.UUID]Lease, len(d.Leases)+1)
	for id, l := range d.Leases {
		leases[id] = l
	}
	leases[lease.DatasetID] = lease
	d.Leases = leases
	return d
}

// WithoutLeases returns a copy of the deployment with every lease whose
// dataset id belongs to the given set removed.
func (d Deployment) WithoutLeases(datasetIDs mapset.Set[uuid.UUID]) Deployment {
	leases := make(map[uuid.UUID]Lease, len(d.Leases))
	for id, l := range d.Leases {
		if datasetIDs.Contains(id) {
			continue
		}
		leases[id] = l
	}
	d.Leases = leases
	return d
}

// Configuration is the versioned root document the store persists.
type Configuration struct {
	Version    int        `json:"version"`
	Deployment Deployment `json:"deployment"`
}

// WireRegistry returns the closed registry of record types permitted on
// the wire. Every type reachable from a Configuration must be listed
// here; the codec refuses everything else.
func WireRegistry() *codec.Registry {
	return codec.NewRegistry(
		Configuration{},
		Deployment{},
		Node{},
		Application{},
		DockerImage{},
		AttachedVolume{},
		Manifestation{},
		Dataset{},
		Lease{},
		NodeState{},
	)
}
