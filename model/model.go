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

// Package model defines the cluster configuration data model persisted by
// the control plane.
//
// All types are immutable values: "updating" one produces a new value and
// never mutates in place, so a Deployment handed out by the store can be
// shared freely across goroutines. Equality is structural. Constructors
// and With* methods keep mappings non-nil so values compare equal across
// a wire round-trip.
package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Dataset is a unit of persistent data identified by a globally unique id.
type Dataset struct {
	DatasetID uuid.UUID         `json:"dataset_id"`
	Metadata  map[string]string `json:"metadata"`
}

// NewDataset creates a Dataset with empty metadata.
func NewDataset(id uuid.UUID) Dataset {
	return Dataset{DatasetID: id, Metadata: map[string]string{}}
}

// WithMetadata returns a copy of the dataset with the given metadata entry
// set.
func (d Dataset) WithMetadata(key, value string) Dataset {
	metadata := make(map[string]string, len(d.Metadata)+1)
	for k, v := range d.Metadata {
		metadata[k] = v
	}
	metadata[key] = value
	d.Metadata = metadata
	return d
}

// Manifestation is a node-local instance of a Dataset, either the primary
// or a replica.
type Manifestation struct {
	Dataset Dataset `json:"dataset"`
	Primary bool    `json:"primary"`
}

// AttachedVolume describes how a manifestation is exposed to an
// application.
type AttachedVolume struct {
	Manifestation Manifestation `json:"manifestation"`
	Mountpoint    string        `json:"mountpoint"`
}

// DockerImage references a container image as repository plus tag.
type DockerImage struct {
	Repository string `json:"repository"`
	Tag        string `json:"tag"`
}

// DockerImageFromString parses "repository[:tag]"; the tag defaults to
// "latest".
func DockerImageFromString(s string) (DockerImage, error) {
	repository, tag, found := strings.Cut(s, ":")
	if repository == "" {
		return DockerImage{}, fmt.Errorf("invalid docker image name %q", s)
	}
	if !found || tag == "" {
		tag = "latest"
	}
	return DockerImage{Repository: repository, Tag: tag}, nil
}

// String renders the image back to its "repository:tag" form.
func (i DockerImage) String() string {
	return i.Repository + ":" + i.Tag
}

// RestartPolicy enumerates how an application is restarted on exit.
type RestartPolicy int

const (
	// RestartNever leaves a stopped application stopped.
	RestartNever RestartPolicy = iota
	// RestartOnFailure restarts the application only on non-zero exit.
	RestartOnFailure
	// RestartAlways restarts the application whenever it stops.
	RestartAlways
)

// String returns the textual representation of the policy.
func (p RestartPolicy) String() string {
	switch p {
	case RestartNever:
		return "never"
	case RestartOnFailure:
		return "on-failure"
	case RestartAlways:
		return "always"
	default:
		return "unknown"
	}
}

// Application is a runnable unit placed on a node. Volume is nil when the
// application has no attached volume.
type Application struct {
	Name          string          `json:"name"`
	Image         DockerImage     `json:"image"`
	Volume        *AttachedVolume `json:"volume"`
	RestartPolicy RestartPolicy   `json:"restart_policy"`
}

// Node is a cluster member: the applications it runs and the dataset
// manifestations it hosts, keyed by dataset id.
type Node struct {
	UUID           uuid.UUID                   `json:"uuid"`
	Applications   map[string]Application      `json:"applications"`
	Manifestations map[uuid.UUID]Manifestation `json:"manifestations"`
}

// NewNode creates an empty Node with the given id.
func NewNode(id uuid.UUID) Node {
	return Node{
		UUID:           id,
		Applications:   map[string]Application{},
		Manifestations: map[uuid.UUID]Manifestation{},
	}
}

// WithApplication returns a copy of the node with the application added or
// replaced under its name.
func (n Node) WithApplication(app Application) Node {
	applications := make(map[string]Application, len(n.Applications)+1)
	for name, a := range n.Applications {
		applications[name] = a
	}
	applications[app.Name] = app
	n.Applications = applications
	return n
}

// WithManifestation returns a copy of the node with the manifestation
// added or replaced under its dataset id.
func (n Node) WithManifestation(m Manifestation) Node {
	manifestations := make(map[uuid.UUID]Manifestation, len(n.Manifestations)+1)
	for id, existing := range n.Manifestations {
		manifestations[id] = existing
	}
	manifestations[m.Dataset.DatasetID] = m
	n.Manifestations = manifestations
	return n
}
