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

// Package migration upgrades persisted configuration documents from older
// schema versions to the current one.
//
// Migrations run on the generic parsed document, not on decoded records:
// older schema shapes no longer exist in the live type system, so each
// per-version transform rewrites raw structure until the document can be
// decoded by the wire codec. Transforms are pure functions of their
// input; migrating the same bytes twice yields the same bytes.
package migration

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CurrentVersion is the schema version this software persists.
//
// History:
//
//	v1 — bare wire-encoded deployment, no envelope
//	v2 — versioned configuration envelope around the deployment
//	v3 — leases mapping added to the deployment
const CurrentVersion = 3

// ErrUnsupportedMigration indicates that no transform chain connects the
// requested version pair.
var ErrUnsupportedMigration = errors.New("unsupported configuration migration")

// transform rewrites a document from one schema version to the next.
type transform func(doc map[string]any) (map[string]any, error)

// transforms maps a source version to the transform producing the next
// version.
var transforms = map[int]transform{
	1: wrapInConfiguration,
	2: addLeases,
}

// Migrate applies the chain of per-version transforms taking the document
// from versionFrom to versionTo. It fails with ErrUnsupportedMigration
// when the chain is broken or the pair runs backwards; callers should
// treat that as fatal since no safe upgraded document exists.
func Migrate(versionFrom, versionTo int, document []byte) ([]byte, error) {
	if versionFrom == versionTo {
		return document, nil
	}
	if versionFrom > versionTo {
		return nil, fmt.Errorf("%w: from version %d to version %d", ErrUnsupportedMigration, versionFrom, versionTo)
	}

	var doc map[string]any
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, fmt.Errorf("parsing version %d document: %w", versionFrom, err)
	}

	for version := versionFrom; version < versionTo; version++ {
		step, ok := transforms[version]
		if !ok {
			return nil, fmt.Errorf("%w: from version %d to version %d", ErrUnsupportedMigration, versionFrom, versionTo)
		}
		upgraded, err := step(doc)
		if err != nil {
			return nil, fmt.Errorf("migrating version %d to %d: %w", version, version+1, err)
		}
		doc = upgraded
	}

	return json.Marshal(doc)
}

// wrapInConfiguration upgrades v1 to v2. A v1 document is the bare
// wire-encoded deployment; v2 introduced the versioned configuration
// envelope.
func wrapInConfiguration(doc map[string]any) (map[string]any, error) {
	if tag, _ := doc["$type"].(string); tag != "deployment" {
		return nil, fmt.Errorf("v1 document root is %q, expected a deployment", tag)
	}
	return map[string]any{
		"$type":      "configuration",
		"version":    2,
		"deployment": doc,
	}, nil
}

// addLeases upgrades v2 to v3. Schema v3 introduced dataset leases; older
// deployments start with none.
func addLeases(doc map[string]any) (map[string]any, error) {
	deployment, ok := doc["deployment"].(map[string]any)
	if !ok {
		return nil, errors.New("v2 document has no deployment envelope")
	}
	upgradedDeployment := make(map[string]any, len(deployment)+1)
	for k, v := range deployment {
		upgradedDeployment[k] = v
	}
	upgradedDeployment["leases"] = map[string]any{"$type": "map", "items": []any{}}

	upgraded := make(map[string]any, len(doc))
	for k, v := range doc {
		upgraded[k] = v
	}
	upgraded["deployment"] = upgradedDeployment
	upgraded["version"] = 3
	return upgraded, nil
}
