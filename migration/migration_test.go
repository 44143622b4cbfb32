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

package migration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/orchd/orchd/codec"
	"github.com/orchd/orchd/model"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestMigrate(t *testing.T) {
	t.Run("same version is unchanged", func(t *testing.T) {
		document := []byte(`{"$type": "configuration", "version": 3}`)
		migrated, err := Migrate(3, 3, document)
		require.NoError(t, err)
		require.Equal(t, document, migrated)
	})

	t.Run("downgrades are unsupported", func(t *testing.T) {
		_, err := Migrate(3, 2, []byte(`{}`))
		require.ErrorIs(t, err, ErrUnsupportedMigration)
	})

	t.Run("missing step is unsupported", func(t *testing.T) {
		_, err := Migrate(3, 5, []byte(`{"$type": "configuration", "version": 3}`))
		require.ErrorIs(t, err, ErrUnsupportedMigration)
	})

	t.Run("invalid document fails", func(t *testing.T) {
		_, err := Migrate(1, 2, []byte("{not json"))
		require.Error(t, err)
	})

	t.Run("v1 to v2 wraps the deployment in an envelope", func(t *testing.T) {
		migrated, err := Migrate(1, 2, loadFixture(t, "configuration_v1.json"))
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(migrated, &doc))
		require.Equal(t, "configuration", doc["$type"])
		require.Equal(t, float64(2), doc["version"])

		deployment, ok := doc["deployment"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "deployment", deployment["$type"])
		require.NotContains(t, deployment, "leases")
	})

	t.Run("v1 with the wrong root fails", func(t *testing.T) {
		_, err := Migrate(1, 2, []byte(`{"$type": "node"}`))
		require.Error(t, err)
	})

	t.Run("v2 to v3 adds an empty leases mapping", func(t *testing.T) {
		v2, err := Migrate(1, 2, loadFixture(t, "configuration_v1.json"))
		require.NoError(t, err)

		migrated, err := Migrate(2, 3, v2)
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(migrated, &doc))
		require.Equal(t, float64(3), doc["version"])

		deployment, ok := doc["deployment"].(map[string]any)
		require.True(t, ok)
		leases, ok := deployment["leases"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "map", leases["$type"])
		require.Empty(t, leases["items"])
	})

	t.Run("v2 without a deployment fails", func(t *testing.T) {
		_, err := Migrate(2, 3, []byte(`{"$type": "configuration", "version": 2}`))
		require.Error(t, err)
	})

	t.Run("migration is deterministic", func(t *testing.T) {
		document := loadFixture(t, "configuration_v1.json")
		first, err := Migrate(1, CurrentVersion, document)
		require.NoError(t, err)
		second, err := Migrate(1, CurrentVersion, document)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}

// TestMigrateToCurrent upgrades the oldest supported fixture all the way
// to the current schema and decodes it through the production registry.
func TestMigrateToCurrent(t *testing.T) {
	migrated, err := Migrate(1, CurrentVersion, loadFixture(t, "configuration_v1.json"))
	require.NoError(t, err)

	decoded, err := codec.Decode(model.WireRegistry(), migrated)
	require.NoError(t, err)

	configuration, ok := decoded.(model.Configuration)
	require.True(t, ok)
	require.Equal(t, CurrentVersion, configuration.Version)
	require.Empty(t, configuration.Deployment.Leases)

	nodeID := uuid.MustParse("ab294ce4-a6c3-40cb-a0a2-484a1f09521c")
	node, ok := configuration.Deployment.Nodes[nodeID]
	require.True(t, ok)

	app, ok := node.Applications["myapp"]
	require.True(t, ok)
	require.Equal(t, "postgresql:7.6", app.Image.String())
	require.Nil(t, app.Volume)
}
