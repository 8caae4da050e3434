package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreyvit/refdata"
)

func setupRegistry(t *testing.T) *refdata.Registry {
	t.Helper()

	reg := refdata.NewRegistry(refdata.Options{Logf: t.Logf})
	countries := reg.Define("countries")
	require.NoError(t, countries.Schema().DeclareField("name", refdata.FieldOptions{Type: refdata.TypeString}))
	require.NoError(t, countries.Schema().DeclareField("population", refdata.FieldOptions{Type: refdata.TypeInteger}))
	require.NoError(t, countries.ReplaceAll([]map[string]any{
		{"id": 10, "name": "Canada", "population": "38000000"},
		{"id": 2, "name": "Mexico", "population": 126000000},
	}))

	cities := reg.Define("cities")
	require.NoError(t, cities.ReplaceAll([]map[string]any{
		{"name": "Ottawa", "country_id": 10},
	}))
	return reg
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	reg := setupRegistry(t)
	path := filepath.Join(t.TempDir(), "refdata.db")
	require.NoError(t, Save(path, reg))

	restored := refdata.NewRegistry(refdata.Options{Logf: t.Logf})
	require.NoError(t, Restore(path, restored))

	assert.ElementsMatch(t, []string{"countries", "cities"}, restored.Names())

	countries := restored.Collection("countries")
	require.NotNil(t, countries)
	require.Equal(t, 2, countries.Len())

	// insertion order survives the round trip even with unordered ids
	first := countries.All().First()
	name, _ := first.Get("name")
	assert.Equal(t, "Canada", name)

	canada := countries.FindByID(10)
	require.NotNil(t, canada)
	pop, _ := canada.Get("population")
	assert.EqualValues(t, 38000000, pop)

	city := restored.Collection("cities").FindByID(1)
	require.NotNil(t, city)
	cname, _ := city.Get("name")
	assert.Equal(t, "Ottawa", cname)
}

func TestRestoreIntoExistingRegistryReplaces(t *testing.T) {
	reg := setupRegistry(t)
	path := filepath.Join(t.TempDir(), "refdata.db")
	require.NoError(t, Save(path, reg))

	// mutate after saving; restore must bring the snapshot back
	require.NoError(t, reg.Collection("countries").ReplaceAll([]map[string]any{
		{"id": 1, "name": "Atlantis"},
	}))
	require.Equal(t, 1, reg.Collection("countries").Len())

	require.NoError(t, Restore(path, reg))
	countries := reg.Collection("countries")
	require.Equal(t, 2, countries.Len())
	require.NotNil(t, countries.FindByID(10))
	assert.Nil(t, countries.FindByID(1))
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	reg := setupRegistry(t)
	path := filepath.Join(t.TempDir(), "refdata.db")
	require.NoError(t, Save(path, reg))

	require.NoError(t, reg.Collection("cities").ReplaceAll([]map[string]any{
		{"name": "Toronto"},
		{"name": "Montreal"},
	}))
	require.NoError(t, Save(path, reg))

	restored := refdata.NewRegistry(refdata.Options{})
	require.NoError(t, Restore(path, restored))
	assert.Equal(t, 2, restored.Collection("cities").Len())
}
