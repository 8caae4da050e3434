package finders

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreyvit/refdata"
)

func setupPeople(t *testing.T) *refdata.Collection {
	t.Helper()

	reg := refdata.NewRegistry(refdata.Options{Logf: t.Logf})
	people := reg.Define("people")
	require.NoError(t, people.Schema().DeclareField("name", refdata.FieldOptions{Type: refdata.TypeString}))
	require.NoError(t, people.Schema().DeclareField("age", refdata.FieldOptions{Type: refdata.TypeInteger}))
	require.NoError(t, people.ReplaceAll([]map[string]any{
		{"name": "Alice", "age": 30},
		{"name": "Bob", "age": 35},
		{"name": "Carol", "age": 35},
	}))
	return people
}

func TestParse(t *testing.T) {
	req, err := Parse("by_name")
	require.NoError(t, err)
	assert.Equal(t, []Cond{{Field: "name"}}, req.Conds)

	req, err = Parse("find_by_name_and_age")
	require.NoError(t, err)
	assert.Equal(t, []Cond{{Field: "name"}, {Field: "age"}}, req.Conds)

	req, err = Parse("by_age_and_not_name")
	require.NoError(t, err)
	assert.Equal(t, []Cond{{Field: "age"}, {Field: "name", Negate: true}}, req.Conds)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("name_and_age")
	require.Error(t, err)

	_, err = Parse("by_name_and_")
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	people := setupPeople(t)

	req, err := Parse("by_age")
	require.NoError(t, err)
	s, err := req.Run(people.All(), 35)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count())

	req, err = Parse("by_age_and_not_name")
	require.NoError(t, err)
	s, err = req.Run(people.All(), 35, "Bob")
	require.NoError(t, err)
	require.Equal(t, 1, s.Count())
	name, _ := s.First().Get("name")
	assert.Equal(t, "Carol", name)
}

func TestRunArgumentMismatch(t *testing.T) {
	people := setupPeople(t)
	req, err := Parse("by_name_and_age")
	require.NoError(t, err)
	_, err = req.Run(people.All(), "Alice")
	require.Error(t, err)
}

func TestFirst(t *testing.T) {
	people := setupPeople(t)

	r, err := First(people.All(), "find_by_name", "Alice")
	require.NoError(t, err)
	require.NotNil(t, r)
	age, _ := r.Get("age")
	assert.Equal(t, int64(30), age)

	r, err = First(people.All(), "by_name", "Nobody")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestFirstStrict(t *testing.T) {
	people := setupPeople(t)

	_, err := FirstStrict(people.All(), "by_name", "Nobody")
	var nfe *refdata.NotFoundError
	require.True(t, errors.As(err, &nfe))

	r, err := FirstStrict(people.All(), "by_name", "Bob")
	require.NoError(t, err)
	require.NotNil(t, r)
}
