package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(name string) NEVR {
	return NEVR{
		Name:  name,
		Epoch: NewNullString("0"),
		Rel:   NewNullString("1"),
		Ver:   NewNullString("1.0"),
	}
}

func TestMergeInsertsBothRecords(t *testing.T) {
	ix := NewIndex()
	key := testKey("foo")

	err := ix.Merge(key, &PrimaryPackage{Name: "foo"}, &FilelistsPackage{Name: "foo"})
	require.NoError(t, err)

	assert.Equal(t, 1, ix.Len())
	assert.Contains(t, ix.Primary, key)
	assert.Contains(t, ix.Filelists, key)
}

func TestMergeOverwritesSameIdentity(t *testing.T) {
	ix := NewIndex()
	key := testKey("foo")

	require.NoError(t, ix.Merge(key, &PrimaryPackage{Name: "foo", Location: "a.rpm"}, &FilelistsPackage{Name: "foo"}))
	require.NoError(t, ix.Merge(key, &PrimaryPackage{Name: "foo", Location: "b.rpm"}, &FilelistsPackage{Name: "foo"}))

	assert.Equal(t, 1, ix.Len())
	assert.Equal(t, "b.rpm", ix.Primary[key].Location)
}

func TestMergeRejectsEmptyName(t *testing.T) {
	ix := NewIndex()

	err := ix.Merge(NEVR{}, &PrimaryPackage{}, &FilelistsPackage{})
	require.Error(t, err)
	assert.Equal(t, 0, ix.Len())
}

func TestMergeRejectsHalfPair(t *testing.T) {
	ix := NewIndex()
	key := testKey("foo")

	require.Error(t, ix.Merge(key, nil, &FilelistsPackage{Name: "foo"}))
	require.Error(t, ix.Merge(key, &PrimaryPackage{Name: "foo"}, nil))

	// Neither map was touched.
	assert.Empty(t, ix.Primary)
	assert.Empty(t, ix.Filelists)
}

func TestNullStringKeysCompareByValue(t *testing.T) {
	// Identity keys must distinguish a null epoch from "0" while still
	// comparing equal for equal values.
	a := NEVR{Name: "foo", Ver: NewNullString("1.0"), Rel: NewNullString("1")}
	b := NEVR{Name: "foo", Ver: NewNullString("1.0"), Rel: NewNullString("1")}
	withEpoch := NEVR{Name: "foo", Epoch: NewNullString("0"), Ver: NewNullString("1.0"), Rel: NewNullString("1")}

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, withEpoch)

	m := map[NEVR]bool{a: true}
	assert.True(t, m[b])
	assert.False(t, m[withEpoch])
}
