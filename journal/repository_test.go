// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package journal

import (
	"database/sql"
	"testing"

	"github.com/aph-tools/aph/address"
	"github.com/aph-tools/aph/spatial"
	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sql.DB, Repository) {
	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)

	repo := NewRepository(db)
	require.NoError(t, repo.CreateSchema())

	return db, repo
}

func composeRequest(t *testing.T, hn string, policy address.Policy) *address.AddressPointRequest {
	t.Helper()

	parent := &address.ParentSnapshot{
		Geometry: spatial.PolygonGeometry(spatial.NewPolygon(spatial.NewRing(
			spatial.Point{X: 3397900, Y: 6523600},
			spatial.Point{X: 3397940, Y: 6523600},
			spatial.Point{X: 3397940, Y: 6523630},
			spatial.Point{X: 3397900, Y: 6523630},
		))),
		Address: address.Address{
			StreetName:  "вул. Хрещатик",
			CityName:    "Київ",
			StateID:     7,
			CountryID:   232,
			HouseNumber: hn,
		},
		LockRank: 3,
		UserRank: 4,
		Country:  "Ukraine",
	}

	req, err := address.NewComposer(address.WithJitter(address.FixedJitter{DX: 1, DY: 1})).Compose(parent, policy)
	require.NoError(t, err)

	return req
}

func TestSaveAndList(t *testing.T) {
	db, repo := setupTestDB(t)
	defer db.Close()

	first := composeRequest(t, "12А", address.Policy{})
	second := composeRequest(t, "", address.Policy{AddNavigationPoint: true, Residential: true})

	id1, err := repo.Save(first)
	require.NoError(t, err)
	id2, err := repo.Save(second)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	entries, err := repo.List(10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, id2, entries[0].ID)
	assert.False(t, entries[0].CreatedAt.IsZero())

	opts := []cmp.Option{
		cmpopts.IgnoreFields(address.AddressPointRequest{}, "Quality"),
		cmp.AllowUnexported(address.NavigationPoint{}),
	}

	if diff := cmp.Diff(second, entries[0].Request, opts...); diff != "" {
		t.Errorf("journaled request mismatch (-expected +got):\n%s", diff)
	}

	if diff := cmp.Diff(first, entries[1].Request, opts...); diff != "" {
		t.Errorf("journaled request mismatch (-expected +got):\n%s", diff)
	}
}

func TestListPaging(t *testing.T) {
	db, repo := setupTestDB(t)
	defer db.Close()

	for range 3 {
		_, err := repo.Save(composeRequest(t, "1", address.Policy{}))
		require.NoError(t, err)
	}

	entries, err := repo.List(2, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = repo.List(2, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	entries, err = repo.List(0, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSaveNil(t *testing.T) {
	db, repo := setupTestDB(t)
	defer db.Close()

	_, err := repo.Save(nil)
	assert.Error(t, err)
	assert.Same(t, db, repo.DB())
}

func TestPointColumnKeepsPrecision(t *testing.T) {
	db, repo := setupTestDB(t)
	defer db.Close()

	req := composeRequest(t, "1", address.Policy{})
	req.Point = req.Point.Add(0.123456789, 2.718281828)

	id, err := repo.Save(req)
	require.NoError(t, err)

	var text string
	require.NoError(t, db.QueryRow(`SELECT point FROM address_points WHERE id = ?`, id).Scan(&text))
	assert.Equal(t, req.Point.String(), text)

	entries, err := repo.List(1, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, req.Point, entries[0].Request.Point)
}
