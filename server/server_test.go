// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aph-tools/aph/address"
	"github.com/aph-tools/aph/journal"
	"github.com/aph-tools/aph/settings"
	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squareParent = `{
	"geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10]]]},
	"address": {"street_name": "Main", "city_name": "Town", "state_id": 1, "country_id": 2, "house_number": "12А"},
	"lock_rank": 5,
	"user_rank": 2,
	"country": "Ukraine",
	"navigation_points": [{"point": {"x": 0, "y": 5}}]
}`

func setupServerTest(t *testing.T, s settings.Settings, withJournal bool) (*gin.Engine, journal.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var repo journal.Repository

	if withJournal {
		db, err := sql.Open("duckdb", "")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		repo = journal.NewRepository(db)
		require.NoError(t, repo.CreateSchema())
	}

	composer := address.NewComposer(address.WithJitter(address.FixedJitter{DX: 1, DY: 2}))

	router := gin.New()
	NewServer(composer, repo, s).Routes(router)

	return router, repo
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	router.ServeHTTP(w, req)

	return w
}

func TestCreateAddressPointAPI(t *testing.T) {
	router, repo := setupServerTest(t, settings.Settings{AddNavigationPoint: true, InheritNavigationPoint: true}, true)

	w := do(t, router, http.MethodPost, "/api/address-points", `{"parent": `+squareParent+`, "residential": true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID      int64 `json:"id"`
		Request struct {
			Point struct {
				X float64 `json:"x"`
				Y float64 `json:"y"`
			} `json:"point"`
			Name            string `json:"name"`
			LockRank        int    `json:"lock_rank"`
			Residential     bool   `json:"residential"`
			NavigationPoint struct {
				Point struct {
					X float64 `json:"x"`
					Y float64 `json:"y"`
				} `json:"point"`
			} `json:"navigation_point"`
		} `json:"request"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Positive(t, resp.ID)
	assert.InDelta(t, 6.0, resp.Request.Point.X, 0)
	assert.InDelta(t, 7.0, resp.Request.Point.Y, 0)
	assert.Equal(t, "12А", resp.Request.Name)
	assert.Equal(t, 1, resp.Request.LockRank)
	assert.True(t, resp.Request.Residential)
	assert.InDelta(t, 0.0, resp.Request.NavigationPoint.Point.X, 0)
	assert.InDelta(t, 5.0, resp.Request.NavigationPoint.Point.Y, 0)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	w = do(t, router, http.MethodGet, "/api/journal?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)

	var listing struct {
		Total   int              `json:"total"`
		Entries []map[string]any `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, 1, listing.Total)
	assert.Len(t, listing.Entries, 1)
}

func TestCreateAddressPointPolicyOverride(t *testing.T) {
	router, _ := setupServerTest(t, settings.Settings{AddNavigationPoint: true}, false)

	w := do(t, router, http.MethodPost, "/api/address-points", `{"parent": `+squareParent+`, "policy": {"add_navigation_point": false}}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotContains(t, resp["request"], "navigation_point")
	assert.NotContains(t, resp, "id")
}

func TestCreateAddressPointResidentialWithPolicy(t *testing.T) {
	router, _ := setupServerTest(t, settings.Settings{}, false)

	tests := []struct {
		name string
		body string
		want bool
	}{
		{"top level flag", `{"parent": ` + squareParent + `, "residential": true, "policy": {"add_navigation_point": true}}`, true},
		{"policy flag", `{"parent": ` + squareParent + `, "policy": {"residential": true}}`, true},
		{"neither", `{"parent": ` + squareParent + `, "policy": {"add_navigation_point": true}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/api/address-points", tt.body)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			var resp struct {
				Request struct {
					Residential bool `json:"residential"`
				} `json:"request"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Request.Residential)
		})
	}
}

func TestCreateAddressPointRejectsInvalidHouseNumber(t *testing.T) {
	router, _ := setupServerTest(t, settings.Settings{}, false)

	parent := bytes.Replace([]byte(squareParent), []byte(`"12А"`), []byte(`"12-А"`), 1)

	w := do(t, router, http.MethodPost, "/api/address-points", `{"parent": `+string(parent)+`}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, router, http.MethodPost, "/api/address-points", `{"parent": `+string(parent)+`, "force": true}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateAddressPointBadInput(t *testing.T) {
	router, _ := setupServerTest(t, settings.Settings{}, false)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"parent": `},
		{"missing parent", `{}`},
		{"missing geometry", `{"parent": {"country": "Anyland", "address": {"house_number": "1"}}}`},
		{"unsupported geometry", `{"parent": {"geometry": {"type": "LineString", "coordinates": []}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/api/address-points", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestInteriorPointAPI(t *testing.T) {
	router, _ := setupServerTest(t, settings.Settings{}, false)

	w := do(t, router, http.MethodPost, "/api/interior-point",
		`{"geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10]],[[3,3],[7,3],[7,7],[3,7]]]}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Point struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		} `json:"point"`
		Found    bool     `json:"found"`
		Quality  *float64 `json:"quality"`
		Inside   bool     `json:"inside"`
		Distance float64  `json:"distance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// the outer ring alone is scanned, so the point lands in the hole
	assert.True(t, resp.Found)
	assert.InDelta(t, 5.0, resp.Point.X, 0)
	assert.InDelta(t, 10.0, *resp.Quality, 0)
	assert.False(t, resp.Inside)
	assert.InDelta(t, 0.0, resp.Distance, 0)

	w = do(t, router, http.MethodPost, "/api/interior-point",
		`{"geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10]]]}, "center": {"x": 2, "y": 5}}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Found)
	assert.True(t, resp.Inside)
	assert.InDelta(t, 5.0, resp.Point.X, 0)
	// 3 projected meters at the equator
	assert.InDelta(t, 2.9966, resp.Distance, 1e-3)

	w = do(t, router, http.MethodPost, "/api/interior-point",
		`{"geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10]]]}, "center": {"x": 42, "y": 50}}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp.Quality = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Quality)
	assert.InDelta(t, 42.0, resp.Point.X, 0)

	w = do(t, router, http.MethodPost, "/api/interior-point", `{"geometry": {"type": "Point", "coordinates": [1, 2]}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateHouseNumberAPI(t *testing.T) {
	router, _ := setupServerTest(t, settings.Settings{}, false)

	tests := []struct {
		query string
		want  bool
	}{
		{"country=Ukraine&house_number=12%D0%90", true},
		{"country=Ukraine&house_number=12-%D0%90", false},
		{"country=Anyland&house_number=x", true},
		{"house_number=", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := do(t, router, http.MethodGet, "/api/house-numbers/validate?"+tt.query, "")
			require.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				Valid bool `json:"valid"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Valid)
		})
	}
}

func TestLabelsAPI(t *testing.T) {
	router, _ := setupServerTest(t, settings.Settings{}, false)

	w := do(t, router, http.MethodGet, "/api/labels?locale=uk", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Locale string            `json:"locale"`
		Labels map[string]string `json:"labels"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "uk", resp.Locale)
	assert.Equal(t, "Створити точку", resp.Labels["createPoint"])
}

func TestRenameAPI(t *testing.T) {
	body := `{"categories": ["OTHER"], "name": "", "house_number": "7"}`

	router, _ := setupServerTest(t, settings.Settings{AutoSetHNToName: true}, false)
	w := do(t, router, http.MethodPost, "/api/rename", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name": "7", "changed": true}`, w.Body.String())

	router, _ = setupServerTest(t, settings.Settings{}, false)
	w = do(t, router, http.MethodPost, "/api/rename", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name": "", "changed": false}`, w.Body.String())
}

func TestJournalNotConfigured(t *testing.T) {
	router, _ := setupServerTest(t, settings.Settings{}, false)

	w := do(t, router, http.MethodGet, "/api/journal", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJournalBadPaging(t *testing.T) {
	router, _ := setupServerTest(t, settings.Settings{}, true)

	w := do(t, router, http.MethodGet, "/api/journal?limit=many", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, classify(address.ErrNoGeometry).Status)
	assert.Equal(t, http.StatusUnprocessableEntity, classify(address.ErrInvalidHouseNumber).Status)
	assert.Equal(t, http.StatusInternalServerError, classify(errors.New("disk on fire")).Status)

	reqErr := badRequest("invalid body", address.ErrNoParent)
	assert.Same(t, reqErr, classify(reqErr))
	assert.True(t, errors.Is(reqErr, address.ErrNoParent))
	assert.Equal(t, "invalid body: no parent feature selected", reqErr.Error())
	assert.Equal(t, "bare", (&RequestError{Message: "bare"}).Error())
}
