// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

// Package journal records composed address point requests in DuckDB.
package journal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aph-tools/aph/address"
	"github.com/aph-tools/aph/spatial"
)

// Entry is a journaled request.
type Entry struct {
	ID        int64                        `json:"id"`
	CreatedAt time.Time                    `json:"created_at"`
	Request   *address.AddressPointRequest `json:"request"`
}

// Repository handles persistence of composed requests.
type Repository interface {
	// CreateSchema creates the address_points table
	CreateSchema() error

	// Save records req and returns its id
	Save(req *address.AddressPointRequest) (int64, error)

	// List returns entries, newest first
	List(limit, offset int) ([]*Entry, error)

	// Count returns the number of entries
	Count() (int, error)

	// DB returns the underlying database connection
	DB() *sql.DB
}

type sqlRepository struct {
	db *sql.DB
}

// NewRepository returns a journal backed by db.
func NewRepository(db *sql.DB) Repository {
	return &sqlRepository{db: db}
}

func (r *sqlRepository) DB() *sql.DB {
	return r.db
}

func (r *sqlRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE SEQUENCE IF NOT EXISTS address_points_seq START 1;

		CREATE TABLE IF NOT EXISTS address_points (
			id BIGINT PRIMARY KEY DEFAULT nextval('address_points_seq'),
			point VARCHAR NOT NULL,
			lat DOUBLE NOT NULL,
			lng DOUBLE NOT NULL,
			h3_cell VARCHAR NOT NULL,
			name VARCHAR,
			house_number VARCHAR,
			street_name VARCHAR NOT NULL,
			city_name VARCHAR NOT NULL,
			state_id BIGINT NOT NULL,
			country_id BIGINT NOT NULL,
			residential BOOLEAN NOT NULL,
			lock_rank INTEGER NOT NULL,
			house_number_valid BOOLEAN NOT NULL,
			navigation_point VARCHAR,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating journal schema: %w", err)
	}

	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func (r *sqlRepository) Save(req *address.AddressPointRequest) (int64, error) {
	if req == nil {
		return 0, errors.New("request can't be nil")
	}

	var nav *string

	if req.NavigationPoint != nil {
		data, err := json.Marshal(req.NavigationPoint)
		if err != nil {
			return 0, fmt.Errorf("marshaling navigation point: %w", err)
		}

		s := string(data)
		nav = &s
	}

	point, err := req.Point.Value()
	if err != nil {
		return 0, fmt.Errorf("encoding point: %w", err)
	}

	var id int64

	err = r.db.QueryRow(`
		INSERT INTO address_points(
			point, lat, lng, h3_cell,
			name, house_number, street_name, city_name, state_id, country_id,
			residential, lock_rank, house_number_valid, navigation_point, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		point,
		req.Position.Lat,
		req.Position.Lng,
		req.Cell,
		nullString(req.Name),
		nullString(req.HouseNumber),
		req.StreetName,
		req.CityName,
		req.StateID,
		req.CountryID,
		req.Residential,
		req.LockRank,
		req.HouseNumberValid,
		nav,
		time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("saving address point: %w", err)
	}

	return id, nil
}

func (r *sqlRepository) List(limit, offset int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(`
		SELECT id, created_at, point, lat, lng, h3_cell,
			name, house_number, street_name, city_name, state_id, country_id,
			residential, lock_rank, house_number_valid, navigation_point
		FROM address_points
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing address points: %w", err)
	}
	defer rows.Close()

	var entries []*Entry

	for rows.Next() {
		var (
			e                 Entry
			req               address.AddressPointRequest
			name, hn, navJSON sql.NullString
		)

		err := rows.Scan(
			&e.ID, &e.CreatedAt,
			&req.Point, &req.Position.Lat, &req.Position.Lng, &req.Cell,
			&name, &hn, &req.StreetName, &req.CityName, &req.StateID, &req.CountryID,
			&req.Residential, &req.LockRank, &req.HouseNumberValid, &navJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning address point: %w", err)
		}

		req.Name = name.String
		req.HouseNumber = hn.String
		req.Categories = []string{address.CategoryOther}

		if navJSON.Valid {
			np := address.NewNavigationPoint(spatial.Point{})
			if err := json.Unmarshal([]byte(navJSON.String), np); err != nil {
				return nil, fmt.Errorf("parsing navigation point of %d: %w", e.ID, err)
			}

			req.NavigationPoint = np
		}

		e.Request = &req
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

func (r *sqlRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM address_points`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting address points: %w", err)
	}

	return count, nil
}
