// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/aph-tools/aph/address"
	"github.com/aph-tools/aph/i18n"
	"github.com/aph-tools/aph/journal"
	"github.com/aph-tools/aph/settings"
	"github.com/aph-tools/aph/spatial"
	"github.com/gin-gonic/gin"
)

type Server struct {
	composer *address.Composer
	journal  journal.Repository
	settings settings.Settings
}

// NewServer returns a server over composer. repo may be nil, in which case
// requests are not journaled.
func NewServer(composer *address.Composer, repo journal.Repository, s settings.Settings) *Server {
	return &Server{
		composer: composer,
		journal:  repo,
		settings: s,
	}
}

// Routes registers the API on r.
func (s *Server) Routes(r gin.IRouter) {
	r.POST("/api/address-points", s.createAddressPoint)
	r.POST("/api/interior-point", s.interiorPoint)
	r.GET("/api/house-numbers/validate", s.validateHouseNumber)
	r.GET("/api/labels", s.labels)
	r.POST("/api/rename", s.rename)
	r.GET("/api/journal", s.listJournal)
}

func (s *Server) Run(addr string) error {
	r := gin.Default()
	s.Routes(r)

	return r.Run(addr)
}

func fail(ctx *gin.Context, err error) {
	reqErr := classify(err)
	if reqErr.Status >= http.StatusInternalServerError {
		log.Printf("%s %s failed - %v", ctx.Request.Method, ctx.Request.URL.Path, err)
	}

	ctx.JSON(reqErr.Status, gin.H{"error": reqErr.Error()})
}

type createRequest struct {
	Parent      *address.ParentSnapshot `json:"parent"`
	Residential bool                    `json:"residential"`
	// Policy overrides the saved settings when present. Residential is set
	// when either the top level flag or the policy asks for it.
	Policy *address.Policy `json:"policy"`
	Force  bool            `json:"force"`
}

type createResponse struct {
	ID      int64                        `json:"id,omitempty"`
	Request *address.AddressPointRequest `json:"request"`
}

func (s *Server) createAddressPoint(ctx *gin.Context) {
	var body createRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		fail(ctx, badRequest("invalid body", err))

		return
	}

	policy := s.settings.Policy(body.Residential)
	if body.Policy != nil {
		policy = *body.Policy
		policy.Residential = policy.Residential || body.Residential
	}

	if body.Parent != nil && !body.Force && !s.composer.CanCreate(body.Parent) {
		fail(ctx, fmt.Errorf("%q in %s: %w", body.Parent.Address.HouseNumber, body.Parent.Country, address.ErrInvalidHouseNumber))

		return
	}

	req, err := s.composer.Compose(body.Parent, policy)
	if err != nil {
		fail(ctx, err)

		return
	}

	resp := createResponse{Request: req}

	if s.journal != nil {
		id, err := s.journal.Save(req)
		if err != nil {
			fail(ctx, err)

			return
		}

		resp.ID = id
	}

	ctx.JSON(http.StatusCreated, resp)
}

type interiorRequest struct {
	Geometry spatial.Geometry `json:"geometry"`
	// Center defaults to the outer ring centroid.
	Center *spatial.Point `json:"center"`
}

type interiorResponse struct {
	Point    spatial.Point `json:"point"`
	Found    bool          `json:"found"`
	Quality  *float64      `json:"quality,omitempty"`
	Inside   bool          `json:"inside"`
	Distance float64       `json:"distance"` // meters on the ground from center to point
}

func (s *Server) interiorPoint(ctx *gin.Context) {
	var body interiorRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		fail(ctx, badRequest("invalid body", err))

		return
	}

	if body.Geometry.Polygon == nil {
		fail(ctx, badRequest("geometry must be a polygon", nil))

		return
	}

	pg := *body.Geometry.Polygon

	center := pg.Outer.Centroid()
	if body.Center != nil {
		center = *body.Center
	}

	p, quality := pg.Outer.InteriorPoint(center)

	resp := interiorResponse{Point: p, Inside: pg.Contains(p), Distance: center.GroundDistance(p)}
	if quality != spatial.NoSegment {
		resp.Found = true
		resp.Quality = &quality
	}

	ctx.JSON(http.StatusOK, resp)
}

func (s *Server) validateHouseNumber(ctx *gin.Context) {
	country := ctx.DefaultQuery("country", address.DefaultCountry)
	hn := ctx.Query("house_number")

	ctx.JSON(http.StatusOK, gin.H{
		"country":      country,
		"house_number": hn,
		"valid":        s.composer.CanCreate(&address.ParentSnapshot{Country: country, Address: address.Address{HouseNumber: hn}}),
	})
}

func (s *Server) labels(ctx *gin.Context) {
	locale := ctx.Query("locale")
	if locale == "" {
		locale = ctx.GetHeader("Accept-Language")
	}

	ctx.JSON(http.StatusOK, gin.H{
		"locale": i18n.Match(locale).String(),
		"labels": i18n.Labels(locale),
	})
}

type renameRequest struct {
	Categories  []string `json:"categories"`
	Name        string   `json:"name"`
	HouseNumber string   `json:"house_number"`
}

func (s *Server) rename(ctx *gin.Context) {
	var body renameRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		fail(ctx, badRequest("invalid body", err))

		return
	}

	name, changed := body.Name, false
	if s.settings.AutoSetHNToName {
		if n, ok := address.NameFromHouseNumber(body.Categories, body.Name, body.HouseNumber); ok {
			name, changed = n, true
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"name": name, "changed": changed})
}

func (s *Server) listJournal(ctx *gin.Context) {
	if s.journal == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "journal not configured"})

		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "100"))
	if err != nil {
		fail(ctx, badRequest("invalid limit", err))

		return
	}

	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil {
		fail(ctx, badRequest("invalid offset", err))

		return
	}

	entries, err := s.journal.List(limit, offset)
	if err != nil {
		fail(ctx, err)

		return
	}

	total, err := s.journal.Count()
	if err != nil {
		fail(ctx, err)

		return
	}

	if entries == nil {
		entries = []*journal.Entry{}
	}

	ctx.JSON(http.StatusOK, gin.H{"total": total, "entries": entries})
}
