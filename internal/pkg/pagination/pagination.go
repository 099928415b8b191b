package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Params represents skip/take paging parameters as the record store expects
type Params struct {
	Page int `json:"page"`
	Take int `json:"take"`
	Skip int `json:"-"`
}

// DefaultTake is the default number of items per page
const DefaultTake = 20

// MaxTake is the maximum number of items per page
const MaxTake = 100

// GetParams extracts paging parameters from request
func GetParams(c *fiber.Ctx) *Params {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	take, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultTake)))

	if page < 1 {
		page = 1
	}
	if take < 1 {
		take = DefaultTake
	}
	if take > MaxTake {
		take = MaxTake
	}

	return &Params{
		Page: page,
		Take: take,
		Skip: (page - 1) * take,
	}
}

// Meta represents paging metadata returned alongside list payloads
type Meta struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Count   int  `json:"count"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// GetMeta builds metadata for a page. The record store reports no total, so
// has_next is inferred from a full page.
func GetMeta(params *Params, count int) *Meta {
	return &Meta{
		Page:    params.Page,
		Limit:   params.Take,
		Count:   count,
		HasNext: count == params.Take,
		HasPrev: params.Page > 1,
	}
}
