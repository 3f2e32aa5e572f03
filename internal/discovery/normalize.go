// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package discovery

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/moim/internal/models"
)

// DefaultNeighborhood is the label used when an address has no usable token.
const DefaultNeighborhood = "서초구"

// Normalizer converts raw places into served venues.
type Normalizer struct {
	Resolver            *Resolver
	DefaultNeighborhood string
}

// Normalize converts raw using the built-in default neighborhood label.
func Normalize(raw models.RawPlace, tag models.Category, resolver *Resolver) models.Venue {
	return Normalizer{Resolver: resolver, DefaultNeighborhood: DefaultNeighborhood}.Normalize(raw, tag)
}

// Normalize converts raw into a models.Venue. It is a pure function of its inputs.
func (n Normalizer) Normalize(raw models.RawPlace, tag models.Category) models.Venue {
	address := raw.RoadAddressName
	if address == "" {
		address = raw.AddressName
	}
	icon := DefaultIcon
	if n.Resolver != nil {
		icon = n.Resolver.Icon(tag)
	}
	return models.Venue{
		ID:             raw.ID,
		Name:           raw.PlaceName,
		Category:       tag,
		Location:       NeighborhoodLabel(raw.AddressName, n.DefaultNeighborhood),
		Address:        address,
		Phone:          raw.Phone,
		Distance:       FormatDistance(raw.Distance),
		Icon:           icon,
		URL:            raw.PlaceURL,
		X:              parseFloat(raw.X),
		Y:              parseFloat(raw.Y),
		CategoryDetail: raw.CategoryName,
	}
}

// NeighborhoodLabel picks the display neighborhood from a lot-number address:
// the first token ending in 동, else the third token, else fallback.
//
//	"서울특별시 강남구 역삼동 123-4" -> "역삼동"
//	"경기 성남시 분당구 판교역로 1" -> "분당구"
func NeighborhoodLabel(address, fallback string) string {
	if fallback == "" {
		fallback = DefaultNeighborhood
	}
	tokens := strings.Fields(address)
	for _, tok := range tokens {
		if strings.HasSuffix(tok, "동") {
			return tok
		}
	}
	if len(tokens) >= 3 {
		return tokens[2]
	}
	return fallback
}

// FormatDistance renders a provider distance in meters as kilometers with one
// decimal, rounding half away from zero: "1346" -> "1.3km", "50" -> "0.1km".
// Empty or unparsable input renders as "0.0km".
func FormatDistance(meters string) string {
	m, err := strconv.ParseFloat(strings.TrimSpace(meters), 64)
	if err != nil || math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
		m = 0
	}
	km := math.Round(m/100) / 10
	return strconv.FormatFloat(km, 'f', 1, 64) + "km"
}

// FormatDistanceCompact renders meters as "850m" below 1 km and "1.3km" above.
func FormatDistanceCompact(meters int) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", meters)
	}
	return strconv.FormatFloat(float64(meters)/1000, 'f', 1, 64) + "km"
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
