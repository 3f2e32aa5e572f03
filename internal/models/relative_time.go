// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package models

import (
	"fmt"
	"time"
)

// RelativeTime formats t relative to now the way the community board shows
// timestamps: "방금 전", "N분 전", "N시간 전", "N일 전", then a "2006. 1. 2." date.
// Future timestamps (clock skew) read as "방금 전".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "방금 전"
	case d < time.Hour:
		return fmt.Sprintf("%d분 전", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d시간 전", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d일 전", int(d/(24*time.Hour)))
	default:
		return t.In(seoul).Format("2006. 1. 2.")
	}
}

var seoul = loadSeoul()

func loadSeoul() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}
