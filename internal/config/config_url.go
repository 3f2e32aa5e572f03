// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateBaseURL accepts an absolute http(s) origin such as
// https://dapi.kakao.com. The client appends API paths itself, so a path,
// query or fragment in the configured value is rejected.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse %q: %w", raw, err)
	}
	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	case u.Host == "":
		return fmt.Errorf("host is missing in %q", raw)
	case strings.Trim(u.Path, "/") != "":
		return fmt.Errorf("unexpected path %q", u.Path)
	case u.RawQuery != "" || u.Fragment != "":
		return fmt.Errorf("query and fragment are not allowed")
	}
	return nil
}
