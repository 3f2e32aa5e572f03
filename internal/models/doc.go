// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

/*
Package models defines the data structures shared across Moim.

# Model Categories

Kakao API Models (kakao.go):
  - RawPlace: one keyword-search document, fields kept as provider strings
  - ImageDocument: one image-search document
  - Region: one coord2regioncode document

Discovery Models (venue.go):
  - Category: closed set of venue category tags
  - Venue: normalized, filter-approved venue served to clients

Community Models (community.go):
  - Bookmark, Meeting, Post, Comment, FriendRequest, Friend

# JSON Conventions

Provider models keep Kakao's snake_case keys. Models served by the API use
camelCase keys, matching the mobile client.

# Immutability

A Venue is built once by the normalizer and never modified afterwards; the
thumbnail enricher returns copies with Thumbnail set.
*/
package models
