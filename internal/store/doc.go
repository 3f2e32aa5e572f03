// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

/*
Package store persists community state (bookmarks, meetings, posts with
comments and likes, friends) in BadgerDB.

Values are JSON (goccy/go-json). Keys are namespaced by prefix:

	bookmark:{user}:{venue}              models.Bookmark
	meeting:{id}                         models.Meeting
	meeting_owner:{owner}:{id}           meeting id
	post:{id}                            models.Post
	comment:{post}:{comment}             models.Comment (UUIDv7 ids sort by time)
	like:{post}:{user}                   empty
	friend_req:{id}                      models.FriendRequest
	friend_req_to:{to}:{id}              request id
	friend_req_from:{from}:{id}          request id
	friend:{user}:{friend}               models.Friend

Multi-key changes (accepting a friend request, deleting a post with its
comments, toggling a like and its counter) happen in one transaction and are
retried on badger.ErrConflict.

Ownership is enforced here: updating or deleting another user's meeting,
post or comment returns ErrForbidden.

Open with StoreConfig.InMemory for tests and throwaway development instances.
RunGC reclaims value log space and is driven by the supervisor's maintenance
service.
*/
package store
