// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package cache

import (
	"strings"
	"unicode/utf8"
)

// AhoCorasick is an immutable multi-pattern substring matcher.
// It finds every occurrence of every pattern in O(n + m + z) time, where:
//   - n = length of text
//   - m = total length of all patterns
//   - z = number of matches
//
// Patterns and text are lower-cased before matching. Each pattern keeps the
// index it was declared at, so callers can ask for the earliest declared
// pattern that occurs anywhere in the text (rule-list semantics) rather than
// the leftmost occurrence.
//
// Example:
//
//	ac := NewAhoCorasick([]string{"주점", "bar", "pub"})
//	m, ok := ac.Earliest("Sports Pub & Bar")
//	// ok == true, m.Pattern == "bar", m.Index == 1
//
// An AhoCorasick is safe for concurrent use once constructed.
type AhoCorasick struct {
	root     *acNode
	patterns []string // lower-cased, by declared index; "" for skipped entries
	count    int
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // declared indices of patterns ending here, ascending
}

// Match is one pattern occurrence in a text.
type Match struct {
	Pattern  string // lower-cased pattern text
	Index    int    // declared index of the pattern
	Position int    // byte offset of the match in the lower-cased text
}

// NewAhoCorasick builds an automaton over patterns. Empty patterns are
// skipped but still consume a declared index.
func NewAhoCorasick(patterns []string) *AhoCorasick {
	ac := &AhoCorasick{
		root:     newACNode(),
		patterns: make([]string, len(patterns)),
	}

	for i, p := range patterns {
		lowered := strings.ToLower(p)
		ac.patterns[i] = lowered
		if lowered == "" {
			continue
		}
		ac.insert(i, lowered)
		ac.count++
	}

	ac.buildFailureLinks()
	return ac
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

func (ac *AhoCorasick) insert(index int, pattern string) {
	node := ac.root
	for _, ch := range pattern {
		next := node.children[ch]
		if next == nil {
			next = newACNode()
			node.children[ch] = next
		}
		node = next
	}
	node.output = append(node.output, index)
}

// buildFailureLinks builds failure links using BFS and merges outputs so that
// every node reports all patterns that are suffixes of its path.
func (ac *AhoCorasick) buildFailureLinks() {
	queue := make([]*acNode, 0, len(ac.root.children))
	for _, child := range ac.root.children {
		child.failure = ac.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = ac.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = mergeSorted(child.output, child.failure.output)
		}
	}
}

func mergeSorted(a, b []int) []int {
	if len(b) == 0 {
		return a
	}
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// scan walks text and calls visit for every node reached after a character.
// visit returns false to stop early.
func (ac *AhoCorasick) scan(text string, visit func(end int, node *acNode) bool) {
	node := ac.root
	for i, ch := range strings.ToLower(text) {
		for node != ac.root && node.children[ch] == nil {
			node = node.failure
		}
		if next := node.children[ch]; next != nil {
			node = next
		}
		if len(node.output) > 0 && !visit(i+utf8.RuneLen(ch), node) {
			return
		}
	}
}

// Search returns every pattern occurrence in text, in text order.
func (ac *AhoCorasick) Search(text string) []Match {
	if ac == nil || ac.count == 0 {
		return nil
	}

	var matches []Match
	ac.scan(text, func(end int, node *acNode) bool {
		for _, idx := range node.output {
			p := ac.patterns[idx]
			matches = append(matches, Match{Pattern: p, Index: idx, Position: end - len(p)})
		}
		return true
	})
	return matches
}

// Earliest returns the occurrence of the lowest-indexed pattern found in text.
// When that pattern occurs more than once, the leftmost occurrence is reported.
func (ac *AhoCorasick) Earliest(text string) (Match, bool) {
	if ac == nil || ac.count == 0 {
		return Match{}, false
	}

	best := Match{Index: -1}
	ac.scan(text, func(end int, node *acNode) bool {
		idx := node.output[0]
		if best.Index == -1 || idx < best.Index {
			p := ac.patterns[idx]
			best = Match{Pattern: p, Index: idx, Position: end - len(p)}
		}
		return best.Index != 0
	})

	if best.Index == -1 {
		return Match{}, false
	}
	return best, true
}

// Contains reports whether any pattern occurs in text.
func (ac *AhoCorasick) Contains(text string) bool {
	if ac == nil || ac.count == 0 {
		return false
	}
	found := false
	ac.scan(text, func(int, *acNode) bool {
		found = true
		return false
	})
	return found
}

// PatternCount returns the number of non-empty patterns in the automaton.
func (ac *AhoCorasick) PatternCount() int {
	if ac == nil {
		return 0
	}
	return ac.count
}

// Patterns returns the lower-cased patterns in declared order.
func (ac *AhoCorasick) Patterns() []string {
	if ac == nil {
		return nil
	}
	out := make([]string, len(ac.patterns))
	copy(out, ac.patterns)
	return out
}
