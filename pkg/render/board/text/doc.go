// Package text implements the string handling used by the movers table:
// greedy word wrapping with truncation, hard-capped labels, and markup
// escaping.
//
// All lengths are measured in runes. Wrapping is pure and deterministic:
// identical input always yields identical lines.
package text
