// Package songwriter is the deterministic fallback song engine. It turns
// contributor answers into a fixed-structure lyric sheet and compresses music
// and tone preferences into a bounded style prompt. Every function is pure
// and total: no I/O, no errors, output always within provider ceilings.
package songwriter
