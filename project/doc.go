// Package project projects English frame-semantic parses onto Hebrew
// sentences.
//
// For every span the syntactic head is looked up in the English dependency
// tree, the head is followed through the word alignment to a single Hebrew
// token, and the Hebrew subtree of that token becomes the projected span.
//
// Spans that can not be projected unambiguously are dropped: a frame whose
// target fails is left out of the result, a frame element that fails is
// left out of its frame. Dropping is never an error; a Report counts the
// drops by reason.
//
// All functions are pure. A Projector holds no mutable state and can be used
// concurrently.
package project
