// Package board implements the position representation, legal move
// generation and make/unmake stack of a chess engine.
//
// It is the hard core that search, evaluation, the transposition table
// and the UCI driver all build on: a Position (mailbox plus bitboards),
// a State wrapping it with side to move, castling rights, en-passant
// target and clocks, a 16-bit Move record, and a pseudo-legal generator
// with castling, en-passant and promotion handling. Everything in this
// package is synchronous, allocation-free on the hot do/undo/generate
// path, and single-threaded: a *State is owned by one goroutine at a
// time.
package board
