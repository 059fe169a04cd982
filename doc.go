// Package fec implements the forward-error-correction inner loop of a 5G
// NR physical layer: LDPC base-graph expansion, code-block segmentation,
// LDPC encode/rate-match/rate-dematch/decode, and the polar codec used by
// PDCCH/PBCH.
//
// The package holds only the handful of types and sentinels shared by
// every sub-package (basegraph, segment, ldpc, crc, ratematch, polar,
// ctrlplane); the algorithms themselves live in those sub-packages.
package fec
