// Package scan walks an angle-resolved NEXAFS measurement archive and
// derives molecule, absorption edge, and angle metadata from directory and
// file names.
//
// The expected layout is <root>/<molecule>/<edge>/<angle files>, e.g.
// "PTCDA/carbon/45deg_scan.txt". The scanner only reads the tree; it never
// writes anything, and every derivation rule lives in this package so the
// CLI and tests share one implementation.
package scan
