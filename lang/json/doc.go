// Package json lexes JSON text into tokens.
//
// String tokens carry both their source text and their decoded value.
// Numbers follow the JSON grammar exactly: an optional minus sign, an
// integer part without leading zeros, an optional fraction and an optional
// exponent.
package json
