// Package rsa implements textbook RSA over arbitrary-precision integers.
//
// Keys are built from two caller-supplied primes, and encrypt integers smaller
// than the modulus with no padding. Text is encrypted one character at a time,
// which only supports character codes up to 0xFF.
//
// This is not a secure encryption scheme, and must not be used to protect data.
package rsa
