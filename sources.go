package csphead

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
)

// Keyword sources. The single quotes are part of the token.
const (
	SourceNone           = "'none'"
	SourceSelf           = "'self'"
	SourceUnsafeInline   = "'unsafe-inline'"
	SourceUnsafeEval     = "'unsafe-eval'"
	SourceUnsafeHashes   = "'unsafe-hashes'"
	SourceWasmUnsafeEval = "'wasm-unsafe-eval'"
	SourceStrictDynamic  = "'strict-dynamic'"
	SourceReportSample   = "'report-sample'"

	SourceWildcard = "*"

	SchemeBlob  = "blob:"
	SchemeData  = "data:"
	SchemeHTTPS = "https:"
	SchemeWSS   = "wss:"
)

// HashAlg identifies a hash source algorithm.
type HashAlg string

const (
	SHA256 HashAlg = "sha256"
	SHA384 HashAlg = "sha384"
	SHA512 HashAlg = "sha512"
)

// Nonce wraps a nonce value as a source token.
func Nonce(value string) string {
	return "'nonce-" + value + "'"
}

// NonceValue returns a fresh base64 nonce value backed by 128 bits from
// crypto/rand, without the token wrapper. Templates embed this value in
// nonce attributes while the policy carries Nonce(value).
func NonceValue() string {
	buf := make([]byte, 16)
	// crypto/rand.Read never returns an error.
	_, _ = rand.Read(buf)
	return base64.StdEncoding.EncodeToString(buf)
}

// RandomNonce returns a fresh nonce source token.
func RandomNonce() string {
	return Nonce(NonceValue())
}

// SourceHash wraps an already computed base64 digest as a hash source token.
func SourceHash(alg HashAlg, digest string) string {
	return "'" + string(alg) + "-" + digest + "'"
}

// HashFor computes the hash source token that allows the given inline
// content. Unknown algorithms yield an empty string.
func (a HashAlg) HashFor(content string) string {
	var sum []byte
	switch a {
	case SHA256:
		digest := sha256.Sum256([]byte(content))
		sum = digest[:]
	case SHA384:
		digest := sha512.Sum384([]byte(content))
		sum = digest[:]
	case SHA512:
		digest := sha512.Sum512([]byte(content))
		sum = digest[:]
	default:
		return ""
	}
	return SourceHash(a, base64.StdEncoding.EncodeToString(sum))
}
