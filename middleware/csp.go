package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/devmarvs/csphead"
	"github.com/devmarvs/csphead/logging"
)

type nonceKey struct{}

// CSPOptions configures the policy middleware.
type CSPOptions struct {
	// Policy is served on every response under its own field name.
	Policy *csphead.Header
	// ReportOnly is an optional second policy, typically a stricter
	// candidate being trialed alongside the enforced one.
	ReportOnly *csphead.Header
	// Nonce mints a per-request nonce, appends its token to the NonceInto
	// directives of both policies and exposes the raw value via NonceFrom.
	Nonce bool
	// NonceInto lists the directives that receive the nonce token.
	// Defaults to script-src.
	NonceInto []string
	Logger    *slog.Logger
}

// CSP serves Content-Security-Policy headers on every response.
func CSP(options CSPOptions) func(http.Handler) http.Handler {
	logger := options.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	nonceInto := []string{csphead.ScriptSrc}
	if len(options.NonceInto) > 0 {
		nonceInto = nil
		for _, name := range options.NonceInto {
			if !csphead.ValidDirective(name) {
				logger.Warn("dropping unknown nonce directive", "directive", name)
				continue
			}
			nonceInto = append(nonceInto, name)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if options.Policy == nil && options.ReportOnly == nil {
				next.ServeHTTP(w, r)
				return
			}

			policy := options.Policy
			reportOnly := options.ReportOnly
			if options.Nonce {
				value := csphead.NonceValue()
				token := csphead.Nonce(value)
				policy = withNonce(policy, nonceInto, token)
				reportOnly = withNonce(reportOnly, nonceInto, token)
				r = r.WithContext(context.WithValue(r.Context(), nonceKey{}, value))
			}

			if policy != nil {
				w.Header().Set(policy.FieldName(), policy.FieldValue())
			}
			if reportOnly != nil {
				w.Header().Set(reportOnly.FieldName(), reportOnly.FieldValue())
			}
			next.ServeHTTP(w, r)
		})
	}
}

// withNonce appends the nonce token to each listed directive, creating the
// directive when absent.
func withNonce(h *csphead.Header, names []string, token string) *csphead.Header {
	if h == nil {
		return nil
	}
	clone := h.Clone()
	for _, name := range names {
		sources, _ := clone.Directive(name)
		// Directive names were validated at construction and the token is
		// base64, so this cannot fail.
		_ = clone.SetDirective(name, append(sources, token)...)
	}
	return clone
}

// NonceFrom returns the request's nonce value when the middleware minted
// one.
func NonceFrom(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(nonceKey{}).(string)
	return value, ok
}
