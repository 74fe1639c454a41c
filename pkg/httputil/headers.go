package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CacheValidator carries the validators for a rendered image response.
// The ETag is derived from the full resolved parameter set, so identical
// requests always produce identical validators.
type CacheValidator struct {
	ETag         string
	LastModified time.Time
}

// Policy decides which cache headers a rendered image response carries.
//
// In production, rendered images are addressed entirely by their request
// parameters, so responses are long-lived and immutable. In development,
// caching is disabled so template and preset edits show up immediately.
type Policy struct {
	// Production selects long-lived immutable caching. When false the
	// policy emits no-store directives instead.
	Production bool

	// MaxAge is the max-age used in production. Zero means one hour.
	MaxAge time.Duration
}

// Validator computes a CacheValidator from the canonical form of the
// resolved render parameters. The parameters are JSON-marshaled and hashed,
// so any two requests that resolve to the same parameters share an ETag.
func Validator(params any) (CacheValidator, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return CacheValidator{}, err
	}
	sum := sha256.Sum256(data)
	return CacheValidator{
		ETag:         fmt.Sprintf("%q", hex.EncodeToString(sum[:])),
		LastModified: time.Now().UTC(),
	}, nil
}

// ShouldReturn304 reports whether the request's If-None-Match header matches
// the validator's ETag, meaning the client already holds the current bytes.
// Only exact matches count; weak comparison is not needed because the ETag
// is fully deterministic.
func (p Policy) ShouldReturn304(r *http.Request, v CacheValidator) bool {
	if !p.Production {
		return false
	}
	match := r.Header.Get("If-None-Match")
	return match != "" && match == v.ETag
}

// Apply writes the policy's cache headers to the response.
func (p Policy) Apply(w http.ResponseWriter, v CacheValidator) {
	h := w.Header()
	if !p.Production {
		h.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		h.Set("Pragma", "no-cache")
		return
	}
	maxAge := p.MaxAge
	if maxAge == 0 {
		maxAge = time.Hour
	}
	h.Set("Cache-Control", fmt.Sprintf("public, max-age=%d, immutable", int(maxAge.Seconds())))
	h.Set("ETag", v.ETag)
	h.Set("Last-Modified", v.LastModified.Format(http.TimeFormat))
}
