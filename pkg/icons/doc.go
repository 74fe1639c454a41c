// Package icons resolves icon references like "twemoji:rocket" to inline
// SVG data URLs suitable for embedding in rendered images.
//
// The [Client] fetches glyphs from a public icon API, caches responses on
// disk so repeated renders never re-fetch, retries transient failures with
// exponential backoff, and memoizes resolved glyphs in process so concurrent
// renders of the same icon share one lookup. Lookups that ultimately fail
// report the failure to the caller, which degrades the icon part to plain
// text rather than failing the whole render.
package icons
