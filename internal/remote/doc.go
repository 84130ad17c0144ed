// Package remote performs the HTTP GETs behind every command: raw template
// text, GitHub and SPDX JSON documents, and file downloads. Requests carry a
// fixed User-Agent and are bounded by a single timeout; there are no retries.
// Failures surface as *TransportError (the request never completed) or
// *HTTPStatusError (the server answered with a non-2xx status).
package remote
