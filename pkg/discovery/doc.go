// Package discovery announces a panel's control UI over mDNS.
//
// The panel is advertised as a plain _http._tcp service whose TXT
// records carry the root device UUID and the page paths of the embedded
// devices, so generic network browsers and panel-aware clients can both
// find it.
package discovery
