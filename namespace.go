package ncxml

import (
	"strings"
	"sync"
)

// Define netconf and vendor schema namespace URIs.
const (
	// NetconfNS is the base NETCONF namespace.
	NetconfNS = "urn:ietf:params:xml:ns:netconf:base:1.0"
	// NetconfNotifyNS is the NETCONF notification namespace.
	NetconfNotifyNS = "urn:ietf:params:xml:ns:netconf:notification:1.0"
	// TailfAAANS is the namespace for the Tail-f AAA data model.
	TailfAAANS = "http://tail-f.com/ns/aaa/1.1"
	// TailfExecdNS is the namespace for the Tail-f execd data model.
	TailfExecdNS = "http://tail-f.com/ns/execd/1.1"
	// CiscoCPINS is the namespace for the Cisco CPI data model.
	CiscoCPINS = "http://www.cisco.com/cpi_10/schema"
	// FlowmonNS is the namespace for the Flowmon data model.
	FlowmonNS = "http://www.liberouter.org/ns/netopeer/flowmon/1.0"
)

// defaultPrefixes holds the built-in namespace to prefix table installed by
// RegisterDefaultPrefixes.
var defaultPrefixes = map[string]string{
	NetconfNS:       "nc",
	NetconfNotifyNS: "ncEvent",
	TailfAAANS:      "aaa",
	TailfExecdNS:    "execd",
	CiscoCPINS:      "cpi",
	FlowmonNS:       "fm",
}

// Process-wide namespace URI to prefix table consulted by serialization.
// Registration is normally confined to startup, but the table is guarded so
// late registration from another goroutine cannot race the serializer.
var prefixTable = struct {
	sync.RWMutex
	byURI map[string]string
}{byURI: map[string]string{}}

// RegisterPrefix records that uri should be serialized using the given short
// prefix. Registration is idempotent; registering the same URI again simply
// replaces the preferred prefix, and the most recent registration wins on
// the next serialization. An empty prefix marks uri as the default namespace.
func RegisterPrefix(prefix, uri string) {
	prefixTable.Lock()
	defer prefixTable.Unlock()
	prefixTable.byURI[uri] = prefix
}

// RegisterDefaultPrefixes installs the built-in prefix table: the base
// NETCONF and notification namespaces plus the vendor schema namespaces.
// Call it once at process startup.
func RegisterDefaultPrefixes() {
	for uri, prefix := range defaultPrefixes {
		RegisterPrefix(prefix, uri)
	}
}

// Prefix delivers the registered prefix for uri.
func Prefix(uri string) (string, bool) {
	prefixTable.RLock()
	defer prefixTable.RUnlock()
	prefix, ok := prefixTable.byURI[uri]
	return prefix, ok
}

// Prefixes delivers a snapshot of the current namespace to prefix table.
func Prefixes() map[string]string {
	prefixTable.RLock()
	defer prefixTable.RUnlock()
	snapshot := make(map[string]string, len(prefixTable.byURI))
	for uri, prefix := range prefixTable.byURI {
		snapshot[uri] = prefix
	}
	return snapshot
}

// ResetPrefixes discards all registrations and reinstates the built-in
// table, returning the registry to its documented startup state.
func ResetPrefixes() {
	prefixTable.Lock()
	prefixTable.byURI = map[string]string{}
	prefixTable.Unlock()
	RegisterDefaultPrefixes()
}

// Qualify returns tag qualified with the base NETCONF namespace in Clark
// notation.
func Qualify(tag string) string {
	return QualifyNS(tag, NetconfNS)
}

// QualifyNS returns tag qualified with uri in Clark notation, {uri}tag.
// An empty uri means "no namespace" and returns tag unchanged. The tag is
// not checked for well-formedness; malformed input propagates unchanged.
func QualifyNS(tag, uri string) string {
	if uri == "" {
		return tag
	}
	return "{" + uri + "}" + tag
}

// Unqualify splits a Clark-notation name into its namespace URI and local
// name. Names without a namespace come back with an empty URI.
func Unqualify(tag string) (uri, local string) {
	if strings.HasPrefix(tag, "{") {
		if i := strings.LastIndex(tag, "}"); i > 0 {
			return tag[1:i], tag[i+1:]
		}
	}
	return "", tag
}
