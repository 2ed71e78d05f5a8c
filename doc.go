// Package ncxml provides helpers for creating, serializing, inspecting and
// validating the XML documents exchanged by the NETCONF protocol.
//
// The package does not implement an XML parser or escaper of its own; it
// builds element trees from encoding/xml tokens and delegates escaping and
// character encoding to the standard library and golang.org/x/text. What it
// adds is the NETCONF-flavoured convenience surface: Clark-notation
// qualified names, a process-wide namespace prefix registry that drives
// serialization, single-call root inspection, and root element validation.
//
// Serialization consults the prefix registry, which starts empty. Callers
// that want the well-known NETCONF prefixes (nc, ncEvent, and the vendor
// schema prefixes) should call RegisterDefaultPrefixes once at startup.
package ncxml
