// Package wire defines the CBOR wire format for DRF requests.
//
// A parsed request travels as a small CBOR map with integer keys instead of
// its text form, so consumers need not carry a DRF parser. Encoding is
// deterministic: the same request always yields the same bytes.
//
// # CBOR Integer Keys
//
//	{
//	  1: device,      // text: "M:OUTTMP"
//	  2: category,    // uint8: drf.Category
//	  3: field,       // uint8: drf.Field, absent for field-less categories
//	  4: range,       // map, absent for the implicit range
//	  5: event,       // map, absent for the default event
//	  6: canonical    // text, optional
//	}
//
// # Absent vs Default
//
// Absent range and event keys mean the implicit range and the default event.
// An explicit full range is encoded as a range map with kind 1 so that "[]"
// and the implicit range stay distinct across the wire.
//
// Decoding rebuilds the request through the drf constructors, so a decoded
// value is always well-formed. When key 6 is present it must match the
// canonical form of the decoded request.
package wire
