// Package drf parses and canonicalizes Device Reference Format strings.
//
// A DRF string names a control point, the data facet to read or write, an
// optional sub-range of that data, and an optional delivery condition:
//
//	M|OUTTMP.On@e,02    ->    M:OUTTMP.STATUS.ON@E,2,E,0
//
// # Grammar
//
//	request  = device [ "." category ] [ range ] [ "." field ] [ event ]
//	device   = name ( ":" | "|" ) name
//	range    = "[" [ n ] [ ":" [ n ] ] "]" | "{" [ n ] [ ":" [ n ] ] "}"
//	event    = "@" ( "N" | "I" | periodic | clock | state )
//	periodic = ( "P" | "Q" ) "," delay [ "," bool ]
//	clock    = "E" "," hex [ "," ( "H" | "S" | "E" ) ] [ "," delay ]
//	state    = "S" "," n "," n "," delay "," ( "=" | "!=" | ">" | "<" | "<=" | ">=" | "*" )
//	delay    = n [ "S" | "M" | "U" | "K" | "H" ]
//
// Letters in tokens are case-insensitive. The whole input must be consumed.
//
// # Defaults
//
// The device separator picks the category when none is given: ':' means
// Reading and '|' means Status. A missing field resolves to the category's
// default (Scaled for Reading and Setting, All for Status, Analog and
// Digital). A missing range is [ArrayRange](0, 0), which renders as nothing;
// an explicit "[]" or "{}" is [FullRange] and renders as "[]". A missing
// event is [DefaultEvent].
//
// A field token is only recognized after the range and only from the
// vocabulary of the resolved category, so "M:OUTTMP.ON" is rejected (ON is
// not a Reading field) and "M|OUTTMP.ON[0]" is rejected (the range follows
// the field).
//
// # Canonical Form
//
// [Request.Canonical] spells every default out and uses the canonical
// tokens, so parsing a canonical string and rendering it again is the
// identity.
//
// Values of this package are immutable and safe to share between goroutines.
package drf
