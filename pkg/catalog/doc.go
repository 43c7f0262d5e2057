// Package catalog reads and writes named lists of DRF requests.
//
// A catalog lets operators keep the requests a tool or display needs in a
// file, under stable names, instead of scattering DRF strings through code.
// Every entry is parsed when the catalog is loaded, so a catalog that loads
// contains only valid requests.
//
// # Key=Value Format
//
//	# Linac temperatures
//	OUTTMP   = M:OUTTMP@p,1s       # outdoor temperature
//	OUTSTS   = M|OUTTMP
//	M:OUTTMP.SETTING
//
// Each line is NAME = DRF with an optional trailing # comment that becomes
// the entry description. Names start with a letter or underscore and may
// contain letters, digits, '_', '-' and '.'. A line that does not start
// with such a name followed by '=' is an unnamed request and is named
// line<N> after its line number.
//
// # YAML Format
//
//	name: linac-temps
//	description: Linac temperatures
//	requests:
//	  - name: OUTTMP
//	    drf: M:OUTTMP@p,1s
//	    description: outdoor temperature
//	  - drf: M|OUTTMP
//
// The format is detected automatically unless ParseOptions.Format says
// otherwise.
//
// # Validation
//
// [Validator] reports duplicate names, entries not written in canonical
// form, and names that resolve to the same request.
package catalog
