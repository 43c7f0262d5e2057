package catalog

// ParseFile is a convenience function to parse a catalog file.
func ParseFile(path string) (*Catalog, error) {
	return NewParser().ParseFile(path)
}

// ParseString is a convenience function to parse a catalog from a string.
func ParseString(s string) (*Catalog, error) {
	return NewParser().ParseString(s)
}

// ParseBytes is a convenience function to parse a catalog from bytes.
func ParseBytes(data []byte) (*Catalog, error) {
	return NewParser().ParseBytes(data)
}

// ParseBytesWithOptions is a convenience function to parse a catalog from
// bytes with explicit options.
func ParseBytesWithOptions(data []byte, opts ParseOptions) (*Catalog, error) {
	return NewParser().ParseBytesWithOptions(data, opts)
}
