package drf

// Device is the name of a control point. It is stored in canonical form,
// "<prefix>:<name>", and compared exactly.
type Device string

// String returns the canonical device name.
func (d Device) String() string {
	return string(d)
}

// scanDevice consumes the device name and its separator. The separator picks
// the category used when no explicit category token follows: ':' selects
// Reading, '|' selects Status.
func scanDevice(s *scanner) (Device, Category, error) {
	prefix := s.word()
	if prefix == "" {
		return "", 0, s.errorf(KindExpectedName, s.pos, "device name must start with a name character")
	}

	var hint Category
	switch {
	case s.accept(':'):
		hint = CategoryReading
	case s.accept('|'):
		hint = CategoryStatus
	default:
		if s.done() {
			return "", 0, s.errorf(KindExpectedSeparator, s.pos, "input ended after %q", prefix)
		}
		return "", 0, s.errorf(KindExpectedSeparator, s.pos, "found %q", s.input[s.pos])
	}

	name := s.word()
	if name == "" {
		return "", 0, s.errorf(KindExpectedName, s.pos, "nothing after separator")
	}

	return Device(prefix + ":" + name), hint, nil
}
