package wire

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/drf-protocol/drf-go/pkg/drf"
)

// encMode is the CBOR encoder mode for DRF messages.
// Configured for deterministic encoding with integer keys.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for DRF messages.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	// Lenient for forward compatibility: unknown keys are ignored.
	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// Marshal encodes a value to CBOR bytes.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR bytes into a value.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// EncodeRequest encodes a request to CBOR bytes without canonical text.
func EncodeRequest(req drf.Request) ([]byte, error) {
	return encode(FromRequest(req, false))
}

// EncodeRequestWithCanonical encodes a request and carries its canonical
// text under key 6.
func EncodeRequestWithCanonical(req drf.Request) ([]byte, error) {
	return encode(FromRequest(req, true))
}

func encode(w *Request) ([]byte, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	return Marshal(w)
}

// DecodeRequest decodes CBOR bytes into a request.
func DecodeRequest(data []byte) (drf.Request, error) {
	var w Request
	if err := Unmarshal(data, &w); err != nil {
		return drf.Request{}, fmt.Errorf("failed to decode request: %w", err)
	}
	req, err := w.ToRequest()
	if err != nil {
		return drf.Request{}, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}

// EncodeBatch encodes requests as a single batch message.
func EncodeBatch(reqs []drf.Request) ([]byte, error) {
	batch := Batch{Requests: make([]Request, 0, len(reqs))}
	for i, req := range reqs {
		w := FromRequest(req, false)
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("request %d: invalid request: %w", i, err)
		}
		batch.Requests = append(batch.Requests, *w)
	}
	return Marshal(batch)
}

// DecodeBatch decodes a batch message. The first invalid request fails the
// whole batch.
func DecodeBatch(data []byte) ([]drf.Request, error) {
	var batch Batch
	if err := Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to decode batch: %w", err)
	}
	reqs := make([]drf.Request, 0, len(batch.Requests))
	for i := range batch.Requests {
		req, err := batch.Requests[i].ToRequest()
		if err != nil {
			return nil, fmt.Errorf("request %d: invalid request: %w", i, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// Equal compares two values by their CBOR encoding.
func Equal(a, b any) bool {
	dataA, errA := Marshal(a)
	dataB, errB := Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(dataA, dataB)
}
