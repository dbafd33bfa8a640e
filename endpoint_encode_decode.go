package kafka

import "context"

// DecodeBatchFunc extracts a user-domain request object from
// a batch. It is designed to be used in batch consumers.
type DecodeBatchFunc func(ctx context.Context, batch *Batch) (request any, err error)

// DecodePayloads is a DecodeBatchFunc whose request is the []any of batch payloads.
// Any decode failure fails the request.
func DecodePayloads(_ context.Context, batch *Batch) (any, error) {
	return batch.Payloads()
}

// DecodeValidPayloads is a DecodeBatchFunc that drops records failing to decode.
// The request is a []*Decoded; BatchEndpoint reports the failed records
// to its error handler without failing the request.
func DecodeValidPayloads(_ context.Context, batch *Batch) (any, error) {
	_ = batch.ForceDecodeAll()
	out := make([]*Decoded, 0, batch.Size())
	_ = batch.Each(func(_ int, r *Record) error {
		if r.IsDecoded() {
			decoded, _ := r.Decode()
			out = append(out, decoded)
		}
		return nil
	})
	return out, nil
}
