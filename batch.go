package kafka

import (
	"sync"

	"github.com/hashicorp/go-multierror"
)

// BatchOption sets an optional parameter for a batch.
type BatchOption func(*batchOptions)

type batchOptions struct {
	synchronized bool
}

// Synchronized guards every record so that concurrent first accesses
// call the decoder at most once and observe the same value.
func Synchronized() BatchOption {
	return func(o *batchOptions) {
		o.synchronized = true
	}
}

// Batch is a fixed, ordered set of records from one fetch.
// Nothing is decoded until a caller asks for a decoded value.
//
// A batch is meant for a single owner. Use Synchronized to share it
// between goroutines.
type Batch struct {
	route   *Route
	records []*Record
}

// NewBatch builds a batch from the messages of buf. Keys, values and headers
// are copied, so buf and its byte slices may be reused once NewBatch returns.
func NewBatch(route *Route, buf []*Message, opts ...BatchOption) *Batch {
	var o batchOptions
	for _, fn := range opts {
		fn(&o)
	}
	records := make([]*Record, len(buf))
	for i := 0; i < len(buf); i++ {
		var mu sync.Locker = nopLocker{}
		if o.synchronized {
			mu = new(sync.Mutex)
		}
		records[i] = newRecord(route, i, buf[i], mu)
	}
	return &Batch{route: route, records: records}
}

// Route returns the route the batch was built with.
func (b *Batch) Route() *Route {
	return b.route
}

// Topic returns the topic of the batch.
func (b *Batch) Topic() Topic {
	return b.route.topic
}

// Size returns the number of records.
func (b *Batch) Size() int {
	return len(b.records)
}

// At returns the record at index i.
func (b *Batch) At(i int) (*Record, error) {
	if i < 0 || i >= len(b.records) {
		return nil, &IndexError{Index: i, Size: len(b.records)}
	}
	return b.records[i], nil
}

// RawEntries returns the undecoded fields of every record in order.
func (b *Batch) RawEntries() []RawFields {
	entries := make([]RawFields, len(b.records))
	for i, r := range b.records {
		entries[i] = r.Raw()
	}
	return entries
}

// First decodes and returns the first record. Other records stay untouched.
// On decode failure the record is returned together with the *DecodeError.
func (b *Batch) First() (*Record, error) {
	return b.boundary(0)
}

// Last decodes and returns the last record. Other records stay untouched.
// On decode failure the record is returned together with the *DecodeError.
func (b *Batch) Last() (*Record, error) {
	return b.boundary(len(b.records) - 1)
}

func (b *Batch) boundary(i int) (*Record, error) {
	r, err := b.At(i)
	if err != nil {
		return nil, err
	}
	if _, err = r.Decode(); err != nil {
		return r, err
	}
	return r, nil
}

// ForceDecodeAll decodes every record in order. Records already decoded are
// not decoded again.
//
// A failure does not stop the loop: every record is attempted and all
// failures are returned as a *multierror.Error of *DecodeError, see DecodeErrors.
func (b *Batch) ForceDecodeAll() error {
	var errs *multierror.Error
	for _, r := range b.records {
		if _, err := r.Decode(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// Payloads returns the decoded payload of every record in order.
// It follows the ForceDecodeAll policy: failed records leave a nil slot
// and their errors are returned together.
func (b *Batch) Payloads() ([]any, error) {
	var errs *multierror.Error
	payloads := make([]any, len(b.records))
	for i, r := range b.records {
		payload, err := r.Payload()
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		payloads[i] = payload
	}
	return payloads, errs.ErrorOrNil()
}

// PayloadsAs is Payloads with every payload asserted to T.
func PayloadsAs[T any](b *Batch) ([]T, error) {
	var errs *multierror.Error
	out := make([]T, len(b.records))
	for i, r := range b.records {
		v, err := PayloadAs[T](r)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		out[i] = v
	}
	return out, errs.ErrorOrNil()
}

// Decoded returns the number of successfully decoded records.
func (b *Batch) Decoded() (n int) {
	for _, r := range b.records {
		if r.IsDecoded() {
			n++
		}
	}
	return
}

// Iterate returns a new cursor positioned before the first record.
// Iterating does not decode.
func (b *Batch) Iterate() *Iterator {
	return &Iterator{records: b.records, pos: -1}
}

// Each calls fn for every record in order and stops at the first error.
// It does not decode.
func (b *Batch) Each(fn func(i int, r *Record) error) error {
	for it := b.Iterate(); it.Next(); {
		if err := fn(it.Index(), it.Record()); err != nil {
			return err
		}
	}
	return nil
}

// EachDecoded decodes the records one at a time, right before passing each
// one to fn. It stops at the first decode or fn error.
func (b *Batch) EachDecoded(fn func(i int, d *Decoded) error) error {
	return b.Each(func(i int, r *Record) error {
		decoded, err := r.Decode()
		if err != nil {
			return err
		}
		return fn(i, decoded)
	})
}

// Iterator walks the records of a batch in order.
type Iterator struct {
	records []*Record
	pos     int
}

// Next advances to the next record and reports whether there is one.
func (it *Iterator) Next() bool {
	if it.pos >= len(it.records) {
		return false
	}
	it.pos++
	return it.pos < len(it.records)
}

// Index returns the index of the current record.
func (it *Iterator) Index() int {
	return it.pos
}

// Record returns the current record.
func (it *Iterator) Record() *Record {
	if it.pos < 0 || it.pos >= len(it.records) {
		return nil
	}
	return it.records[it.pos]
}
