package kafka

// FilterFunc reports whether a header lets a message through.
type FilterFunc func(key []byte, value []byte) bool

// HeaderEquals passes messages carrying the header key with the given value.
func HeaderEquals(key, value string) FilterFunc {
	return func(k []byte, v []byte) bool {
		return string(k) == key && string(v) == value
	}
}

// match reports whether any filter accepts any header of msg.
// Messages without headers never match.
func match(filters []FilterFunc, msg *Message) (found bool) {
	if len(filters) == 0 || len(msg.Headers) == 0 {
		return
	}
loop:
	for i := 0; i < len(filters); i++ {
		for j := 0; j < len(msg.Headers); j++ {
			header := msg.Headers[j]
			if filters[i](header.Key, header.Value) {
				found = true
				break loop
			}
		}
	}
	return
}
