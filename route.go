package kafka

// Route binds a topic to the decoder its records are decoded with.
// Records keep a reference to the route they were built with.
type Route struct {
	topic   Topic
	decoder Decoder
}

// NewRoute creates a route for the topic. A nil decoder defaults to JSON.
func NewRoute(topic Topic, dec Decoder) *Route {
	if dec == nil {
		dec = JSON{}
	}
	return &Route{topic: topic, decoder: dec}
}

// Topic returns the topic name.
func (r *Route) Topic() Topic {
	return r.topic
}

// Decoder returns the decoder for the topic.
func (r *Route) Decoder() Decoder {
	return r.decoder
}
