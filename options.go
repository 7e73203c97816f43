package strictjson

import "fmt"

const defaultMaxDepth = 1000

type options struct {
	maxDepth int
}

// Option configures a decode call.
type Option func(*options) error

func applyOptions(opts []Option) (*options, error) {
	o := &options{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// MaxDepth returns an Option that sets the maximum object/array nesting
// depth for the decoder. This helps prevent stack exhaustion when
// decoding highly nested JSON documents.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("strictjson: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}
