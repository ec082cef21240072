package api

import "github.com/okian/yogicgames/pkg/logger"

// DefaultMaxLimit caps limit query parameters when no option overrides it.
const DefaultMaxLimit = 500

// Option configures the Server.
type Option func(*Server)

// WithMaxLimit sets the largest accepted limit/k query value.
func WithMaxLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
