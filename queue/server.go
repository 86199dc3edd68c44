package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// Server consumes tasks from the queue and dispatches them by task type.
type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewServer(opt asynq.RedisClientOpt, concurrency int, logger asynq.Logger) *Server {
	return &Server{
		server: asynq.NewServer(opt, asynq.Config{
			Concurrency: concurrency,
			Logger:      logger,
		}),
		mux: asynq.NewServeMux(),
	}
}

func (s *Server) Handle(taskType string, handler asynq.Handler) {
	s.mux.Handle(taskType, handler)
}

// Run processes tasks until ctx is cancelled and then shuts the server down.
func (s *Server) Run(ctx context.Context) error {
	if err := s.server.Start(s.mux); err != nil {
		return fmt.Errorf("error running queue server: %w", err)
	}

	<-ctx.Done()
	s.server.Shutdown()
	return nil
}
