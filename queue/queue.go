package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Processor interface {
	Process() (*asynq.Task, error)
	ProcessorName() string
}

type Queue interface {
	Enqueue(ctx context.Context, processor Processor) error
}

type Client struct {
	client *asynq.Client
	redis  *redis.Client
	logger *zap.Logger
	once   sync.Once
}

// RedisOpt converts a redis:// URL into asynq connection options.
func RedisOpt(redisURL string) (asynq.RedisClientOpt, error) {
	if redisURL == "" {
		return asynq.RedisClientOpt{}, fmt.Errorf("REDIS_URL environment variable not set")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("error parsing redis url: %w", err)
	}

	return asynq.RedisClientOpt{
		Addr:      opts.Addr,
		Username:  opts.Username,
		Password:  opts.Password,
		DB:        opts.DB,
		TLSConfig: opts.TLSConfig,
	}, nil
}

func NewClient(redisURL string, logger *zap.Logger) (*Client, error) {
	c := Client{logger: logger.Named("queue")}

	opt, err := RedisOpt(redisURL)
	if err != nil {
		return nil, err
	}

	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}

	c.once.Do(func() {
		c.logger.Info("setting up connection for asynq redis queue", zap.String("addr", opt.Addr))
		c.client = asynq.NewClient(opt)
		c.redis = redis.NewClient(redisOpts)
	})

	return &c, nil
}

func (c *Client) Enqueue(ctx context.Context, processor Processor) error {
	task, err := processor.Process()
	if err != nil {
		return fmt.Errorf("could not build %s task: %w", processor.ProcessorName(), err)
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("could not enqueue %s task: %w", processor.ProcessorName(), err)
	}

	c.logger.Debug("task enqueued", zap.String("type", task.Type()), zap.String("id", info.ID))
	return nil
}

// Ping checks that the queue's redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.redis.Ping(ctx).Err()
}

func (c *Client) Close() error {
	c.logger.Info("closing connection to asynq queue")
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("error closing queue client: %w", err)
	}
	if err := c.redis.Close(); err != nil {
		return fmt.Errorf("error closing redis client: %w", err)
	}
	return nil
}
