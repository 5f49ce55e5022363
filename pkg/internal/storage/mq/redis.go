package mq

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"

	"github.com/yeisme/sitevault/pkg/configs"
)

// subscriberBuffer 每个订阅通道的缓冲长度.
const subscriberBuffer = 100

func init() {
	RegisterFactory(configs.MQTypeRedis, newRedisBackend)
}

// newRedisBackend 基于 Redis Pub/Sub 构造 Publisher 与 Subscriber，共用一个连接.
func newRedisBackend(
	ctx context.Context,
	cfg *configs.MQConfig,
	logger watermill.LoggerAdapter,
) (message.Publisher, message.Subscriber, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("mq redis: ping %s: %w", cfg.Redis.Addr, err)
	}

	return &redisPublisher{rdb: rdb}, newRedisSubscriber(rdb), nil
}

type redisPublisher struct {
	rdb *redis.Client
}

func (p *redisPublisher) Publish(topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		if err := p.rdb.Publish(context.Background(), topic, msg.Payload).Err(); err != nil {
			return fmt.Errorf("publish to %s: %w", topic, err)
		}

		msg.Ack()
	}

	return nil
}

func (p *redisPublisher) Close() error {
	return p.rdb.Close()
}

type redisSubscriber struct {
	rdb    *redis.Client
	mu     sync.Mutex
	pubsub *redis.PubSub
	done   chan struct{}
	closed bool
}

func newRedisSubscriber(rdb *redis.Client) *redisSubscriber {
	return &redisSubscriber{rdb: rdb, done: make(chan struct{})}
}

func (s *redisSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("subscriber closed")
	}

	s.pubsub = s.rdb.Subscribe(ctx, topic)
	out := make(chan *message.Message, subscriberBuffer)

	go s.pump(ctx, out)

	return out, nil
}

// pump 把 Redis 消息翻译成 watermill 消息，订阅关闭或上下文取消时退出.
func (s *redisSubscriber) pump(ctx context.Context, out chan<- *message.Message) {
	defer close(out)

	for {
		msg, err := s.pubsub.ReceiveMessage(ctx)
		if err != nil {
			return
		}

		wm := message.NewMessage(watermill.NewUUID(), []byte(msg.Payload))

		select {
		case out <- wm:
		case <-s.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *redisSubscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	close(s.done)

	if s.pubsub != nil {
		_ = s.pubsub.Close()
	}

	return s.rdb.Close()
}
