package queue

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher 事件发布端的最小接口，storage/mq 的 Client 满足它.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// PublishEvent 把负载打包成信封消息并发布到指定主题.
// 头部字段（producer、trace_id 等）通过 opts 注入.
func PublishEvent[T any](ctx context.Context, pub Publisher, topic string, payload T, opts ...HeaderOption) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(ctx, topic, msg)
}
