package service

import (
	"context"

	"github.com/yeisme/sitevault/pkg/internal/storage/mq"
	nlog "github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/queue"
)

const eventProducer = "sitevault"

// publishEvent nil 安全地发布事件.MQ 未启用或发布失败都不影响请求结果，只记日志.
// 发布用独立的 Background context，不随请求取消.
func publishEvent[T any](client *mq.Client, topic string, payload T) {
	if client == nil {
		return
	}

	err := queue.PublishEvent(context.Background(), client, topic, payload,
		queue.WithProducer(eventProducer))
	if err != nil {
		nlog.Logger().Error().Err(err).Str("topic", topic).Msg("publish event")
	}
}
