package mq

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"

	"github.com/yeisme/sitevault/pkg/configs"
)

const (
	natsDrainTimeout   = 30 * time.Second
	natsFlusherTimeout = 10 * time.Second
)

func init() {
	RegisterFactory(configs.MQTypeNATS, newNATSBackend)
}

// newNATSBackend 构造 NATS Publisher 与 Subscriber，JetStream 按配置开关.
func newNATSBackend(
	ctx context.Context,
	cfg *configs.MQConfig,
	logger watermill.LoggerAdapter,
) (message.Publisher, message.Subscriber, error) {
	opts := natsOptions(&cfg.Common)
	jsCfg := jetStreamConfig(&cfg.NATS, logger)
	marshaler := &nats.JSONMarshaler{}

	pub, err := nats.NewPublisher(nats.PublisherConfig{
		URL:         cfg.Common.URL,
		NatsOptions: opts,
		JetStream:   jsCfg,
		Marshaler:   marshaler,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	sub, err := nats.NewSubscriber(nats.SubscriberConfig{
		URL:         cfg.Common.URL,
		NatsOptions: opts,
		JetStream:   jsCfg,
		Unmarshaler: marshaler,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	return pub, sub, nil
}

func natsOptions(common *configs.MQCommonConfig) []nc.Option {
	opts := []nc.Option{
		nc.Name(common.ClientID),
		nc.MaxReconnects(common.MaxReconnects),
		nc.ReconnectWait(time.Duration(common.ReconnectWait) * time.Second),
		nc.PingInterval(time.Duration(common.PingInterval) * time.Second),
		nc.ReconnectBufSize(common.BufferSize),
		nc.DrainTimeout(natsDrainTimeout),
		nc.FlusherTimeout(natsFlusherTimeout),
		nc.RetryOnFailedConnect(true),
	}

	if common.User != "" {
		opts = append(opts, nc.UserInfo(common.User, common.Password))
	}

	return opts
}

func jetStreamConfig(natsCfg *configs.MQNATSConfig, logger watermill.LoggerAdapter) nats.JetStreamConfig {
	if !natsCfg.JetStreamEnabled {
		return nats.JetStreamConfig{Disabled: true}
	}

	logger.Info("jetstream enabled", watermill.LogFields{
		"stream_name":    natsCfg.StreamName,
		"subject_prefix": natsCfg.SubjectPrefix,
		"durable_prefix": natsCfg.JetStreamDurablePrefix,
	})

	return nats.JetStreamConfig{
		AutoProvision: natsCfg.JetStreamAutoProvision,
		TrackMsgId:    natsCfg.JetStreamTrackMsgID,
		AckAsync:      natsCfg.JetStreamAckAsync,
		DurablePrefix: natsCfg.JetStreamDurablePrefix,
	}
}
