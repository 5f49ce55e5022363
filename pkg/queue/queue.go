// Package queue 定义站点生命周期事件的信封格式与编解码.
//
// 每条消息是 Header + Payload 的 JSON 信封（sonic 编码）：
//
//	{
//	  "header": {"topic": "sv.site.deployed", "producer": "sitevault",
//	             "occurred_at": "2025-01-02T03:04:05Z", "version": "v1"},
//	  "payload": {...}
//	}
//
// 主题常量在 topics.go，负载结构在 payloads.go.occurred_at 统一 UTC，
// 消费者应忽略未知字段以便向后兼容.
package queue

import (
	"time"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bytedance/sonic"
)

const PayloadVersionV1 = "v1"

// HeaderOption 修饰事件头.
type HeaderOption func(*EventHeader)

// WithTraceID 关联追踪 ID.
func WithTraceID(id string) HeaderOption { return func(h *EventHeader) { h.TraceID = id } }

// WithProducer 标记生产方.
func WithProducer(p string) HeaderOption { return func(h *EventHeader) { h.Producer = p } }

// NewEventHeader 构造事件头，默认 v1 版本、当前 UTC 时间.
func NewEventHeader(topic string, opts ...HeaderOption) EventHeader {
	hdr := EventHeader{
		Topic:      topic,
		OccurredAt: time.Now().UTC(),
		Version:    PayloadVersionV1,
	}

	for _, opt := range opts {
		opt(&hdr)
	}

	return hdr
}

// Encode 信封序列化.
func Encode[T any](msg Message[T]) ([]byte, error) { return sonic.Marshal(msg) }

// Decode 信封反序列化.
func Decode[T any](b []byte) (Message[T], error) {
	var m Message[T]
	err := sonic.Unmarshal(b, &m)

	return m, err
}

// NewWatermillMessage 把负载打包成 watermill 消息，信封字段同步进 Metadata
// 方便中间件路由与排查.
func NewWatermillMessage[T any](topic string, payload T, opts ...HeaderOption) (*message.Message, error) {
	header := NewEventHeader(topic, opts...)

	data, err := Encode(Message[T]{Header: header, Payload: payload})
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("topic", topic)
	msg.Metadata.Set("occurred_at", header.OccurredAt.Format(time.RFC3339Nano))
	msg.Metadata.Set("version", header.Version)

	if header.TraceID != "" {
		msg.Metadata.Set("trace_id", header.TraceID)
	}

	if header.Producer != "" {
		msg.Metadata.Set("producer", header.Producer)
	}

	return msg, nil
}

// ParseWatermillMessage 从 watermill 消息解出信封.
func ParseWatermillMessage[T any](msg *message.Message) (Message[T], error) {
	return Decode[T](msg.Payload)
}
