// Package middleware 汇集 HTTP 中间件：认证、CORS、日志、追踪、
// prometheus 指标、限流、熔断与存储注入.
package middleware
