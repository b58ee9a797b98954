package nacos

import "fmt"

// TransportError 表示一次与服务端交互的失败：连接错误、超时或非 2xx 状态码。
// Status 为 0 说明请求没有收到完整响应。
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("nacos: request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("nacos: request %s: unexpected status %d", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }
