package source

// Document 表示从某个配置来源取回的一份配置内容。
// Body 是原始字节，是否按 YAML/JSON 解析由上层决定。
type Document struct {
	DataID string
	Group  string
	Body   []byte
}

// Source 是一个最小的配置来源抽象：一次性读取当前内容，以及订阅后续变更。
// Watch 的回调在每次观察到变更后触发，由实现决定其运行的 goroutine。
type Source interface {
	Open() ([]Document, error)
	Watch(onChange func() error) error
}
