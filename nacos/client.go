package nacos

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// requestTimeout 需大于服务端 30s 长轮询窗口，留出网络往返余量。
const requestTimeout = 40 * time.Second

// Config 描述 Nacos 服务端的连接信息，构造后不再变更。
type Config struct {
	Scheme     string // http 或 https，空串默认 http
	ServerAddr string // host:port
	Namespace  string // 命名空间 ID，空串表示未配置
	Group      string
}

// Client 是一个无鉴权的 Nacos 配置客户端。
// 首次读取某个 dataId 时直接拉取当前内容；之后对同一 dataId 的
// WaitForNewConfig 调用会通过长轮询阻塞，直到服务端判定内容发生变化。
type Client struct {
	cfg     Config
	httpCli *http.Client

	configsURL  string
	listenerURL string

	// mu 只保护 fingerprints 的查改，不跨网络请求持有。
	mu           sync.Mutex
	fingerprints map[string]string // dataId -> 最近一次观察到内容的 md5（小写十六进制）
}

// New 校验配置并构造客户端。
func New(cfg Config) (*Client, error) {
	if cfg.Scheme == "" {
		cfg.Scheme = "http"
	}
	if cfg.Scheme != "http" && cfg.Scheme != "https" {
		return nil, fmt.Errorf("nacos: unsupported scheme %q", cfg.Scheme)
	}
	if _, _, err := net.SplitHostPort(cfg.ServerAddr); err != nil {
		return nil, fmt.Errorf("nacos: invalid server addr %q: %w", cfg.ServerAddr, err)
	}
	if cfg.Group == "" {
		return nil, errors.New("nacos: group can't be empty")
	}
	base := cfg.Scheme + "://" + cfg.ServerAddr
	return &Client{
		cfg:          cfg,
		httpCli:      &http.Client{Timeout: requestTimeout},
		configsURL:   base + configsPath,
		listenerURL:  base + listenerPath,
		fingerprints: make(map[string]string),
	}, nil
}

// WaitForNewConfig 返回 dataId 对应的配置内容。
// 该 dataId 首次出现时立即拉取并返回当前值；已跟踪的 dataId 则进入
// 长轮询循环，空响应表示窗口内无变化，继续下一轮，直到服务端推回新内容。
// 传输失败或非 2xx 状态码以 *TransportError 返回，指纹缓存保持原状。
func (c *Client) WaitForNewConfig(dataID string) ([]byte, error) {
	if err := checkDataID(dataID); err != nil {
		return nil, err
	}

	c.mu.Lock()
	_, tracked := c.fingerprints[dataID]
	c.mu.Unlock()

	if !tracked {
		body, err := c.getConfig(dataID)
		if err != nil {
			return nil, err
		}
		c.storeFingerprint(dataID, body)
		return body, nil
	}

	for {
		// 每轮重新快照指纹：同一 dataId 的并发调用者可能已经更新过缓存。
		c.mu.Lock()
		sum := c.fingerprints[dataID]
		c.mu.Unlock()

		body, err := c.listenOnce(dataID, sum)
		if err != nil {
			return nil, err
		}
		if len(body) == 0 {
			slog.Debug("no new config", "dataId", dataID)
			continue
		}
		c.storeFingerprint(dataID, body)
		return body, nil
	}
}

// getConfig 无条件拉取 dataId 的当前内容，单次请求，不重试。
func (c *Client) getConfig(dataID string) ([]byte, error) {
	q := url.Values{}
	q.Set("dataId", dataID)
	q.Set("group", c.cfg.Group)
	if c.cfg.Namespace != "" {
		q.Set("tenant", c.cfg.Namespace)
	}
	req, err := http.NewRequest(http.MethodGet, c.configsURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("nacos: build request: %w", err)
	}
	return c.do(req)
}

// listenOnce 发出一轮长轮询请求。空 body 表示窗口内无变化。
func (c *Client) listenOnce(dataID, sum string) ([]byte, error) {
	q := url.Values{}
	q.Set("Listening-Configs", listeningLine(dataID, c.cfg.Group, sum, c.cfg.Namespace))
	req, err := http.NewRequest(http.MethodPost, c.listenerURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("nacos: build request: %w", err)
	}
	req.Header.Set(longPullingHeader, longPullingMs)
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, &TransportError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: req.URL.String(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: req.URL.String(), Status: resp.StatusCode}
	}
	return body, nil
}

func (c *Client) storeFingerprint(dataID string, body []byte) {
	sum := md5Hex(body)
	c.mu.Lock()
	c.fingerprints[dataID] = sum
	c.mu.Unlock()
}

// checkDataID 拒绝空值以及含协议保留分隔字节的 dataId。
func checkDataID(dataID string) error {
	if dataID == "" {
		return errors.New("nacos: dataId can't be empty")
	}
	if strings.ContainsAny(dataID, "\x01\x02") {
		return fmt.Errorf("nacos: dataId %q contains reserved delimiter bytes", dataID)
	}
	return nil
}
