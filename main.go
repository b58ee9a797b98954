package main

import (
	"context"
	"flag"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	conf "nacos-loader/conf"
	loader "nacos-loader/loader"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
)

var current atomic.Value // string，当前配置的 JSON 快照

// main 解析参数、选择配置来源，并启动 HTTP 服务与变更监听。
// 配置解析由 conf 包负责；nacos 来源走仓库自带的长轮询客户端。
func main() {
	src := flag.String("source", "file", "config source: file|etcd|nacos")
	cfgPath := flag.String("config", "./config.yaml", "config file path (for file source)")
	etcdEndpoints := flag.String("etcd-endpoints", "", "comma-separated etcd endpoints (for etcd source)")
	etcdKey := flag.String("etcd-key", "", "etcd key holding YAML config (for etcd source)")
	etcdUser := flag.String("etcd-user", "", "etcd username (optional)")
	etcdPass := flag.String("etcd-pass", "", "etcd password (optional)")
	nacosScheme := flag.String("nacos-scheme", "http", "nacos server scheme: http|https")
	nacosAddr := flag.String("nacos-addr", "", "nacos server addr host:port (for nacos source)")
	nacosNS := flag.String("nacos-namespace", "", "nacos namespace id (optional)")
	nacosGroup := flag.String("nacos-group", "DEFAULT_GROUP", "nacos group")
	nacosDataID := flag.String("nacos-dataid", "", "nacos dataId holding YAML config")
	flag.Parse()

	var l *loader.Loader
	switch *src {
	case "file":
		l = loader.NewFile(*cfgPath)
	case "etcd":
		eps := strings.Split(strings.TrimSpace(*etcdEndpoints), ",")
		l = loader.NewEtcd(nonEmpty(eps), *etcdKey, *etcdUser, *etcdPass)
	case "nacos":
		l = loader.NewNacos(*nacosScheme, strings.TrimSpace(*nacosAddr), *nacosNS, *nacosGroup, *nacosDataID)
	default:
		slog.Error("unknown source", "source", *src)
		return
	}

	l.SetOnUpdate(func(opts conf.Options) {
		if s, err := sonic.MarshalString(opts); err == nil {
			current.Store(s)
		}
	})

	opts, err := l.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return
	}
	if err := l.Watch(); err != nil {
		slog.Error("start config watch failed", "error", err)
	}

	h := server.New(
		server.WithHostPorts(opts.Server.Bind),
		server.WithDisableDefaultDate(true),
		server.WithDisablePrintRoute(true),
		server.WithExitWaitTime(1*time.Second),
	)

	h.GET("/", func(ctx context.Context, c *app.RequestContext) {
		if v := current.Load(); v != nil {
			c.JSON(200, v.(string))
			return
		}
		c.JSON(200, l.Current())
	})

	h.GET("/health", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(200, map[string]string{"status": "ok"})
	})

	h.Spin()
}

// nonEmpty 过滤空字符串元素
func nonEmpty(items []string) []string {
	var out []string
	for _, it := range items {
		s := strings.TrimSpace(it)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
