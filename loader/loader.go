package loader

import (
	"sync/atomic"

	conf "nacos-loader/conf"
	source "nacos-loader/conf/source"
)

// Loader 在 Source 之上维护一份解析好的 Options 快照，变更时原子替换。
type Loader struct {
	src      source.Source
	cur      atomic.Value // conf.Options
	onUpdate func(conf.Options)
}

func New(src source.Source) *Loader { return &Loader{src: src} }

// Load 从来源拉取并解析配置，成功后替换当前快照。
func (l *Loader) Load() (conf.Options, error) {
	opts, err := conf.LoadOptionsFromSource(l.src)
	if err != nil {
		return opts, err
	}
	l.cur.Store(opts)
	if l.onUpdate != nil {
		l.onUpdate(opts)
	}
	return opts, nil
}

// Current 返回当前快照；尚未成功加载时返回零值。
func (l *Loader) Current() conf.Options {
	v := l.cur.Load()
	if v == nil {
		var o conf.Options
		return o
	}
	return v.(conf.Options)
}

// SetOnUpdate 设置配置变更后的回调。
func (l *Loader) SetOnUpdate(fn func(conf.Options)) { l.onUpdate = fn }

// Watch 订阅来源变更，每次变更后重新 Load。
func (l *Loader) Watch() error {
	return l.src.Watch(func() error { _, _ = l.Load(); return nil })
}

func NewFile(path string) *Loader { return New(source.NewFile(path)) }

func NewEtcd(endpoints []string, key, user, pass string) *Loader {
	return New(source.NewEtcd(endpoints, key, user, pass))
}

func NewNacos(scheme, serverAddr, namespace, group, dataID string) *Loader {
	return New(source.NewNacos(scheme, serverAddr, namespace, group, dataID))
}
