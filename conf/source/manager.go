package source

import (
	"errors"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Generic 承载任意 YAML 文档解析后的层级结构，不绑定具体配置类型。
type Generic struct {
	DataID string
	Group  string
	Doc    map[string]any
}

// Manager 从 Source 加载/监听配置，并以原子方式维护当前的 Generic 快照。
type Manager struct {
	src      Source
	current  atomic.Value // Generic
	onUpdate func(Generic)
}

func NewManager(src Source) *Manager {
	return &Manager{src: src}
}

// Load 拉取并解析第一份文档。
func (m *Manager) Load() error {
	docs, err := m.src.Open()
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return errors.New("no config content from source")
	}
	d := docs[0]
	var doc map[string]any
	if err := yaml.Unmarshal(d.Body, &doc); err != nil {
		return err
	}
	g := Generic{DataID: d.DataID, Group: d.Group, Doc: doc}
	m.current.Store(g)
	if m.onUpdate != nil {
		m.onUpdate(g)
	}
	return nil
}

// Watch 订阅变更，每次变更后重新加载。
func (m *Manager) Watch() error {
	return m.src.Watch(func() error {
		return m.Load()
	})
}

// SetOnUpdate 设置配置变更时的回调。
func (m *Manager) SetOnUpdate(fn func(Generic)) { m.onUpdate = fn }

// Current 返回当前快照。
func (m *Manager) Current() Generic {
	v := m.current.Load()
	if v == nil {
		return Generic{Doc: map[string]any{}}
	}
	return v.(Generic)
}

// Lookup 用点号路径在当前文档里取值，例如 "server.bind"。
func (m *Manager) Lookup(path string) (any, bool) {
	cur := m.Current()
	parts := strings.Split(path, ".")
	var node any = cur.Doc
	for _, p := range parts {
		mm, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = mm[p]
		if !ok {
			return nil, false
		}
	}
	return node, true
}
