package source

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileSource 从本地文件读取一份配置，借助 fsnotify 热更新。
type FileSource struct {
	Path string
}

func NewFile(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Open() ([]Document, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return []Document{{DataID: filepath.Base(s.Path), Group: "file", Body: b}}, nil
}

func (s *FileSource) Watch(onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return err
	}
	go func() {
		defer watcher.Close()
		var last time.Time
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					// 防抖：编辑器保存往往触发连续多次写事件
					if time.Since(last) > 200*time.Millisecond {
						_ = onChange()
						last = time.Now()
					}
				}
				// 文件被删后重建时重新挂上监听
				if ev.Op&fsnotify.Remove != 0 {
					time.Sleep(200 * time.Millisecond)
					_ = watcher.Add(s.Path)
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// 监听错误不中断循环
			}
		}
	}()
	return nil
}
