package conf

import (
	"errors"
	"fmt"
	"os"

	source "nacos-loader/conf/source"

	"gopkg.in/yaml.v3"
)

// Load 读取并解析本地 YAML 配置文件，结果写入 opts。
func Load(path string, opts *Options) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, opts); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// LoadFromSource 依次解析来源返回的所有文档到同一个 opts，
// 后面的文档覆盖前面同名字段。
func LoadFromSource(s source.Source, opts *Options) error {
	docs, err := s.Open()
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return errors.New("no config content from source")
	}
	for _, d := range docs {
		if err := yaml.Unmarshal(d.Body, opts); err != nil {
			return fmt.Errorf("parse yaml (%s): %w", d.DataID, err)
		}
	}
	return nil
}

// LoadOptionsFromSource 在 LoadFromSource 之上补默认值并校验。
func LoadOptionsFromSource(s source.Source) (Options, error) {
	var opts Options
	if err := LoadFromSource(s, &opts); err != nil {
		return opts, err
	}
	if opts.Server.Bind == "" {
		opts.Server.Bind = ":8080"
	}
	if err := Validate(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate 对关键字段做最小校验。
func Validate(o Options) error {
	if o.Server.Bind == "" {
		return errors.New("server.bind can't be empty")
	}
	return nil
}
