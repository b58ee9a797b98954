package conf

// Options 表示示例应用的核心配置结构，可按需扩展。
type Options struct {
	App    AppOptions    `yaml:"app"`
	Server ServerOptions `yaml:"server"`
}

type AppOptions struct {
	Name string `yaml:"name"`
	Motd string `yaml:"motd"`
}

type ServerOptions struct {
	Bind string `yaml:"bind"`
}
