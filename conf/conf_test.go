package conf

import (
	"os"
	"testing"

	source "nacos-loader/conf/source"
)

func TestLoad_OK(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	defer tmp.Close()
	_, _ = tmp.WriteString("app:\n  name: 'demo'\n  motd: 'hi'\nserver:\n  bind: ':9090'\n")
	var opts Options
	if err := Load(tmp.Name(), &opts); err != nil {
		t.Fatalf("load: %v", err)
	}
	if opts.Server.Bind != ":9090" || opts.App.Name != "demo" {
		t.Fatalf("bad opts: %+v", opts)
	}
}

func TestLoad_ErrEmptyPath(t *testing.T) {
	var opts Options
	if err := Load("", &opts); err == nil {
		t.Fatalf("want error")
	}
}

func TestLoadFromSource_File(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	defer tmp.Close()
	_, _ = tmp.WriteString("app:\n  name: 'x'\nserver:\n  bind: ':8081'\n")
	var opts Options
	if err := LoadFromSource(source.NewFile(tmp.Name()), &opts); err != nil {
		t.Fatalf("load from source: %v", err)
	}
	if opts.App.Name != "x" || opts.Server.Bind != ":8081" {
		t.Fatalf("bad opts: %+v", opts)
	}
}

func TestLoadOptionsFromSource_Defaults(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	defer tmp.Close()
	_, _ = tmp.WriteString("app:\n  name: 'd'\n")
	opts, err := LoadOptionsFromSource(source.NewFile(tmp.Name()))
	if err != nil {
		t.Fatalf("load opts: %v", err)
	}
	if opts.Server.Bind != ":8080" || opts.App.Name != "d" {
		t.Fatalf("bad opts: %+v", opts)
	}
}

type multiSource struct{}

func (multiSource) Open() ([]source.Document, error) {
	return []source.Document{
		{DataID: "a", Group: "g", Body: []byte("app:\n  name: 'A'\n  motd: 'm1'\nserver:\n  bind: ':1001'\n")},
		{DataID: "b", Group: "g", Body: []byte("app:\n  name: 'B'\n")},
	}, nil
}
func (multiSource) Watch(func() error) error { return nil }

func TestLoadFromSource_MergeAll(t *testing.T) {
	var opts Options
	if err := LoadFromSource(multiSource{}, &opts); err != nil {
		t.Fatalf("load from source: %v", err)
	}
	if opts.App.Name != "B" || opts.App.Motd != "m1" || opts.Server.Bind != ":1001" {
		t.Fatalf("bad opts: %+v", opts)
	}
}

type emptySource struct{}

func (emptySource) Open() ([]source.Document, error) { return nil, nil }
func (emptySource) Watch(func() error) error         { return nil }

func TestLoadFromSource_Empty(t *testing.T) {
	var opts Options
	if err := LoadFromSource(emptySource{}, &opts); err == nil {
		t.Fatalf("want error")
	}
}

func TestLoadDir(t *testing.T) {
	d := t.TempDir()
	if err := os.WriteFile(d+"/a.yaml", []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(d+"/b.yml", []byte("y: 2\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(d+"/ignore.txt", []byte("z"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := LoadDir(d)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("bad size: %d", len(m))
	}
	if m["a.yaml"]["x"].(int) != 1 || m["b.yml"]["y"].(int) != 2 {
		t.Fatalf("bad content: %+v", m)
	}
}
