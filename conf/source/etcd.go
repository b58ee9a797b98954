package source

import (
	"context"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdSource 从 etcd 的单个 key 读取配置，并通过 watch 通道订阅变更。
type EtcdSource struct {
	Endpoints   []string
	Key         string
	Username    string
	Password    string
	DialTimeout time.Duration

	cli *clientv3.Client
}

func NewEtcd(endpoints []string, key, username, password string) *EtcdSource {
	return &EtcdSource{Endpoints: endpoints, Key: key, Username: username, Password: password, DialTimeout: 5 * time.Second}
}

func (s *EtcdSource) ensureClient() error {
	if s.cli != nil {
		return nil
	}
	cfg := clientv3.Config{Endpoints: s.Endpoints, DialTimeout: s.DialTimeout}
	if s.Username != "" || s.Password != "" {
		cfg.Username = s.Username
		cfg.Password = s.Password
	}
	cli, err := clientv3.New(cfg)
	if err != nil {
		return err
	}
	s.cli = cli
	return nil
}

func (s *EtcdSource) Open() ([]Document, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	resp, err := s.cli.Get(ctx, s.Key)
	if err != nil {
		return nil, err
	}
	if len(resp.Kvs) == 0 {
		return []Document{}, nil
	}
	return []Document{{DataID: s.Key, Group: "etcd", Body: resp.Kvs[0].Value}}, nil
}

func (s *EtcdSource) Watch(onChange func() error) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	go func() {
		wch := s.cli.Watch(context.Background(), s.Key)
		for range wch {
			// 任意事件都重新加载
			_ = onChange()
		}
	}()
	return nil
}
