package modid

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// 校准存储使用的逻辑键名
const (
	KeyTrainData  = "train_data"
	KeyTestData   = "test_data"
	KeyThresholds = "thresholds"
)

// Store 把数据集和校准阈值以 JSON 文件的形式持久化到数据目录
// 键名映射为 <dir>/<key>.json，只在校准边界读写，算法中途不碰磁盘
type Store struct {
	Dir string
}

// NewStore 创建指向指定目录的存储
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

// Exists 检查键对应的文件是否已存在
func (s *Store) Exists(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

// Save 把对象序列化为 JSON 并写入键对应的文件，目录不存在时自动创建
func (s *Store) Save(key string, v interface{}) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), content, 0644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Load 从键对应的文件读取 JSON 并反序列化到 out
func (s *Store) Load(key string, out interface{}) error {
	content, err := os.ReadFile(s.path(key))
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(content, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}
