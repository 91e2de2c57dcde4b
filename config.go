package modid

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 结构体用于集中管理识别器的所有可调参数和阈值
type Config struct {
	// --- 特征提取 (Extract) ---
	// 负责把一段复数信号压缩为单个标量特征
	Extract struct {
		MedianWindow int  `yaml:"median_window"` // 中值滤波窗口宽度 (必须为奇数，默认 5)。越大对脉冲噪声越不敏感，但会抹平有效细节
		Normalize    bool `yaml:"normalize"`     // 是否在提取前做 L2 幅度归一化。归一化后特征只反映形状，不反映能量
	} `yaml:"extract"`

	// --- 阈值搜索 (Search) ---
	// 负责在标注参考集上并发搜索最优判决阈值
	Search struct {
		NumTrials  int     `yaml:"num_trials"`  // 独立搜索试验数 (例如 300)。每次试验产生两个候选阈值
		PerturbMax float64 `yaml:"perturb_max"` // 基线特征的最大扰动量 (例如 0.05)。扰动从 [0, PerturbMax] 均匀抽取
		Seed       int64   `yaml:"seed"`        // 随机种子。固定种子下校准结果逐次一致
	} `yaml:"search"`

	// --- 数据集生成 (Dataset) ---
	// 负责用调制仿真器生成带标签的训练/测试数据
	Dataset struct {
		SymbolNum   int     `yaml:"symbol_num"`   // 星座点数 (例如 16 代表 16-QAM 与 16-PSK)
		TransmitNum int     `yaml:"transmit_num"` // 每条信号的符号数，即信号长度 (例如 1000)
		Size        int     `yaml:"size"`         // 数据集样本条数 (例如 500)
		NoiseDB     float64 `yaml:"noise_db"`     // 信道信噪比 (dB)。越低噪声越强，分类越困难
	} `yaml:"dataset"`

	// --- 持久化 (Store) ---
	Store struct {
		Dir          string `yaml:"dir"`           // 数据目录，存放数据集和阈值的 JSON 文件
		FeatureDebug string `yaml:"feature_debug"` // 非空时把评估期的逐样本特征写入该 CSV 文件
	} `yaml:"store"`
}

// DefaultConfig 返回一个包含当前最佳实践的默认配置
func DefaultConfig() *Config {
	cfg := &Config{}

	// --- 特征提取 ---
	cfg.Extract.MedianWindow = 5
	cfg.Extract.Normalize = false

	// --- 阈值搜索 ---
	cfg.Search.NumTrials = 300
	cfg.Search.PerturbMax = 0.05
	cfg.Search.Seed = 42

	// --- 数据集生成 ---
	cfg.Dataset.SymbolNum = 16
	cfg.Dataset.TransmitNum = 1000
	cfg.Dataset.Size = 500
	cfg.Dataset.NoiseDB = 15.0

	// --- 持久化 ---
	cfg.Store.Dir = "data"

	return cfg
}

// LoadConfig 从 YAML 文件加载配置，未出现的字段保持默认值
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Extract.MedianWindow <= 0 || cfg.Extract.MedianWindow%2 == 0 {
		return nil, fmt.Errorf("extract.median_window must be a positive odd number, got %d", cfg.Extract.MedianWindow)
	}
	if cfg.Search.NumTrials <= 0 {
		return nil, fmt.Errorf("search.num_trials must be positive, got %d", cfg.Search.NumTrials)
	}

	return cfg, nil
}
