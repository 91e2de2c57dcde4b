package modid

import "fmt"

// ThresholdCandidate 是一次搜索试验产生的候选阈值及其得分
// 得分是该候选作为判决边界时在参考集上正确分类的样本数
// 候选只在单次校准内存活，不做持久化
type ThresholdCandidate struct {
	Value float64
	Score int
}

// CalibratedThreshold 是一次校准中得分最高的候选，也是分类器
// 消费、校准存储持久化的唯一单元
type CalibratedThreshold struct {
	Value float64 `json:"value"`
	Score int     `json:"score"`
	// Normalized 和 Window 记录校准打分时使用的特征提取模式，
	// 分类和评估必须用完全相同的模式提取特征，否则阈值与特征
	// 不在同一尺度上，判决无意义
	Normalized bool `json:"normalized"`
	Window     int  `json:"window"`
}

// ExtractFeature 用阈值绑定的提取模式计算信号特征
// Window 为零（旧版持久化文件）时退回默认窗口
func (th CalibratedThreshold) ExtractFeature(sig Signal) (float64, error) {
	window := th.Window
	if window <= 0 {
		window = DefaultMedianWindow
	}
	return ExtractWindow(sig, th.Normalized, window)
}

// Classify 用校准阈值对未知信号做两类判决：
// 特征小于阈值判为 PSK，否则判为 QAM
// 特征提取失败时直接把错误上抛，不做重试
func Classify(sig Signal, th CalibratedThreshold) (Label, error) {
	feature, err := th.ExtractFeature(sig)
	if err != nil {
		return LabelPSK, fmt.Errorf("classify: %w", err)
	}
	if feature < th.Value {
		return LabelPSK, nil
	}
	return LabelQAM, nil
}
