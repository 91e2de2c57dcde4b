package modid

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// 特征提取的错误类型
var (
	// ErrInvalidSignal 表示信号包含 NaN 或 Inf 采样
	ErrInvalidSignal = errors.New("invalid signal")
	// ErrInsufficientLength 表示信号长度小于中值滤波窗口
	ErrInsufficientLength = errors.New("signal shorter than median filter window")
)

// DefaultMedianWindow 是中值滤波的默认窗口宽度
const DefaultMedianWindow = 5

// Extract 将一段复数信号压缩为单个实数标量特征，步骤依次为：
//  1. normalize 为真时先做 L2 幅度归一化
//  2. 单层 Haar 小波分解，只保留近似分量
//  3. 对近似分量的实部做宽度 5 的中值滤波
//  4. 取滤波结果的总体方差作为特征
//
// 相同输入和 normalize 标志下输出逐位可复现（无任何随机性）
func Extract(sig Signal, normalize bool) (float64, error) {
	return ExtractWindow(sig, normalize, DefaultMedianWindow)
}

// ExtractWindow 与 Extract 相同，但允许指定中值滤波窗口宽度
func ExtractWindow(sig Signal, normalize bool, window int) (float64, error) {
	if len(sig) < window {
		return 0, fmt.Errorf("%w: len %d < window %d", ErrInsufficientLength, len(sig), window)
	}
	if err := sig.Validate(); err != nil {
		return 0, err
	}

	if normalize {
		sig = sig.Normalized()
	}

	approx, _ := HaarDWT(sig)

	// 中值滤波作用在近似分量的实部上
	re := make([]float64, len(approx))
	for i, v := range approx {
		re[i] = real(v)
	}
	filtered, err := MedianFilter(re, window)
	if err != nil {
		return 0, err
	}

	return stat.PopVariance(filtered, nil), nil
}
