package modid

import (
	"encoding/json"
	"fmt"
	"math"
	"math/cmplx"
)

// Label 表示调制方式的分类标签
type Label int

const (
	LabelPSK Label = iota // 相移键控 (Phase-Shift Keying)
	LabelQAM              // 正交幅度调制 (Quadrature Amplitude Modulation)
)

// String 返回标签的可读名称
func (l Label) String() string {
	switch l {
	case LabelPSK:
		return "PSK"
	case LabelQAM:
		return "QAM"
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

// MarshalJSON 将标签序列化为名称字符串，便于数据文件的人工检查
func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON 从名称字符串解析标签
func (l *Label) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "PSK":
		*l = LabelPSK
	case "QAM":
		*l = LabelQAM
	default:
		return fmt.Errorf("unknown label %q", s)
	}
	return nil
}

// Signal 是一段定长的复数采样序列（基带 I/Q 数据）
// 生成之后视为只读，所有处理函数都不会原地修改它
type Signal []complex128

// Validate 检查信号中是否存在 NaN 或 Inf 采样
// 非有限值会污染后续的方差计算，必须在特征提取之前拦截
func (s Signal) Validate() error {
	for i, v := range s {
		if !isFinite(real(v)) || !isFinite(imag(v)) {
			return fmt.Errorf("%w: sample %d = %v", ErrInvalidSignal, i, v)
		}
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Norm 计算信号的欧几里得 (L2) 范数
func (s Signal) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		m := cmplx.Abs(v)
		sum += m * m
	}
	return math.Sqrt(sum)
}

// Normalized 返回幅度归一化后的副本：每个采样除以 L2 范数
// 归一化消除信号间的能量差异，使特征只反映形状而非功率
func (s Signal) Normalized() Signal {
	norm := s.Norm()
	out := make(Signal, len(s))
	if norm == 0 {
		// 全零信号没有可归一化的能量，保持原样
		copy(out, s)
		return out
	}
	inv := complex(1.0/norm, 0)
	for i, v := range s {
		out[i] = v * inv
	}
	return out
}

// LabeledSample 是 (信号, 真实标签) 的只读配对
// 由信号源产生，供特征提取和阈值校准消费
type LabeledSample struct {
	Signal Signal `json:"signal"`
	Label  Label  `json:"label"`
}

// signalJSON 是 Signal 的磁盘表示：I/Q 两路分开存储
type signalJSON struct {
	I []float64 `json:"i"`
	Q []float64 `json:"q"`
}

// MarshalJSON 实现 Signal 的 JSON 序列化
func (s Signal) MarshalJSON() ([]byte, error) {
	sj := signalJSON{
		I: make([]float64, len(s)),
		Q: make([]float64, len(s)),
	}
	for i, v := range s {
		sj.I[i] = real(v)
		sj.Q[i] = imag(v)
	}
	return json.Marshal(sj)
}

// UnmarshalJSON 实现 Signal 的 JSON 反序列化
func (s *Signal) UnmarshalJSON(b []byte) error {
	var sj signalJSON
	if err := json.Unmarshal(b, &sj); err != nil {
		return err
	}
	if len(sj.I) != len(sj.Q) {
		return fmt.Errorf("signal i/q length mismatch: %d vs %d", len(sj.I), len(sj.Q))
	}
	out := make(Signal, len(sj.I))
	for i := range sj.I {
		out[i] = complex(sj.I[i], sj.Q[i])
	}
	*s = out
	return nil
}
