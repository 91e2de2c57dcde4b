package Modulation

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Modulator 把符号索引映射到复平面星座点，并支持最近邻解调
// 星座在构造时归一化为单位平均符号能量
type Modulator struct {
	M       int
	symbols []complex128
}

// NewPSK 创建 M 进制相移键控调制器
// 星座点均匀分布在单位圆上：s[k] = exp(j*2*pi*k/M)
func NewPSK(m int) (*Modulator, error) {
	if m < 2 {
		return nil, fmt.Errorf("PSK order must be >= 2, got %d", m)
	}

	symbols := make([]complex128, m)
	for k := 0; k < m; k++ {
		phase := 2.0 * math.Pi * float64(k) / float64(m)
		symbols[k] = cmplx.Exp(complex(0, phase))
	}

	return &Modulator{M: m, symbols: symbols}, nil
}

// NewQAM 创建 M 进制方形正交幅度调制器
// M 必须是完全平方数 (4, 16, 64, ...)；每个轴按 Gray 码排列电平，
// 相邻星座点只相差一个比特。整个星座缩放到单位平均能量
func NewQAM(m int) (*Modulator, error) {
	side := int(math.Round(math.Sqrt(float64(m))))
	if side < 2 || side*side != m {
		return nil, fmt.Errorf("QAM order must be a perfect square >= 4, got %d", m)
	}

	symbols := make([]complex128, m)
	energy := 0.0
	for s := 0; s < m; s++ {
		row := s / side
		col := s % side

		// Gray 编码使相邻电平间只翻转一个比特
		gi := row ^ (row >> 1)
		gq := col ^ (col >> 1)

		// 电平取 ±1, ±3, ... 的奇数格点
		i := float64(2*gi - (side - 1))
		q := float64(2*gq - (side - 1))
		symbols[s] = complex(i, q)
		energy += i*i + q*q
	}

	// 归一化到单位平均符号能量
	scale := complex(1.0/math.Sqrt(energy/float64(m)), 0)
	for s := range symbols {
		symbols[s] *= scale
	}

	return &Modulator{M: m, symbols: symbols}, nil
}

// Symbols 返回星座点的副本，供检查和绘图使用
func (mo *Modulator) Symbols() []complex128 {
	out := make([]complex128, len(mo.symbols))
	copy(out, mo.symbols)
	return out
}

// Modulate 把符号索引序列映射为星座点序列
func (mo *Modulator) Modulate(data []int) ([]complex128, error) {
	out := make([]complex128, len(data))
	for i, s := range data {
		if s < 0 || s >= mo.M {
			return nil, fmt.Errorf("symbol %d out of range [0, %d)", s, mo.M)
		}
		out[i] = mo.symbols[s]
	}
	return out, nil
}

// Demodulate 对每个接收采样做最近邻判决，返回符号索引序列
func (mo *Modulator) Demodulate(received []complex128) []int {
	out := make([]int, len(received))
	for i, r := range received {
		best := 0
		bestDist := math.Inf(1)
		for s, sym := range mo.symbols {
			d := r - sym
			dist := real(d)*real(d) + imag(d)*imag(d)
			if dist < bestDist {
				bestDist = dist
				best = s
			}
		}
		out[i] = best
	}
	return out
}
