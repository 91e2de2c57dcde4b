package modid

import (
	"fmt"
	"sort"
)

// MedianFilter 对实数序列应用滑动中值滤波，抑制脉冲型噪声
// window 必须为正奇数；边界按零填充处理，输出长度与输入相同
func MedianFilter(data []float64, window int) ([]float64, error) {
	if window <= 0 || window%2 == 0 {
		return nil, fmt.Errorf("median filter window must be a positive odd number, got %d", window)
	}

	n := len(data)
	out := make([]float64, n)
	half := window / 2
	buf := make([]float64, window)

	for i := 0; i < n; i++ {
		// 以 i 为中心取窗口，越界位置填零
		for j := 0; j < window; j++ {
			idx := i - half + j
			if idx < 0 || idx >= n {
				buf[j] = 0
			} else {
				buf[j] = data[idx]
			}
		}
		sort.Float64s(buf)
		out[i] = buf[half]
	}

	return out, nil
}
