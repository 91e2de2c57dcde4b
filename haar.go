package modid

import "math"

// haarScale 是 Haar 小波的分解系数 1/sqrt(2)
var haarScale = complex(1.0/math.Sqrt2, 0)

// HaarDWT 对复数序列执行单层 Haar 小波分解
// 返回近似分量 (approximation) 和细节分量 (detail)：
//
//	cA[k] = (x[2k] + x[2k+1]) / sqrt(2)
//	cD[k] = (x[2k] - x[2k+1]) / sqrt(2)
//
// 奇数长度时按对称延拓补齐最后一个采样（复制末尾元素），
// 输出长度均为 ceil(n/2)
func HaarDWT(data []complex128) (approx, detail []complex128) {
	n := len(data)
	if n == 0 {
		return nil, nil
	}

	half := (n + 1) / 2
	approx = make([]complex128, half)
	detail = make([]complex128, half)

	for k := 0; k < half; k++ {
		a := data[2*k]
		b := a // 奇数长度的末尾配对：b == a
		if 2*k+1 < n {
			b = data[2*k+1]
		}
		approx[k] = (a + b) * haarScale
		detail[k] = (a - b) * haarScale
	}

	return approx, detail
}
