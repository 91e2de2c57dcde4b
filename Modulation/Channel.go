package Modulation

import (
	"math"
	"math/rand"
)

// DB2Linear 把分贝值转换为线性功率比
func DB2Linear(db float64) float64 {
	return math.Pow(10.0, db/10.0)
}

// Linear2DB 把线性功率比转换为分贝值
func Linear2DB(linear float64) float64 {
	return 10.0 * math.Log10(linear)
}

// randnC 生成 n 个单位方差的圆对称复高斯采样
// 实部虚部各为方差 1/2 的独立高斯，总方差为 1
func randnC(rng *rand.Rand, n int) []complex128 {
	out := make([]complex128, n)
	scale := 1.0 / math.Sqrt2
	for i := range out {
		out[i] = complex(rng.NormFloat64()*scale, rng.NormFloat64()*scale)
	}
	return out
}

// awgn 生成指定信噪比 (dB) 下的加性白高斯噪声序列
// 假设信号平均功率为 1（调制器已归一化），噪声功率取 1/dB2Linear(snr)
func awgn(rng *rand.Rand, n int, snrDB float64) []complex128 {
	noisePower := 1.0 / DB2Linear(snrDB)
	amp := complex(math.Sqrt(noisePower), 0)

	noise := randnC(rng, n)
	for i := range noise {
		noise[i] *= amp
	}
	return noise
}
