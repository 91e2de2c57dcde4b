package modid

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// SpectrumAnalyzer 对复数基带信号做频域和功率诊断
// 用于数据集生成后的体检：确认信号功率正常、频谱形态符合预期
type SpectrumAnalyzer struct {
	FFTSize int
	win     []float64
}

// NewSpectrumAnalyzer 创建分析器，FFT 点数决定频率分辨率
func NewSpectrumAnalyzer(fftSize int) *SpectrumAnalyzer {
	return &SpectrumAnalyzer{
		FFTSize: fftSize,
		win:     window.Blackman(fftSize),
	}
}

// PowerSpectrum 计算信号前 FFTSize 个采样的加窗功率谱 |X(k)|^2 / N
// 信号长度不足时返回 nil
func (sa *SpectrumAnalyzer) PowerSpectrum(sig Signal) []float64 {
	if len(sig) < sa.FFTSize {
		return nil
	}

	input := make([]complex128, sa.FFTSize)
	for i := 0; i < sa.FFTSize; i++ {
		input[i] = sig[i] * complex(sa.win[i], 0)
	}

	spectrum := fft.FFT(input)
	psd := make([]float64, len(spectrum))
	for i, v := range spectrum {
		m := cmplx.Abs(v)
		psd[i] = m * m / float64(sa.FFTSize)
	}
	return psd
}

// SpectralFlatness 计算功率谱的平坦度（几何均值/算术均值）
// 取值 (0, 1]：越接近 1 频谱越像白噪声，越接近 0 能量越集中
// 调制信号经过 AWGN 信道后应当保持较高的平坦度
func (sa *SpectrumAnalyzer) SpectralFlatness(sig Signal) float64 {
	psd := sa.PowerSpectrum(sig)
	if len(psd) == 0 {
		return 0
	}

	logSum := 0.0
	sum := 0.0
	for _, p := range psd {
		if p <= 0 {
			// 空谱线，平坦度按最低处理
			return 0
		}
		logSum += math.Log(p)
		sum += p
	}

	geoMean := math.Exp(logSum / float64(len(psd)))
	ariMean := sum / float64(len(psd))
	if ariMean == 0 {
		return 0
	}
	return geoMean / ariMean
}

// EstimateSNR 用峰值谱线与中位噪底的比值粗略估计信噪比 (dB)
// 只适合含有明显谱峰的信号体检，不用于判决
func (sa *SpectrumAnalyzer) EstimateSNR(sig Signal) float64 {
	psd := sa.PowerSpectrum(sig)
	if len(psd) == 0 {
		return 0
	}

	sorted := append([]float64(nil), psd...)
	sort.Float64s(sorted)
	floor := sorted[len(sorted)/2]
	peak := sorted[len(sorted)-1]
	if floor <= 0 || peak <= 0 {
		return 0
	}
	return 10.0 * math.Log10(peak/floor)
}

// AveragePower 计算信号的平均功率 mean(|x|^2)
func AveragePower(sig Signal) float64 {
	if len(sig) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range sig {
		m := cmplx.Abs(v)
		sum += m * m
	}
	return sum / float64(len(sig))
}

// PeakToAveragePower 计算峰均功率比 (PAPR)
// 恒包络的 PSK 信号 PAPR 接近 1，多幅度环的 QAM 信号明显更高，
// 可作为分类特征之外的旁路诊断量
func PeakToAveragePower(sig Signal) float64 {
	avg := AveragePower(sig)
	if avg == 0 {
		return 0
	}
	peak := 0.0
	for _, v := range sig {
		m := cmplx.Abs(v)
		if m*m > peak {
			peak = m * m
		}
	}
	return peak / avg
}
