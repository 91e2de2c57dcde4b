package modid

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ClassStats 存储单个类别的特征统计量
type ClassStats struct {
	Mean   float64 // 均值
	StdDev float64 // 标准差
	Count  int     // 样本数
}

// SeparationReport 描述参考集上两类特征分布的可分性
// 校准完成后生成，用于评估阈值的可信程度
type SeparationReport struct {
	PSK ClassStats
	QAM ClassStats
	// ErrorProbability 是把两类特征拟合为高斯分布后，
	// 在给定阈值处的理论误判概率（两类先验各 0.5）
	ErrorProbability float64
	// Confidence = 1 - ErrorProbability，限制在 [0, 1]
	Confidence float64
	Threshold  float64
}

// AnalyzeFeatures 提取参考集所有样本的特征，按真实标签分组
// 计算统计量，并估计给定阈值下的高斯重叠误判概率
func AnalyzeFeatures(refSet []LabeledSample, extract FeatureFunc, threshold float64) (SeparationReport, error) {
	var psk, qam []float64
	for i := range refSet {
		f, err := extract(refSet[i].Signal)
		if err != nil {
			return SeparationReport{}, fmt.Errorf("analyze sample %d: %w", i, err)
		}
		switch refSet[i].Label {
		case LabelPSK:
			psk = append(psk, f)
		case LabelQAM:
			qam = append(qam, f)
		}
	}

	report := SeparationReport{
		PSK:       classStats(psk),
		QAM:       classStats(qam),
		Threshold: threshold,
	}

	// 判决规则是 特征 < 阈值 → PSK，因此
	// PSK 的错误率 = P(f >= 阈值)，QAM 的错误率 = P(f < 阈值)
	pskErr := 1.0 - gaussianCDF(report.PSK, threshold)
	qamErr := gaussianCDF(report.QAM, threshold)
	report.ErrorProbability = 0.5*pskErr + 0.5*qamErr

	report.Confidence = 1.0 - report.ErrorProbability
	if report.Confidence < 0 {
		report.Confidence = 0
	}

	return report, nil
}

func classStats(data []float64) ClassStats {
	if len(data) == 0 {
		return ClassStats{}
	}
	cs := ClassStats{
		Mean:  stat.Mean(data, nil),
		Count: len(data),
	}
	// 单样本的无偏标准差未定义，按零处理
	if len(data) > 1 {
		cs.StdDev = stat.StdDev(data, nil)
	}
	return cs
}

// gaussianCDF 计算拟合高斯分布在 x 处的累积概率
// 标准差为零（样本不足或完全相同）时退化为阶跃函数
func gaussianCDF(cs ClassStats, x float64) float64 {
	if cs.Count == 0 {
		return 0.5 // 没有样本，无信息
	}
	if cs.StdDev == 0 {
		if cs.Mean < x {
			return 1.0
		}
		return 0.0
	}
	dist := distuv.Normal{Mu: cs.Mean, Sigma: cs.StdDev}
	return dist.CDF(x)
}
