package Modulation

import (
	"fmt"
	"math"
)

// SymbolErrorRate 比较原始符号流和两路解调结果，返回各自的误符号率
func (s *Simulator) SymbolErrorRate(data, qamDemod, pskDemod []int) (qamSER, pskSER float64) {
	qamErrors := 0
	pskErrors := 0
	for i := range data {
		if qamDemod[i] != data[i] {
			qamErrors++
		}
		if pskDemod[i] != data[i] {
			pskErrors++
		}
	}
	n := float64(len(data))
	return float64(qamErrors) / n, float64(pskErrors) / n
}

// Simulate 重复执行 numRep 次完整传输并返回平均误符号率
func (s *Simulator) Simulate(numRep int, noiseDB float64) (qamSER, pskSER float64, err error) {
	if numRep <= 0 {
		return 0, 0, fmt.Errorf("numRep must be positive, got %d", numRep)
	}

	for rep := 0; rep < numRep; rep++ {
		data := s.GenerateData()
		qamMod, pskMod, merr := s.ModulateData(data)
		if merr != nil {
			return 0, 0, merr
		}
		noisyQAM, noisyPSK := s.TransmitData(qamMod, pskMod, noiseDB)
		qamDemod, pskDemod := s.DemodulateData(noisyQAM, noisyPSK)
		q, p := s.SymbolErrorRate(data, qamDemod, pskDemod)
		qamSER += q
		pskSER += p
	}

	return qamSER / float64(numRep), pskSER / float64(numRep), nil
}

// SimulateRangeNoise 在 [initialNoise, finalNoise) 的每个整数噪声值上
// 执行 Simulate，返回两条 SER 曲线
func (s *Simulator) SimulateRangeNoise(initialNoise, finalNoise, numRep int) (qamSERs, pskSERs []float64, err error) {
	for noise := initialNoise; noise < finalNoise; noise++ {
		q, p, serr := s.Simulate(numRep, float64(noise))
		if serr != nil {
			return nil, nil, serr
		}
		qamSERs = append(qamSERs, q)
		pskSERs = append(pskSERs, p)
	}
	return qamSERs, pskSERs, nil
}

// TheoreticalSER 返回给定信噪比 (dB) 下两种调制的理论误符号率
func (s *Simulator) TheoreticalSER(noiseDB float64) (qamSER, pskSER float64) {
	snr := DB2Linear(noiseDB)
	return theoreticalQAMSER(s.NumSymbols, snr), theoreticalPSKSER(s.NumSymbols, snr)
}

// TheoreticalSERRange 在整数噪声区间上计算两条理论 SER 曲线
func (s *Simulator) TheoreticalSERRange(initialNoise, finalNoise int) (qamSERs, pskSERs []float64) {
	for noise := initialNoise; noise < finalNoise; noise++ {
		q, p := s.TheoreticalSER(float64(noise))
		qamSERs = append(qamSERs, q)
		pskSERs = append(pskSERs, p)
	}
	return qamSERs, pskSERs
}

// theoreticalPSKSER 计算 M-PSK 的理论误符号率近似：
//
//	SER ≈ erfc(sqrt(snr) * sin(pi/M))
func theoreticalPSKSER(m int, snr float64) float64 {
	if m == 2 {
		// BPSK 的精确式
		return 0.5 * math.Erfc(math.Sqrt(snr))
	}
	return math.Erfc(math.Sqrt(snr) * math.Sin(math.Pi/float64(m)))
}

// theoreticalQAMSER 计算方形 M-QAM 的理论误符号率：
//
//	P = (1 - 1/sqrt(M)) * erfc(sqrt(3*snr / (2*(M-1))))
//	SER = 1 - (1 - P)^2
func theoreticalQAMSER(m int, snr float64) float64 {
	sqrtM := math.Sqrt(float64(m))
	p := (1.0 - 1.0/sqrtM) * math.Erfc(math.Sqrt(3.0*snr/(2.0*(float64(m)-1.0))))
	return 1.0 - (1.0-p)*(1.0-p)
}
