package Modulation

import (
	"fmt"
	"math/rand"
)

// Simulator 生成待传输的随机符号流，并管理 QAM 与 PSK 两套调制器
// 对应一条完整的仿真链路：符号生成 → 调制 → AWGN 信道 → 解调 → SER
type Simulator struct {
	NumSymbols  int // 星座点数，例如 16 代表 16-QAM 和 16-PSK
	NumTransmit int // 每次传输的符号数

	psk *Modulator
	qam *Modulator
	rng *rand.Rand
}

// NewSimulator 创建仿真器，QAM 阶数非法时返回错误
func NewSimulator(numSymbols, numTransmit int, seed int64) (*Simulator, error) {
	if numTransmit <= 0 {
		return nil, fmt.Errorf("transmit length must be positive, got %d", numTransmit)
	}

	psk, err := NewPSK(numSymbols)
	if err != nil {
		return nil, err
	}
	qam, err := NewQAM(numSymbols)
	if err != nil {
		return nil, err
	}

	return &Simulator{
		NumSymbols:  numSymbols,
		NumTransmit: numTransmit,
		psk:         psk,
		qam:         qam,
		rng:         rand.New(rand.NewSource(seed)),
	}, nil
}

// GenerateData 生成一条均匀随机的符号流，取值范围 [0, NumSymbols)
func (s *Simulator) GenerateData() []int {
	data := make([]int, s.NumTransmit)
	for i := range data {
		data[i] = s.rng.Intn(s.NumSymbols)
	}
	return data
}

// ModulateData 用同一条符号流分别生成 QAM 和 PSK 的调制信号
func (s *Simulator) ModulateData(data []int) (qamMod, pskMod []complex128, err error) {
	qamMod, err = s.qam.Modulate(data)
	if err != nil {
		return nil, nil, err
	}
	pskMod, err = s.psk.Modulate(data)
	if err != nil {
		return nil, nil, err
	}
	return qamMod, pskMod, nil
}

// TransmitData 让两路调制信号通过 AWGN 信道
// 两路共享同一份噪声实现，保证对比实验的公平性
func (s *Simulator) TransmitData(qamMod, pskMod []complex128, noiseDB float64) (noisyQAM, noisyPSK []complex128) {
	noise := awgn(s.rng, len(qamMod), noiseDB)

	noisyQAM = make([]complex128, len(qamMod))
	noisyPSK = make([]complex128, len(pskMod))
	for i := range noise {
		noisyQAM[i] = qamMod[i] + noise[i]
		noisyPSK[i] = pskMod[i] + noise[i]
	}
	return noisyQAM, noisyPSK
}

// DemodulateData 对两路接收信号做最近邻解调
func (s *Simulator) DemodulateData(qamSig, pskSig []complex128) (qamData, pskData []int) {
	return s.qam.Demodulate(qamSig), s.psk.Demodulate(pskSig)
}

// PSK 返回内部的 PSK 调制器
func (s *Simulator) PSK() *Modulator { return s.psk }

// QAM 返回内部的 QAM 调制器
func (s *Simulator) QAM() *Modulator { return s.qam }
