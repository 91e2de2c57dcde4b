package modid

import (
	"fmt"

	"modid/Modulation"
)

// SignalSource 是核心消费的信号源接口
// 实现者负责生成随机符号流、调制并通过噪声信道，核心把它当作
// 不透明的（可能带随机性的）生成器，不关心调制和噪声的内部细节
type SignalSource interface {
	// GenerateLabeledSample 生成一条带真实标签的信号
	GenerateLabeledSample(numSymbols, transmitLength int, noiseDB float64) (LabeledSample, error)
	// GenerateLabeledDataset 批量生成 count 条带标签的信号
	GenerateLabeledDataset(numSymbols, transmitLength int, noiseDB float64, count int) ([]LabeledSample, error)
}

// SimulatorSource 用 Modulation 仿真器实现 SignalSource
// 单条采样随机抽取调制方式；批量生成时两类交替出现，保证数据集
// 类别均衡
type SimulatorSource struct {
	Seed int64

	sim      *Modulation.Simulator
	sampleNo int64 // 已生成的单条采样计数，用于标签抽取
}

// NewSimulatorSource 创建仿真信号源
func NewSimulatorSource(seed int64) *SimulatorSource {
	return &SimulatorSource{Seed: seed}
}

// simulator 按需创建（或复用）匹配参数的仿真器
func (ss *SimulatorSource) simulator(numSymbols, transmitLength int) (*Modulation.Simulator, error) {
	if ss.sim != nil && ss.sim.NumSymbols == numSymbols && ss.sim.NumTransmit == transmitLength {
		return ss.sim, nil
	}
	sim, err := Modulation.NewSimulator(numSymbols, transmitLength, ss.Seed)
	if err != nil {
		return nil, fmt.Errorf("signal source: %w", err)
	}
	ss.sim = sim
	return sim, nil
}

// generate 执行一次 调制 → 信道 的传输并返回指定类别的一路
func (ss *SimulatorSource) generate(sim *Modulation.Simulator, noiseDB float64, label Label) (LabeledSample, error) {
	data := sim.GenerateData()
	qamMod, pskMod, err := sim.ModulateData(data)
	if err != nil {
		return LabeledSample{}, err
	}
	noisyQAM, noisyPSK := sim.TransmitData(qamMod, pskMod, noiseDB)

	sample := LabeledSample{Label: label}
	if label == LabelPSK {
		sample.Signal = Signal(noisyPSK)
	} else {
		sample.Signal = Signal(noisyQAM)
	}
	return sample, nil
}

// GenerateLabeledSample 生成一条带标签信号，两类交替出现
func (ss *SimulatorSource) GenerateLabeledSample(numSymbols, transmitLength int, noiseDB float64) (LabeledSample, error) {
	sim, err := ss.simulator(numSymbols, transmitLength)
	if err != nil {
		return LabeledSample{}, err
	}

	label := LabelPSK
	if ss.sampleNo%2 == 1 {
		label = LabelQAM
	}
	ss.sampleNo++

	return ss.generate(sim, noiseDB, label)
}

// GenerateLabeledDataset 批量生成类别均衡的数据集
func (ss *SimulatorSource) GenerateLabeledDataset(numSymbols, transmitLength int, noiseDB float64, count int) ([]LabeledSample, error) {
	sim, err := ss.simulator(numSymbols, transmitLength)
	if err != nil {
		return nil, err
	}

	dataset := make([]LabeledSample, 0, count)
	for i := 0; i < count; i++ {
		label := LabelPSK
		if i%2 == 1 {
			label = LabelQAM
		}
		sample, err := ss.generate(sim, noiseDB, label)
		if err != nil {
			return nil, fmt.Errorf("generate sample %d: %w", i, err)
		}
		dataset = append(dataset, sample)
	}
	return dataset, nil
}
