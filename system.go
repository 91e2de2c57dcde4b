package modid

import (
	"fmt"
	"log"
)

// IdentifierSystem 管理整个调制识别流程的生命周期：
// 数据集的生成与复用、阈值校准与复用、测试集评估和在线识别
type IdentifierSystem struct {
	// 配置
	cfg *Config

	// 组件
	store      *Store
	source     SignalSource
	calibrator *Calibrator
	analyzer   *SpectrumAnalyzer
	debugger   FeatureDebugger

	// 状态
	threshold     CalibratedThreshold
	hasThreshold  bool
	trainSet      []LabeledSample
	testSet       []LabeledSample

	// 回调
	OnProgress func(msg string) // 流程进展通知，为 nil 时直接打印日志
}

// EvalResult 是一次测试集评估的汇总结果
type EvalResult struct {
	Total    int
	Correct  int
	Accuracy float64
	Report   SeparationReport
}

// NewIdentifierSystem 创建系统实例
func NewIdentifierSystem(cfg *Config) *IdentifierSystem {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &IdentifierSystem{
		cfg:        cfg,
		store:      NewStore(cfg.Store.Dir),
		source:     NewSimulatorSource(cfg.Search.Seed),
		calibrator: NewCalibrator(cfg),
		analyzer:   NewSpectrumAnalyzer(256),
		debugger:   &NoOpDebugger{},
	}
}

// SetSource 替换信号源（测试中注入可控源）
func (s *IdentifierSystem) SetSource(src SignalSource) { s.source = src }

// Threshold 返回当前的校准阈值
func (s *IdentifierSystem) Threshold() (CalibratedThreshold, bool) {
	return s.threshold, s.hasThreshold
}

// Run 执行完整流程：准备数据集 → 校准阈值 → 测试集评估
func (s *IdentifierSystem) Run() (EvalResult, error) {
	if err := s.prepareDebugger(); err != nil {
		return EvalResult{}, err
	}
	defer s.debugger.Close()

	var err error
	if s.trainSet, err = s.loadOrGenerate(KeyTrainData); err != nil {
		return EvalResult{}, err
	}
	if s.testSet, err = s.loadOrGenerate(KeyTestData); err != nil {
		return EvalResult{}, err
	}
	s.inspectDataset(KeyTrainData, s.trainSet)

	if err = s.loadOrCalibrate(); err != nil {
		return EvalResult{}, err
	}

	return s.Evaluate(s.testSet)
}

// Identify 用当前阈值对一条未知信号做识别
func (s *IdentifierSystem) Identify(sig Signal) (Label, error) {
	if !s.hasThreshold {
		return LabelPSK, fmt.Errorf("identify: no calibrated threshold available")
	}
	return Classify(sig, s.threshold)
}

// Evaluate 用当前阈值重分类整个样本集并统计准确率
func (s *IdentifierSystem) Evaluate(set []LabeledSample) (EvalResult, error) {
	if !s.hasThreshold {
		return EvalResult{}, fmt.Errorf("evaluate: no calibrated threshold available")
	}

	result := EvalResult{Total: len(set)}
	for i := range set {
		// 特征按阈值绑定的模式提取，与校准打分保持一致
		feature, err := s.threshold.ExtractFeature(set[i].Signal)
		if err != nil {
			return EvalResult{}, fmt.Errorf("evaluate sample %d: %w", i, err)
		}
		predicted := LabelQAM
		if feature < s.threshold.Value {
			predicted = LabelPSK
		}
		if predicted == set[i].Label {
			result.Correct++
		}
		s.debugger.Record(i, set[i].Label, predicted, feature, s.threshold.Value)
	}
	if result.Total > 0 {
		result.Accuracy = float64(result.Correct) / float64(result.Total)
	}

	report, err := AnalyzeFeatures(set, s.threshold.ExtractFeature, s.threshold.Value)
	if err != nil {
		return EvalResult{}, err
	}
	result.Report = report

	s.progress(fmt.Sprintf("evaluation: %d/%d correct (%.1f%%), gaussian confidence %.3f",
		result.Correct, result.Total, result.Accuracy*100, report.Confidence))
	return result, nil
}

// 内部：已有数据文件则直接加载，否则生成并保存
func (s *IdentifierSystem) loadOrGenerate(key string) ([]LabeledSample, error) {
	if s.store.Exists(key) {
		var set []LabeledSample
		if err := s.store.Load(key, &set); err != nil {
			return nil, err
		}
		s.progress(fmt.Sprintf("%s: loaded %d samples", key, len(set)))
		return set, nil
	}

	d := s.cfg.Dataset
	set, err := s.source.GenerateLabeledDataset(d.SymbolNum, d.TransmitNum, d.NoiseDB, d.Size)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", key, err)
	}
	if err := s.store.Save(key, set); err != nil {
		return nil, err
	}
	s.progress(fmt.Sprintf("%s: generated %d samples (%d-ary, %d symbols, %.0f dB)",
		key, len(set), d.SymbolNum, d.TransmitNum, d.NoiseDB))
	return set, nil
}

// 内部：已有阈值文件则直接加载，否则在训练集上校准并保存
func (s *IdentifierSystem) loadOrCalibrate() error {
	if s.store.Exists(KeyThresholds) {
		if err := s.store.Load(KeyThresholds, &s.threshold); err != nil {
			return err
		}
		s.hasThreshold = true
		s.progress(fmt.Sprintf("threshold: loaded %.6g (score %d)", s.threshold.Value, s.threshold.Score))
		return nil
	}

	th, err := s.calibrator.Calibrate(s.trainSet)
	if err != nil {
		return fmt.Errorf("calibrate: %w", err)
	}
	if err := s.store.Save(KeyThresholds, th); err != nil {
		return err
	}
	s.threshold = th
	s.hasThreshold = true
	s.progress(fmt.Sprintf("threshold: calibrated %.6g (score %d over %d samples)",
		th.Value, th.Score, len(s.trainSet)))
	return nil
}

// 内部：数据集体检，记录功率、峰均比和频谱平坦度
func (s *IdentifierSystem) inspectDataset(key string, set []LabeledSample) {
	if len(set) == 0 {
		return
	}
	sig := set[0].Signal
	s.progress(fmt.Sprintf("%s: avg power %.3f, PAPR %.2f, spectral flatness %.3f, est SNR %.1f dB",
		key, AveragePower(sig), PeakToAveragePower(sig),
		s.analyzer.SpectralFlatness(sig), s.analyzer.EstimateSNR(sig)))
}

// 内部：按配置准备特征调试器
func (s *IdentifierSystem) prepareDebugger() error {
	if s.cfg.Store.FeatureDebug == "" {
		s.debugger = &NoOpDebugger{}
		return nil
	}
	dbg, err := NewCsvFeatureDebugger(s.cfg.Store.FeatureDebug)
	if err != nil {
		return fmt.Errorf("feature debug: %w", err)
	}
	s.debugger = dbg
	return nil
}

func (s *IdentifierSystem) progress(msg string) {
	if s.OnProgress != nil {
		s.OnProgress(msg)
		return
	}
	log.Println(msg)
}
