package modid

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
)

// 阈值校准的错误类型
var (
	// ErrEmptyReferenceSet 表示参考集为空，校准无从进行
	ErrEmptyReferenceSet = errors.New("empty reference set")
	// ErrCalibrationFailed 表示所有试验都未能产生候选阈值
	ErrCalibrationFailed = errors.New("calibration failed: no trial produced candidates")
)

// FeatureFunc 是校准引擎使用的特征提取函数
// 默认实现是非归一化的 Extract，测试中可以替换
type FeatureFunc func(Signal) (float64, error)

// Calibrator 实现随机化的并发阈值搜索：
// 每次试验以参考集中某个样本的特征为基线，向上下各扰动一个
// 随机量得到两个候选，再用整个参考集为候选打分，最终取全局
// 得分最高的候选作为校准结果
type Calibrator struct {
	NumTrials  int     // 独立搜索试验数（每次试验产生两个候选）
	PerturbMax float64 // 扰动幅度上限，扰动量从 [0, PerturbMax] 均匀抽取
	Seed       int64   // 随机种子，固定种子下结果可复现
	Extract    FeatureFunc
	// Normalized 和 Window 是打分使用的提取模式，随结果阈值
	// 一并持久化，分类时按同样的模式提取特征
	Normalized bool
	Window     int
}

// NewCalibrator 根据配置创建校准引擎
func NewCalibrator(cfg *Config) *Calibrator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	window := cfg.Extract.MedianWindow
	normalized := cfg.Extract.Normalize
	return &Calibrator{
		NumTrials:  cfg.Search.NumTrials,
		PerturbMax: cfg.Search.PerturbMax,
		Seed:       cfg.Search.Seed,
		Normalized: normalized,
		Window:     window,
		Extract: func(sig Signal) (float64, error) {
			// 基线与打分都使用配置的提取模式，保证校准出的
			// 阈值与推理时的特征处于同一尺度
			return ExtractWindow(sig, normalized, window)
		},
	}
}

// trialResult 是单次试验经由收集通道交回的结果
// 失败的试验只带错误，不贡献任何候选
type trialResult struct {
	trial      int
	candidates []ThresholdCandidate
	err        error
}

// Calibrate 在参考集上执行 NumTrials 次并发搜索试验并归并结果
//
// 并发模型是 fork-join：每个试验一个 goroutine，试验之间不通信、
// 不共享可变状态，只读共享参考集快照；结果经带缓冲通道交给归并
// 线程，归并严格发生在所有试验结束之后，并按试验提交顺序排列，
// 因此固定种子下平局裁决（保留先出现的最大分候选）是确定的
func (c *Calibrator) Calibrate(refSet []LabeledSample) (CalibratedThreshold, error) {
	n := len(refSet)
	if n == 0 {
		return CalibratedThreshold{}, ErrEmptyReferenceSet
	}

	trials := c.NumTrials
	if trials <= 0 {
		trials = 1
	}

	// 扰动量在 fork 之前按提交顺序一次性抽取，
	// 避免并发争用随机源破坏可复现性
	rng := rand.New(rand.NewSource(c.Seed))
	perturbs := make([]float64, trials)
	for i := range perturbs {
		perturbs[i] = rng.Float64() * c.PerturbMax
	}

	results := make(chan trialResult, trials)
	var wg sync.WaitGroup

	for i := 0; i < trials; i++ {
		wg.Add(1)
		go func(trial int, r float64) {
			defer wg.Done()
			cands, err := c.runTrial(refSet, trial, r)
			results <- trialResult{trial: trial, candidates: cands, err: err}
		}(i, perturbs[i])
	}

	// join 屏障：归并只在全部试验完成后开始
	wg.Wait()
	close(results)

	// 按提交顺序重排试验结果
	ordered := make([]trialResult, trials)
	for res := range results {
		ordered[res.trial] = res
	}

	return c.reduce(ordered, n)
}

// runTrial 执行单次搜索试验（fork-join 中的一个分支）
// trial 同时充当基线样本的索引：第 i 次试验围绕第 i%n 个参考
// 样本的特征做扰动，这种试验身份与基线选择的耦合是刻意保留的
// 契约，而非实现细节
func (c *Calibrator) runTrial(refSet []LabeledSample, trial int, r float64) ([]ThresholdCandidate, error) {
	base, err := c.Extract(refSet[trial%len(refSet)].Signal)
	if err != nil {
		return nil, fmt.Errorf("baseline feature: %w", err)
	}

	cands := []ThresholdCandidate{
		{Value: base + r},
		{Value: base - r},
	}

	// 用整个参考集为两个候选打分：
	// 特征小于候选判 PSK，否则判 QAM，与真实标签一致则计一分
	for i := range refSet {
		f, err := c.Extract(refSet[i].Signal)
		if err != nil {
			return nil, fmt.Errorf("score sample %d: %w", i, err)
		}
		for k := range cands {
			pred := LabelQAM
			if f < cands[k].Value {
				pred = LabelPSK
			}
			if pred == refSet[i].Label {
				cands[k].Score++
			}
		}
	}

	return cands, nil
}

// reduce 把按提交顺序排列的试验结果归并为最终阈值
// 相同浮点值的候选得分累加（独立试验偶发碰撞的固有产物）；
// 平局时保留插入顺序中先出现的候选
func (c *Calibrator) reduce(ordered []trialResult, refSize int) (CalibratedThreshold, error) {
	aggregate := make(map[float64]int)
	var insertion []float64
	failed := 0

	for _, res := range ordered {
		if res.err != nil {
			// 失败的试验只丢弃自身的贡献，不影响兄弟试验
			log.Printf("calibration trial %d failed: %v", res.trial, res.err)
			failed++
			continue
		}
		for _, cand := range res.candidates {
			if _, seen := aggregate[cand.Value]; !seen {
				insertion = append(insertion, cand.Value)
			}
			aggregate[cand.Value] += cand.Score
		}
	}

	if len(insertion) == 0 {
		return CalibratedThreshold{}, fmt.Errorf("%w (%d/%d trials failed)", ErrCalibrationFailed, failed, len(ordered))
	}
	if failed > 0 {
		log.Printf("calibration finished with %d/%d failed trials", failed, len(ordered))
	}

	best := CalibratedThreshold{
		Value:      insertion[0],
		Score:      aggregate[insertion[0]],
		Normalized: c.Normalized,
		Window:     c.Window,
	}
	for _, v := range insertion[1:] {
		if aggregate[v] > best.Score {
			best.Value = v
			best.Score = aggregate[v]
		}
	}

	return best, nil
}
