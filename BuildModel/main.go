package main

import (
	"flag"
	"fmt"
	"log"

	"modid"
)

// 离线构建校准产物：生成训练/测试数据集并搜索判决阈值，
// 结果以 JSON 文件写入数据目录，供识别程序直接加载。
func main() {
	dataDir := flag.String("data", "data", "Output directory for datasets and thresholds")
	symbolNum := flag.Int("m", 16, "Constellation order (16 = 16-QAM vs 16-PSK)")
	transmitNum := flag.Int("symbols", 1000, "Symbols per signal")
	size := flag.Int("size", 500, "Samples per dataset")
	noiseDB := flag.Float64("snr", 15.0, "Channel SNR in dB")
	trials := flag.Int("trials", 300, "Threshold search trials")
	seed := flag.Int64("seed", 42, "Random seed")
	flag.Parse()

	cfg := modid.DefaultConfig()
	cfg.Store.Dir = *dataDir
	cfg.Dataset.SymbolNum = *symbolNum
	cfg.Dataset.TransmitNum = *transmitNum
	cfg.Dataset.Size = *size
	cfg.Dataset.NoiseDB = *noiseDB
	cfg.Search.NumTrials = *trials
	cfg.Search.Seed = *seed

	// 1. 生成数据集
	source := modid.NewSimulatorSource(cfg.Search.Seed)
	store := modid.NewStore(cfg.Store.Dir)

	trainSet, err := source.GenerateLabeledDataset(*symbolNum, *transmitNum, *noiseDB, *size)
	if err != nil {
		log.Fatalf("Generate train data failed: %v", err)
	}
	if err := store.Save(modid.KeyTrainData, trainSet); err != nil {
		log.Fatalf("Save train data failed: %v", err)
	}

	testSet, err := source.GenerateLabeledDataset(*symbolNum, *transmitNum, *noiseDB, *size)
	if err != nil {
		log.Fatalf("Generate test data failed: %v", err)
	}
	if err := store.Save(modid.KeyTestData, testSet); err != nil {
		log.Fatalf("Save test data failed: %v", err)
	}

	// 2. 在训练集上搜索阈值
	threshold, err := modid.NewCalibrator(cfg).Calibrate(trainSet)
	if err != nil {
		log.Fatalf("Calibration failed: %v", err)
	}
	if err := store.Save(modid.KeyThresholds, threshold); err != nil {
		log.Fatalf("Save thresholds failed: %v", err)
	}

	fmt.Printf("模型构建完成！阈值 %.6g (score %d)，产物已写入 %s/\n",
		threshold.Value, threshold.Score, cfg.Store.Dir)
}
