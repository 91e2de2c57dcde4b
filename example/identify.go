package main

import (
	"fmt"
	"log"
	"os"

	"modid"
)

// 最小使用示例：校准一次阈值，然后对新生成的未知信号做在线识别。
func main() {
	dir, err := os.MkdirTemp("", "modid-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// 1. 小规模配置，几秒内完成校准
	cfg := modid.DefaultConfig()
	cfg.Store.Dir = dir
	cfg.Dataset.Size = 40
	cfg.Dataset.TransmitNum = 500
	cfg.Search.NumTrials = 100

	system := modid.NewIdentifierSystem(cfg)
	result, err := system.Run()
	if err != nil {
		log.Fatalf("Calibration run failed: %v", err)
	}

	th, _ := system.Threshold()
	fmt.Printf("Calibrated threshold %.6g, test accuracy %.1f%%\n", th.Value, result.Accuracy*100)

	// 2. 用另一个种子生成 10 条"未知"信号并识别
	source := modid.NewSimulatorSource(2026)
	correct := 0
	for i := 0; i < 10; i++ {
		sample, err := source.GenerateLabeledSample(
			cfg.Dataset.SymbolNum, cfg.Dataset.TransmitNum, cfg.Dataset.NoiseDB)
		if err != nil {
			log.Fatalf("Generate signal failed: %v", err)
		}

		label, err := system.Identify(sample.Signal)
		if err != nil {
			log.Fatalf("Identify failed: %v", err)
		}
		mark := "✓"
		if label != sample.Label {
			mark = "✗"
		} else {
			correct++
		}
		fmt.Printf("  signal %2d: identified %-3v truth %-3v %s\n", i, label, sample.Label, mark)
	}
	fmt.Printf("Online identification: %d/10 correct\n", correct)
}
