package main

import (
	"flag"
	"fmt"
	"log"

	"modid"
)

func main() {
	// 1. 解析命令行参数
	configFile := flag.String("config", "", "Optional YAML config file")
	dataDir := flag.String("data", "", "Override data directory")
	trials := flag.Int("trials", 0, "Override number of search trials")
	debugCsv := flag.String("debug-csv", "", "Write per-sample feature decisions to this CSV file")
	flag.Parse()

	// 2. 加载配置
	cfg := modid.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = modid.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Config load failed: %v", err)
		}
	}
	if *dataDir != "" {
		cfg.Store.Dir = *dataDir
	}
	if *trials > 0 {
		cfg.Search.NumTrials = *trials
	}
	if *debugCsv != "" {
		cfg.Store.FeatureDebug = *debugCsv
	}

	// 3. 运行识别流程
	system := modid.NewIdentifierSystem(cfg)
	result, err := system.Run()
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	th, _ := system.Threshold()
	fmt.Printf("Threshold: %.6g (normalized=%v, score=%d)\n", th.Value, th.Normalized, th.Score)
	fmt.Printf("Test accuracy: %d/%d (%.1f%%)\n", result.Correct, result.Total, result.Accuracy*100)
	fmt.Printf("PSK features: mean %.4g stddev %.4g (n=%d)\n",
		result.Report.PSK.Mean, result.Report.PSK.StdDev, result.Report.PSK.Count)
	fmt.Printf("QAM features: mean %.4g stddev %.4g (n=%d)\n",
		result.Report.QAM.Mean, result.Report.QAM.StdDev, result.Report.QAM.Count)
}
