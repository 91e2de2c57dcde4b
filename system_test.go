package modid

import (
	"os"
	"strings"
	"testing"
)

func smallSystemConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Store.Dir = t.TempDir()
	cfg.Dataset.SymbolNum = 16
	cfg.Dataset.TransmitNum = 256
	cfg.Dataset.Size = 12
	cfg.Dataset.NoiseDB = 15.0
	cfg.Search.NumTrials = 20
	return cfg
}

func TestSystem_RunEndToEnd(t *testing.T) {
	cfg := smallSystemConfig(t)

	var messages []string
	sys := NewIdentifierSystem(cfg)
	sys.OnProgress = func(msg string) { messages = append(messages, msg) }

	result, err := sys.Run()
	if err != nil {
		t.Fatal(err)
	}

	t.Logf("accuracy %.1f%% (%d/%d), confidence %.3f",
		result.Accuracy*100, result.Correct, result.Total, result.Report.Confidence)
	for _, m := range messages {
		t.Log(m)
	}

	if result.Total != cfg.Dataset.Size {
		t.Errorf("evaluated %d samples, want %d", result.Total, cfg.Dataset.Size)
	}
	th, ok := sys.Threshold()
	if !ok {
		t.Fatal("system should hold a calibrated threshold after Run")
	}
	if th.Value <= 0 {
		t.Errorf("calibrated threshold %v should be positive", th.Value)
	}
	// 16-PSK 恒包络、16-QAM 多幅度，15 dB 下特征应可分
	if result.Accuracy < 0.5 {
		t.Errorf("accuracy %.3f worse than chance", result.Accuracy)
	}
}

func TestSystem_SecondRunReusesArtifacts(t *testing.T) {
	// 第二次运行必须复用磁盘上的数据集和阈值，而不是重新校准
	cfg := smallSystemConfig(t)

	sys1 := NewIdentifierSystem(cfg)
	sys1.OnProgress = func(string) {}
	if _, err := sys1.Run(); err != nil {
		t.Fatal(err)
	}
	th1, _ := sys1.Threshold()

	sys2 := NewIdentifierSystem(cfg)
	var loadedThreshold bool
	sys2.OnProgress = func(msg string) {
		if strings.HasPrefix(msg, "threshold: loaded") {
			loadedThreshold = true
		}
	}
	if _, err := sys2.Run(); err != nil {
		t.Fatal(err)
	}
	th2, _ := sys2.Threshold()

	if !loadedThreshold {
		t.Error("second run should load the persisted threshold")
	}
	if th1 != th2 {
		t.Errorf("persisted threshold changed: %+v vs %+v", th1, th2)
	}
}

func TestSystem_IdentifyWithoutThreshold(t *testing.T) {
	sys := NewIdentifierSystem(smallSystemConfig(t))
	if _, err := sys.Identify(makeTestSignal(64)); err == nil {
		t.Error("identify without calibration should fail")
	}
}

func TestSystem_IdentifyAfterRun(t *testing.T) {
	cfg := smallSystemConfig(t)
	sys := NewIdentifierSystem(cfg)
	sys.OnProgress = func(string) {}
	if _, err := sys.Run(); err != nil {
		t.Fatal(err)
	}

	// 用信号源再生成一条信号做在线识别
	src := NewSimulatorSource(99)
	sample, err := src.GenerateLabeledSample(cfg.Dataset.SymbolNum, cfg.Dataset.TransmitNum, cfg.Dataset.NoiseDB)
	if err != nil {
		t.Fatal(err)
	}
	label, err := sys.Identify(sample.Signal)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("identified %v (truth %v)", label, sample.Label)
}

func TestSystem_CsvDebugger(t *testing.T) {
	cfg := smallSystemConfig(t)
	cfg.Dataset.Size = 6
	cfg.Store.FeatureDebug = cfg.Store.Dir + "/features.csv"

	sys := NewIdentifierSystem(cfg)
	sys.OnProgress = func(string) {}
	if _, err := sys.Run(); err != nil {
		t.Fatal(err)
	}

	// CSV 文件应当已经写出且包含表头和逐样本记录
	content, err := os.ReadFile(cfg.Store.FeatureDebug)
	if err != nil {
		t.Fatalf("feature debug CSV was not written: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 1+cfg.Dataset.Size {
		t.Errorf("CSV has %d lines, want header + %d records", len(lines), cfg.Dataset.Size)
	}
	if !strings.HasPrefix(lines[0], "Index,") {
		t.Errorf("unexpected CSV header %q", lines[0])
	}
}
