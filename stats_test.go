package modid

import (
	"math"
	"testing"
)

func TestAnalyzeFeatures_WellSeparated(t *testing.T) {
	// 两类特征相距很远时误判概率应趋近 0，置信度趋近 1
	set := makeSeparableSet(t)
	extract := func(sig Signal) (float64, error) { return Extract(sig, false) }

	report, err := AnalyzeFeatures(set, extract, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	t.Logf("PSK mean %.3f std %.3f, QAM mean %.3f std %.3f, confidence %.4f",
		report.PSK.Mean, report.PSK.StdDev, report.QAM.Mean, report.QAM.StdDev, report.Confidence)

	if report.PSK.Count != 10 || report.QAM.Count != 10 {
		t.Errorf("class counts %d/%d, want 10/10", report.PSK.Count, report.QAM.Count)
	}
	if report.PSK.Mean >= report.QAM.Mean {
		t.Errorf("PSK mean %v should be below QAM mean %v", report.PSK.Mean, report.QAM.Mean)
	}
	if report.Confidence < 0.95 {
		t.Errorf("confidence %v too low for a cleanly separated set", report.Confidence)
	}
	if report.ErrorProbability < 0 || report.ErrorProbability > 1 {
		t.Errorf("error probability %v outside [0, 1]", report.ErrorProbability)
	}
}

func TestAnalyzeFeatures_SingleSampleClass(t *testing.T) {
	// 单样本类别的标准差按零处理，退化为阶跃分布
	base := makeTestSignal(64)
	f0, err := Extract(base, false)
	if err != nil {
		t.Fatal(err)
	}
	set := []LabeledSample{
		{Signal: signalWithFeature(t, base, f0, 0.1), Label: LabelPSK},
		{Signal: signalWithFeature(t, base, f0, 0.9), Label: LabelQAM},
	}
	extract := func(sig Signal) (float64, error) { return Extract(sig, false) }

	report, err := AnalyzeFeatures(set, extract, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if report.PSK.StdDev != 0 || report.QAM.StdDev != 0 {
		t.Errorf("single-sample std should be 0, got %v / %v", report.PSK.StdDev, report.QAM.StdDev)
	}
	// 阶跃分布下两类都在阈值的正确一侧，误判概率为 0
	if report.ErrorProbability != 0 {
		t.Errorf("error probability %v, want 0", report.ErrorProbability)
	}
}

func TestAnalyzeFeatures_EmptyClass(t *testing.T) {
	// 只有一类样本时另一类按无信息 (CDF=0.5) 处理
	base := makeTestSignal(64)
	f0, err := Extract(base, false)
	if err != nil {
		t.Fatal(err)
	}
	set := []LabeledSample{
		{Signal: signalWithFeature(t, base, f0, 0.1), Label: LabelPSK},
		{Signal: signalWithFeature(t, base, f0, 0.2), Label: LabelPSK},
	}
	extract := func(sig Signal) (float64, error) { return Extract(sig, false) }

	report, err := AnalyzeFeatures(set, extract, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if report.QAM.Count != 0 {
		t.Errorf("QAM count %d, want 0", report.QAM.Count)
	}
	if math.IsNaN(report.ErrorProbability) {
		t.Error("error probability should stay finite with an empty class")
	}
}

func TestAnalyzeFeatures_ExtractionError(t *testing.T) {
	set := []LabeledSample{{Signal: makeTestSignal(3), Label: LabelPSK}}
	extract := func(sig Signal) (float64, error) { return Extract(sig, false) }
	if _, err := AnalyzeFeatures(set, extract, 0.5); err == nil {
		t.Error("extraction failure should surface")
	}
}
