package Modulation

import (
	"math"
	"testing"
)

func TestSimulator_NoiselessTransmission(t *testing.T) {
	// 极高信噪比 (100 dB) 下两路 SER 都应为 0
	sim, err := NewSimulator(16, 500, 1)
	if err != nil {
		t.Fatal(err)
	}
	qamSER, pskSER, err := sim.Simulate(3, 100.0)
	if err != nil {
		t.Fatal(err)
	}
	if qamSER != 0 || pskSER != 0 {
		t.Errorf("SER at 100 dB: qam %v, psk %v, want 0 / 0", qamSER, pskSER)
	}
}

func TestSimulator_SERDecreasesWithSNR(t *testing.T) {
	// 信噪比升高时误符号率单调下降（统计意义上）
	sim, err := NewSimulator(16, 2000, 7)
	if err != nil {
		t.Fatal(err)
	}

	lowQAM, lowPSK, err := sim.Simulate(5, 5.0)
	if err != nil {
		t.Fatal(err)
	}
	highQAM, highPSK, err := sim.Simulate(5, 20.0)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("5 dB: qam %.4f psk %.4f; 20 dB: qam %.4f psk %.4f",
		lowQAM, lowPSK, highQAM, highPSK)

	if highQAM >= lowQAM {
		t.Errorf("QAM SER did not improve: %v at 5 dB vs %v at 20 dB", lowQAM, highQAM)
	}
	if highPSK >= lowPSK {
		t.Errorf("PSK SER did not improve: %v at 5 dB vs %v at 20 dB", lowPSK, highPSK)
	}
}

func TestSimulator_QAMOutperformsPSKAtSameOrder(t *testing.T) {
	// 16 阶下 QAM 的最小距离大于 PSK，相同噪声下 SER 更低
	sim, err := NewSimulator(16, 2000, 3)
	if err != nil {
		t.Fatal(err)
	}
	qamSER, pskSER, err := sim.Simulate(10, 15.0)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("15 dB: qam %.4f, psk %.4f", qamSER, pskSER)
	if qamSER >= pskSER {
		t.Errorf("16-QAM SER %v should be below 16-PSK SER %v", qamSER, pskSER)
	}
}

func TestSimulator_SharedNoiseRealization(t *testing.T) {
	// 两路使用同一份噪声：接收信号差 = 调制信号差
	sim, err := NewSimulator(16, 64, 5)
	if err != nil {
		t.Fatal(err)
	}
	data := sim.GenerateData()
	qamMod, pskMod, err := sim.ModulateData(data)
	if err != nil {
		t.Fatal(err)
	}
	noisyQAM, noisyPSK := sim.TransmitData(qamMod, pskMod, 10.0)

	for i := range data {
		got := noisyQAM[i] - noisyPSK[i]
		want := qamMod[i] - pskMod[i]
		if d := got - want; math.Abs(real(d)) > 1e-12 || math.Abs(imag(d)) > 1e-12 {
			t.Fatalf("sample %d: noise realizations differ between streams", i)
		}
	}
}

func TestSimulator_TheoreticalSERSanity(t *testing.T) {
	sim, err := NewSimulator(16, 100, 1)
	if err != nil {
		t.Fatal(err)
	}

	// 理论值落在 [0, 1] 且随信噪比单调下降
	qamSERs, pskSERs := sim.TheoreticalSERRange(0, 25)
	for i := range qamSERs {
		if qamSERs[i] < 0 || qamSERs[i] > 1 || pskSERs[i] < 0 || pskSERs[i] > 1 {
			t.Fatalf("SER outside [0, 1] at %d dB: qam %v psk %v", i, qamSERs[i], pskSERs[i])
		}
		if i > 0 && (qamSERs[i] > qamSERs[i-1] || pskSERs[i] > pskSERs[i-1]) {
			t.Errorf("theoretical SER not monotone at %d dB", i)
		}
	}

	// 高信噪比下理论 QAM 优于理论 PSK
	qam20, psk20 := sim.TheoreticalSER(20.0)
	if qam20 >= psk20 {
		t.Errorf("theoretical 16-QAM SER %v should be below 16-PSK %v at 20 dB", qam20, psk20)
	}
}

func TestSimulator_SimulationMatchesTheory(t *testing.T) {
	// 仿真 SER 与理论值同一量级（宽松校验，只防公式写错）
	sim, err := NewSimulator(16, 5000, 21)
	if err != nil {
		t.Fatal(err)
	}
	const noiseDB = 12.0
	simQAM, simPSK, err := sim.Simulate(10, noiseDB)
	if err != nil {
		t.Fatal(err)
	}
	thQAM, thPSK := sim.TheoreticalSER(noiseDB)
	t.Logf("12 dB: simulated qam %.4f psk %.4f, theoretical qam %.4f psk %.4f",
		simQAM, simPSK, thQAM, thPSK)

	if simPSK < thPSK/3 || simPSK > thPSK*3 {
		t.Errorf("PSK simulation %v far from theory %v", simPSK, thPSK)
	}
	if simQAM < thQAM/3 || simQAM > thQAM*3 {
		t.Errorf("QAM simulation %v far from theory %v", simQAM, thQAM)
	}
}

func TestSimulator_InvalidParameters(t *testing.T) {
	if _, err := NewSimulator(8, 100, 1); err == nil {
		t.Error("8-ary should be rejected (no square QAM)")
	}
	if _, err := NewSimulator(16, 0, 1); err == nil {
		t.Error("zero transmit length should be rejected")
	}
	sim, err := NewSimulator(16, 100, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := sim.Simulate(0, 10.0); err == nil {
		t.Error("zero repetitions should be rejected")
	}
}
