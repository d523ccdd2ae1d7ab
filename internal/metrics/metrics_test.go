package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			matched := true
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && lp.GetValue() != want {
					matched = false
					break
				}
			}
			if matched {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

// TestRecordSignalCreated_IncrementsCounterByMood はシグナル作成カウンタがムード別に増加することを検証する。
func TestRecordSignalCreated_IncrementsCounterByMood(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSignalCreated("green")
	c.RecordSignalCreated("green")
	c.RecordSignalCreated("red")

	if got := counterValue(t, reg, "signalboard_signals_created_total", map[string]string{"mood": "green"}); got != 2 {
		t.Errorf("signals_created_total{mood=green} = %v, want 2", got)
	}
	if got := counterValue(t, reg, "signalboard_signals_created_total", map[string]string{"mood": "red"}); got != 1 {
		t.Errorf("signals_created_total{mood=red} = %v, want 1", got)
	}
}

// TestRecordFollowUpOutcomes_IncrementCounters は勝者・敗者カウンタが独立に増加することを検証する。
func TestRecordFollowUpOutcomes_IncrementCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordFollowUpWin()
	c.RecordFollowUpConflict()
	c.RecordFollowUpConflict()

	if got := counterValue(t, reg, "signalboard_follow_up_wins_total", nil); got != 1 {
		t.Errorf("follow_up_wins_total = %v, want 1", got)
	}
	if got := counterValue(t, reg, "signalboard_follow_up_conflicts_total", nil); got != 2 {
		t.Errorf("follow_up_conflicts_total = %v, want 2", got)
	}
}

// TestRecordValidationFailure_IncrementsCounter は検証失敗カウンタが増加することを検証する。
func TestRecordValidationFailure_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordValidationFailure()

	if got := counterValue(t, reg, "signalboard_validation_failures_total", nil); got != 1 {
		t.Errorf("validation_failures_total = %v, want 1", got)
	}
}

// TestRecordUniquenessAnomaly_IncrementsCounter は一意性異常カウンタが増加することを検証する。
func TestRecordUniquenessAnomaly_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUniquenessAnomaly("sig-1")

	if got := counterValue(t, reg, "signalboard_uniqueness_anomalies_total", nil); got != 1 {
		t.Errorf("uniqueness_anomalies_total = %v, want 1", got)
	}
}

// TestRecordHTTPStatus_IncrementsCounterByCode はHTTPステータスカウンタがコード別に増加することを検証する。
func TestRecordHTTPStatus_IncrementsCounterByCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(409)

	if got := counterValue(t, reg, "signalboard_http_status_total", map[string]string{"status_code": "200"}); got != 2 {
		t.Errorf("http_status_total{200} = %v, want 2", got)
	}
	if got := counterValue(t, reg, "signalboard_http_status_total", map[string]string{"status_code": "409"}); got != 1 {
		t.Errorf("http_status_total{409} = %v, want 1", got)
	}
}
