// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層から利用する。
type MetricsCollector interface {
	RecordSignalCreated(mood string)
	RecordValidationFailure()
	RecordFollowUpWin()
	RecordFollowUpConflict()
	RecordUniquenessAnomaly(signalID string)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	signalsCreated      *prometheus.CounterVec
	validationFailures  prometheus.Counter
	followUpWins        prometheus.Counter
	followUpConflicts   prometheus.Counter
	uniquenessAnomalies prometheus.Counter
	httpStatus          *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signalsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalboard_signals_created_total",
			Help: "作成されたシグナルのムード別合計数",
		}, []string{"mood"}),
		validationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalboard_validation_failures_total",
			Help: "入力検証で拒否されたリクエストの合計数",
		}),
		followUpWins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalboard_follow_up_wins_total",
			Help: "フォローアップ挿入に成功した（勝者となった）リクエストの合計数",
		}),
		followUpConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalboard_follow_up_conflicts_total",
			Help: "フォローアップ競合で敗者となったリクエストの合計数",
		}),
		uniquenessAnomalies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalboard_uniqueness_anomalies_total",
			Help: "1シグナルに複数フォローアップが検出された異常の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalboard_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.signalsCreated,
		c.validationFailures,
		c.followUpWins,
		c.followUpConflicts,
		c.uniquenessAnomalies,
		c.httpStatus,
	)

	return c
}

// RecordSignalCreated はシグナル作成成功をムード別に記録する。
func (c *Collector) RecordSignalCreated(mood string) {
	c.signalsCreated.WithLabelValues(mood).Inc()
}

// RecordValidationFailure は検証失敗を記録する。
func (c *Collector) RecordValidationFailure() {
	c.validationFailures.Inc()
}

// RecordFollowUpWin はフォローアップ競合の勝者を記録する。
func (c *Collector) RecordFollowUpWin() {
	c.followUpWins.Inc()
}

// RecordFollowUpConflict はフォローアップ競合の敗者を記録する。
func (c *Collector) RecordFollowUpConflict() {
	c.followUpConflicts.Inc()
}

// RecordUniquenessAnomaly はUNIQUE制約違反の異常検出を記録する。
// 通常の運用では発生しない。発生した場合は運用者が調査すべき状態を示す。
func (c *Collector) RecordUniquenessAnomaly(signalID string) {
	c.uniquenessAnomalies.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
