package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// 全局 Registry，供 API 注册与暴露
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		UploadTotal, UploadBytes, UploadDuration,
		RetrievalTotal, RetrievalDuration,
		PasswordVerifyTotal, ConsistencyFaultTotal,
	)
}

// UploadTotal 上传总数（按结果）
var UploadTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pdfshare_upload_total",
		Help: "上传总数（按结果）",
	},
	[]string{"result"}, // ok | validation | internal
)

// UploadBytes 上传字节数分布
var UploadBytes = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "pdfshare_upload_bytes",
		Help:    "上传文件大小（字节）",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	},
)

// UploadDuration 上传处理耗时（秒）
var UploadDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "pdfshare_upload_duration_seconds",
		Help:    "上传处理耗时（秒）",
		Buckets: prometheus.DefBuckets,
	},
)

// RetrievalTotal 检索/下载总数（按入口与结果）
var RetrievalTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pdfshare_retrieval_total",
		Help: "文件检索总数（按入口与结果）",
	},
	[]string{"entry", "result"}, // entry: inline | download；result: ok | auth | not_found | internal
)

// RetrievalDuration 检索耗时（秒）
var RetrievalDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "pdfshare_retrieval_duration_seconds",
		Help:    "文件检索耗时（秒）",
		Buckets: prometheus.DefBuckets,
	},
)

// PasswordVerifyTotal 口令校验总数（按结果）
var PasswordVerifyTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pdfshare_password_verify_total",
		Help: "口令校验总数（按结果）",
	},
	[]string{"result"}, // ok | invalid | missing
)

// ConsistencyFaultTotal 元数据存在但磁盘文件缺失的次数
var ConsistencyFaultTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "pdfshare_consistency_fault_total",
		Help: "记录存在但 blob 缺失的数据一致性故障次数",
	},
)

// WritePrometheus 将 Prometheus 文本格式写入 w（供 Hertz 复用）
func WritePrometheus(w io.Writer) error {
	metrics, err := DefaultRegistry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range metrics {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
