package pcapmetrics

import "github.com/prometheus/client_golang/prometheus"

// -------------------------------------------------------------------------
// Prometheus Metric Constants
// -------------------------------------------------------------------------

const (
	namespace = "pcapdump"
	subsystem = "decode"
)

// Label names for decode metrics.
const (
	labelLinkType = "link_type"
	labelEther    = "ether_type"
	labelProtocol = "protocol"
	labelReason   = "reason"
)

// -------------------------------------------------------------------------
// Collector — Prometheus decode metrics
// -------------------------------------------------------------------------

// Collector holds all pcapdump Prometheus metrics.
//
//   - RecordsDecoded counts every record submitted for decoding,
//     labeled by the capture file's link type, whether or not decoding
//     then succeeds.
//   - HeadersDecoded counts each network/transport header successfully
//     decoded within a record, labeled by EtherType and IP protocol.
//   - DecodeErrors counts failures and anomalies by reason: an unreadable
//     capture file, a dropped trailing partial record, an out-of-bounds
//     record index, and records that failed to decode at all.
//   - UnsupportedHits counts records or headers that parsed but hit an
//     EtherType or transport protocol this decoder does not walk further
//     (spec §4.10 step 5 and §9's corrected TCP/UDP dispatch).
type Collector struct {
	RecordsDecoded  *prometheus.CounterVec
	HeadersDecoded  *prometheus.CounterVec
	DecodeErrors    *prometheus.CounterVec
	UnsupportedHits *prometheus.CounterVec
}

// NewCollector creates a Collector with all decode metrics registered
// against the provided prometheus.Registerer. If reg is nil,
// prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.RecordsDecoded,
		c.HeadersDecoded,
		c.DecodeErrors,
		c.UnsupportedHits,
	)

	return c
}

// newMetrics creates all Prometheus metric vectors without registering them.
func newMetrics() *Collector {
	return &Collector{
		RecordsDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "records_total",
			Help:      "Total capture records handed to the link-layer parser, labeled by link type.",
		}, []string{labelLinkType}),

		HeadersDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "headers_total",
			Help:      "Total network/transport headers decoded, labeled by EtherType and IP protocol.",
		}, []string{labelEther, labelProtocol}),

		DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Total records that failed to decode, labeled by reason.",
		}, []string{labelReason}),

		UnsupportedHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "unsupported_total",
			Help:      "Total records or headers hitting an EtherType or protocol not decoded further.",
		}, []string{labelEther, labelProtocol}),
	}
}

// -------------------------------------------------------------------------
// Recording helpers
// -------------------------------------------------------------------------

// IncRecordsDecoded increments the records-decoded counter for linkType.
func (c *Collector) IncRecordsDecoded(linkType string) {
	c.RecordsDecoded.WithLabelValues(linkType).Inc()
}

// IncHeaderDecoded increments the headers-decoded counter for one decoded
// network/transport header.
func (c *Collector) IncHeaderDecoded(etherType, protocol string) {
	c.HeadersDecoded.WithLabelValues(etherType, protocol).Inc()
}

// IncDecodeError increments the decode-errors counter for reason.
func (c *Collector) IncDecodeError(reason string) {
	c.DecodeErrors.WithLabelValues(reason).Inc()
}

// IncUnsupported increments the unsupported-hit counter for an EtherType
// or transport protocol that parsed but was not decoded further.
func (c *Collector) IncUnsupported(etherType, protocol string) {
	c.UnsupportedHits.WithLabelValues(etherType, protocol).Inc()
}
