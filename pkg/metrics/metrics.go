package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricDescriptors holds all Prometheus metric descriptors for the sauna.
// One exporter instance watches one sauna, so the gauges carry no labels.
type MetricDescriptors struct {
	// Raw device status code as reported by the Huum API
	StatusCode prometheus.Gauge

	// Derived state gauges
	IsOnline  prometheus.Gauge
	IsHeating prometheus.Gauge
	IsLocked  prometheus.Gauge

	// Temperatures
	TemperatureCelsius       prometheus.Gauge
	TargetTemperatureCelsius prometheus.Gauge

	// Door closed indicator (1 = closed, 0 = open)
	IsDoorClosed prometheus.Gauge

	// Steamer fault indicator (1 = fault code reported)
	SteamerFault prometheus.Gauge
}

// NewMetricDescriptors creates all sauna metrics and registers them with the
// default Prometheus registry
func NewMetricDescriptors() (*MetricDescriptors, error) {
	md := NewMetricDescriptorsUnregistered()
	if err := md.RegisterWith(prometheus.DefaultRegisterer); err != nil {
		return nil, err
	}
	return md, nil
}

// NewMetricDescriptorsUnregistered creates all sauna metrics without
// registering them (useful for tests with isolated registries)
func NewMetricDescriptorsUnregistered() *MetricDescriptors {
	return &MetricDescriptors{
		StatusCode: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huum_sauna_status_code",
			Help: "Raw sauna status code reported by the Huum API (230=offline, 231=heating, 232=not heating, 233=locked, 400=emergency stop)",
		}),

		IsOnline: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huum_sauna_online",
			Help: "Whether the sauna controller is reachable by the Huum cloud (1 = online, 0 = offline)",
		}),

		IsHeating: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huum_sauna_heating",
			Help: "Whether the sauna is actively heating (1 = heating, 0 = not heating)",
		}),

		IsLocked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huum_sauna_locked",
			Help: "Whether the sauna is locked by another user or emergency-stopped (1 = locked/stopped)",
		}),

		TemperatureCelsius: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huum_temperature_celsius",
			Help: "Measured sauna temperature in Celsius",
		}),

		TargetTemperatureCelsius: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huum_target_temperature_celsius",
			Help: "Configured target temperature in Celsius",
		}),

		IsDoorClosed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huum_sauna_door_closed",
			Help: "Whether the sauna door is closed (1 = closed, 0 = open)",
		}),

		SteamerFault: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huum_sauna_steamer_fault",
			Help: "Whether the steamer reported a fault code (1 = fault)",
		}),
	}
}

// RegisterWith registers all metrics with the given registerer
func (md *MetricDescriptors) RegisterWith(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		md.StatusCode,
		md.IsOnline,
		md.IsHeating,
		md.IsLocked,
		md.TemperatureCelsius,
		md.TargetTemperatureCelsius,
		md.IsDoorClosed,
		md.SteamerFault,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
