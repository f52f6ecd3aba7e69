// Package metrics counts and times container resolutions with Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/go-ioc/framework/container"
)

// Outcome label values.
const (
	OutcomeOK           = "ok"
	OutcomeUnregistered = "unregistered"
	OutcomeError        = "error"
)

// Resolver holds the resolution metrics on a private registry, so several
// containers (and tests) never collide on registration.
type Resolver struct {
	registry *prometheus.Registry
	resolves *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New registers the resolution collectors plus the Go and process collectors
// on a fresh registry. namespace is passed through Namespace.
func New(namespace string) *Resolver {
	namespace = Namespace(namespace)
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Resolver{
		registry: reg,
		resolves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "container",
			Name:      "resolves_total",
			Help:      "Number of container resolutions by abstract type and outcome.",
		}, []string{"abstract", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "container",
			Name:      "resolve_duration_seconds",
			Help:      "Time spent producing an instance, dependencies included.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"abstract"}),
	}
}

// Namespace turns an application name into a valid metric namespace:
// lower case, with every character outside [a-z0-9_] replaced by '_'.
func Namespace(name string) string {
	var b strings.Builder
	for i, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// ObserveResolve has the container.ResolveHook signature.
func (r *Resolver) ObserveResolve(abstract reflect.Type, elapsed time.Duration, err error) {
	name := "<nil>"
	if abstract != nil {
		name = abstract.String()
	}
	r.resolves.WithLabelValues(name, Outcome(err)).Inc()
	r.duration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// Outcome classifies a resolution error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, container.ErrUnregisteredType):
		return OutcomeUnregistered
	default:
		return OutcomeError
	}
}

// Registry exposes the underlying registry for gathering in tests.
func (r *Resolver) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Resolver) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
