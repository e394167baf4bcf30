package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	SignupRequestsTotal      metric.Int64Counter
	LoginRequestsTotal       metric.Int64Counter
	HoroscopeCacheHitsTotal  metric.Int64Counter
	HoroscopeGeneratedTotal  metric.Int64Counter
	HoroscopeRaceLossesTotal metric.Int64Counter
	DbQueryDurationSeconds   metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments only once,
// using the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("horoscope-api")
		var err error
		m := &AppMetrics{}

		m.SignupRequestsTotal, err = meter.Int64Counter(
			"signup_requests_total",
			metric.WithDescription("Total number of signup requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create signup_requests_total: %v", err)
		}

		m.LoginRequestsTotal, err = meter.Int64Counter(
			"login_requests_total",
			metric.WithDescription("Total number of login requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create login_requests_total: %v", err)
		}

		m.HoroscopeCacheHitsTotal, err = meter.Int64Counter(
			"horoscope_cache_hits_total",
			metric.WithDescription("Daily horoscope requests served from an existing record"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create horoscope_cache_hits_total: %v", err)
		}

		m.HoroscopeGeneratedTotal, err = meter.Int64Counter(
			"horoscope_generated_total",
			metric.WithDescription("Daily horoscopes generated and persisted"),
			metric.WithUnit("{record}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create horoscope_generated_total: %v", err)
		}

		m.HoroscopeRaceLossesTotal, err = meter.Int64Counter(
			"horoscope_race_losses_total",
			metric.WithDescription("First-of-day inserts that lost the unique-index race and re-read"),
			metric.WithUnit("{insert}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create horoscope_race_losses_total: %v", err)
		}

		m.DbQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the initialized metric instruments. InitAppMetrics must have
// been called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		InitAppMetrics()
	}
	return appMetrics
}
