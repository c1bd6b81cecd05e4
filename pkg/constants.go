package pkg

// Common API path constants.
const (
	// BasePath is the root path for the API.
	BasePath = "/api/v1"

	// HealthCheckPath is the legacy health endpoint.
	HealthCheckPath = BasePath + "/ping"

	// LivenessPath and ReadinessPath are the probe endpoints.
	LivenessPath  = BasePath + "/livez"
	ReadinessPath = BasePath + "/readyz"

	// AuthorsPath is the collection endpoint for authors.
	AuthorsPath = BasePath + "/authors"

	// MetricsPath exposes Prometheus metrics.
	MetricsPath = "/metrics"
)
