package engine

// IDGenerator generates unique IDs for anomalies and recommendations.
type IDGenerator interface {
	Generate() string
}
