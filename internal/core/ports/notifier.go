package ports

// Notifier defines the interface for pushing findings to external systems
type Notifier interface {
	// NotifyHighConfidenceConnection sends a notification for a newly
	// scored pair that reached the top confidence tier
	NotifyHighConfidenceConnection(conn ConnectionNotification) error
}

// ConnectionNotification is the transport-agnostic notification payload.
type ConnectionNotification struct {
	OfficerA      string
	OfficerB      string
	CompanyNumber string
	TotalScore    float64
	Confidence    string
	Reasons       []string
}
