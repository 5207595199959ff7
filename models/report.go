package models

// ReportSummary holds the dashboard counters
type ReportSummary struct {
	TotalEquipment      int64 `json:"totalEquipment"`
	MaintenanceRequests int64 `json:"maintenanceRequests"`
	CompletedRequests   int64 `json:"completedRequests"`
	OverdueEquipment    int64 `json:"overdueEquipment"`
}
