package shared

// EntryType classifies a point movement in the ledger
type EntryType string

const (
	EntryTypeAccrual    EntryType = "ACCRUAL"
	EntryTypeRedemption EntryType = "REDEMPTION"
)

// OutboxStatus defines message publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
