package entity

// SyncState tracks an optimistic local mutation until the backend answers.
type SyncState string

const (
	SyncUnknown   SyncState = ""
	SyncPending   SyncState = "pending"
	SyncConfirmed SyncState = "confirmed"
	SyncFailed    SyncState = "failed"
)

type RecordKind string

const (
	KindProduct RecordKind = "product"
	KindOrder   RecordKind = "order"
	KindProfile RecordKind = "profile"
)
