package model

// Entity is implemented by every record kept in a collection store.
type Entity interface {
	EntityID() string
}

// Layouts used by the date and time string fields of the records.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02T15:04"
)
