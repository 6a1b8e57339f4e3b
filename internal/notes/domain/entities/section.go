package entities

// Section - именованный раздел с уникальным именем.
type Section struct {
	ID      int64
	Name    string
	OwnerID int64
}
