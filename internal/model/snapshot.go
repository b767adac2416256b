package model

// Snapshot is the full-state backup object: one array per persisted
// collection plus the settings singleton. It is the unit of JSON
// export and destructive import.
type Snapshot struct {
	Transactions []Transaction `json:"transactions"`
	Categories   []Category    `json:"categories"`
	Goals        []Goal        `json:"goals"`
	Accounts     []Account     `json:"accounts"`
	Budgets      []Budget      `json:"budgets"`
	Settings     []Settings    `json:"settings"`
}
