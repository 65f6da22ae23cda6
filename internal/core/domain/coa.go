package domain

// COACategory is a node in the hierarchical chart of accounts.
// Level is derived: parent.level + 1, or 0 for roots.
type COACategory struct {
	CategoryID string  `json:"categoryID"`
	Name       string  `json:"name"`
	ParentID   *string `json:"parentID"`
	Level      int     `json:"level"`
	AuditFields
}
