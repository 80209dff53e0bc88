package shared

// EntityType names the kind of record an activity or email message can
// be linked to. The link is a soft reference: the target row may be
// deleted without cascading into the activity or email log, so no
// foreign key backs the pair.
type EntityType string

const (
	EntityCompany       EntityType = "company"
	EntityContact       EntityType = "contact"
	EntityDeal          EntityType = "deal"
	EntityQuote         EntityType = "quote"
	EntityPurchaseOrder EntityType = "po"
)

// IsValid reports whether t names a linkable record kind
func (t EntityType) IsValid() bool {
	switch t {
	case EntityCompany, EntityContact, EntityDeal, EntityQuote, EntityPurchaseOrder:
		return true
	}
	return false
}
